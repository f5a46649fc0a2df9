package qvm

import (
	"fmt"
	"math"
	"strings"
)

/*
Gate identifies one of the small fixed reversible transforms the register can
apply. Each gate acts on Arity() qubits and maps a sub-register of 2^Arity()
amplitudes to a new one, where bit j of the sub-index is the j-th address the
caller passed.
*/
type Gate uint8

const (
	H Gate = iota
	X
	Z
	SWAP
	CNOT
	CSWAP
)

type gateDef struct {
	name      string
	arity     int
	transform func(v []complex128)
}

var invSqrt2 = complex(1/math.Sqrt(2), 0)

var gates = [...]gateDef{
	H: {"H", 1, func(v []complex128) {
		// H = 1/√2 * [1  1]
		//           [1 -1]
		v[0], v[1] = (v[0]+v[1])*invSqrt2, (v[0]-v[1])*invSqrt2
	}},
	X: {"X", 1, func(v []complex128) {
		v[0], v[1] = v[1], v[0]
	}},
	Z: {"Z", 1, func(v []complex128) {
		v[1] = -v[1]
	}},
	SWAP: {"SWAP", 2, func(v []complex128) {
		v[1], v[2] = v[2], v[1]
	}},
	// Control is the first address, so it is bit 0 of the sub-index.
	CNOT: {"CNOT", 2, func(v []complex128) {
		v[1], v[3] = v[3], v[1]
	}},
	// Control is the last address (the most significant sub-index bit).
	CSWAP: {"CSWAP", 3, func(v []complex128) {
		v[5], v[6] = v[6], v[5]
	}},
}

// Gates lists every gate in the catalog.
func Gates() []Gate {
	out := make([]Gate, len(gates))
	for i := range gates {
		out[i] = Gate(i)
	}

	return out
}

// ParseGate looks a gate up by name, ignoring case.
func ParseGate(name string) (Gate, error) {
	for i, def := range gates {
		if strings.EqualFold(def.name, name) {
			return Gate(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown gate %q", ErrInvalidArgument, name)
}

func (g Gate) valid() bool {
	return int(g) < len(gates)
}

// Arity is the number of qubit addresses the gate acts on, or 0 for an
// unknown gate.
func (g Gate) Arity() int {
	if !g.valid() {
		return 0
	}

	return gates[g].arity
}

func (g Gate) String() string {
	if !g.valid() {
		return fmt.Sprintf("Gate(%d)", uint8(g))
	}

	return gates[g].name
}

/*
Apply returns the gate's image of v without touching v. The input must hold
exactly 2^Arity() amplitudes.
*/
func (g Gate) Apply(v []complex128) ([]complex128, error) {
	if !g.valid() {
		return nil, fmt.Errorf("%w: unknown gate %d", ErrInvalidArgument, uint8(g))
	}

	if want := 1 << gates[g].arity; len(v) != want {
		return nil, fmt.Errorf("%w: gate %s takes %d amplitudes, got %d", ErrInvalidArgument, g, want, len(v))
	}

	out := make([]complex128, len(v))
	copy(out, v)
	gates[g].transform(out)

	return out, nil
}
