package qvm

import "fmt"

/*
QubitState is the classical/superposition status of a single qubit address.
A collapsed qubit pins its bit in every basis state that carries amplitude,
a superposed qubit leaves that bit unconstrained.
*/
type QubitState uint8

const (
	CollapsedZero QubitState = iota
	CollapsedOne
	Superposed
)

// Collapsed returns the tag for a qubit pinned to value, which must be 0 or 1.
func Collapsed(value uint8) QubitState {
	if value == 1 {
		return CollapsedOne
	}

	return CollapsedZero
}

func (s QubitState) IsSuperposed() bool {
	return s == Superposed
}

/*
IsClassical reports whether the qubit is collapsed to exactly value.
A superposed qubit is never classical, whatever value is asked for.
*/
func (s QubitState) IsClassical(value uint8) bool {
	switch s {
	case CollapsedZero:
		return value == 0
	case CollapsedOne:
		return value == 1
	default:
		return false
	}
}

func (s QubitState) String() string {
	switch s {
	case CollapsedZero:
		return "|0⟩"
	case CollapsedOne:
		return "|1⟩"
	case Superposed:
		return "superposed"
	default:
		return fmt.Sprintf("QubitState(%d)", uint8(s))
	}
}
