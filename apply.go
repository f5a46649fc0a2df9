package qvm

import "fmt"

/*
ApplyGate applies gate to the qubits at addresses, in the order given, with
identity on every other qubit.

Rather than building the 2^n x 2^n operator, the index space is split into
disjoint orbits of 2^k indices that differ only at the addressed positions.
The decoder with every addressed position pinned to 0 yields one base index
per orbit; the orbit's amplitudes are gathered into a sub-register, passed
through the gate and scattered back. Each amplitude is touched exactly once.

Every addressed qubit must be superposed.
*/
func (r *Register) ApplyGate(gate Gate, addresses ...int) error {
	if !gate.valid() {
		return fmt.Errorf("%w: unknown gate %d", ErrInvalidArgument, uint8(gate))
	}

	if len(addresses) != gate.Arity() {
		return fmt.Errorf("%w: gate %s takes %d addresses, got %d", ErrInvalidArgument, gate, gate.Arity(), len(addresses))
	}

	if !ValidAddresses(r.width, addresses) {
		return fmt.Errorf("%w: addresses %v for width %d", ErrInvalidArgument, addresses, r.width)
	}

	pinned := make([]PinnedBit, len(addresses))
	for i, address := range addresses {
		pinned[i] = PinnedBit{Address: address}
	}

	decoder, err := NewAddressDecoder(r.width, pinned)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, address := range addresses {
		if !r.states[address].IsSuperposed() {
			return fmt.Errorf("%w: gate %s on qubit %d which is %v", ErrPreconditionFailed, gate, address, r.states[address])
		}
	}

	offsets := cornerOffsets(addresses)
	sub := make([]complex128, len(offsets))

	for base := range decoder.All() {
		for c, offset := range offsets {
			sub[c] = r.amplitudes[base+offset]
		}

		out, err := gate.Apply(sub)
		if err != nil {
			return err
		}

		for c, offset := range offsets {
			r.amplitudes[base+offset] = out[c]
		}
	}

	r.metrics.recordGate(gate)

	return nil
}

/*
cornerOffsets returns, for each sub-index c, the sum of 2^addresses[j] over the
bits j set in c. Added to an orbit base (all addressed bits 0) it gives the
full index of sub-register slot c.
*/
func cornerOffsets(addresses []int) []int {
	offsets := make([]int, 1<<len(addresses))

	for c := range offsets {
		for j, address := range addresses {
			if c&(1<<j) != 0 {
				offsets[c] += 1 << address
			}
		}
	}

	return offsets
}
