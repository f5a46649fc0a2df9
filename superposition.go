package qvm

import (
	"fmt"

	"github.com/theapemachine/errnie"
)

/*
Promote releases the qubit at address from its classical value so gates may
act on it, carrying its amplitude mass over to value first.

It returns false, with no error, when the qubit is already superposed. When
the qubit is collapsed at value the amplitudes are already consistent, and the
register's PromotePolicy decides whether the tag moves to Superposed. When the
qubit is collapsed at the other value, every amplitude is moved from the basis
state with the qubit at the old value to its partner with the qubit at value,
which leaves every other qubit's marginal distribution unchanged.
*/
func (r *Register) Promote(address int, value uint8) (bool, error) {
	if value > 1 {
		return false, fmt.Errorf("%w: promote value %d is not binary", ErrInvalidArgument, value)
	}

	if err := r.checkAddress(address); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	from := r.states[address]

	if from.IsSuperposed() {
		r.metrics.recordPromotion(false)
		return false, nil
	}

	if from.IsClassical(value) {
		if r.policy == MarkSuperposed {
			r.states[address] = Superposed
			r.recordTransition(address, from, Superposed, "promote")
		}
		r.metrics.recordPromotion(true)
		return true, nil
	}

	decoder, err := NewAddressDecoder(r.width, []PinnedBit{{Address: address, Bit: value}})
	if err != nil {
		return false, err
	}

	targets := make([]int, 0, decoder.Len())
	for index := range decoder.All() {
		if r.amplitudes[index] != 0 {
			errnie.Info("Promote - register %s: amplitude %v at %s while qubit %d is %v",
				r.id, r.amplitudes[index], r.FormatIndex(index), address, from)
			return false, fmt.Errorf("%w: qubit %d is %v but basis %d holds amplitude %v",
				ErrInvariantViolation, address, from, index, r.amplitudes[index])
		}
		targets = append(targets, index)
	}

	mask := 1 << address
	for _, index := range targets {
		r.amplitudes[index] = r.amplitudes[index^mask]
		r.amplitudes[index^mask] = 0
	}

	r.states[address] = Superposed
	r.recordTransition(address, from, Superposed, "promote")
	r.metrics.recordPromotion(true)

	return true, nil
}
