package qvm

import (
	"fmt"
	"math"

	"github.com/theapemachine/errnie"
)

/*
Measure observes the superposed qubit at address and collapses it.

One uniform draw r in [0,1) picks a basis state: r is reduced by each
|amplitude|² in index order and the first index that takes it strictly below
zero is the outcome, so a zero-probability state can never be selected. The
measured bit is that index's bit at address. Every basis state with the other
bit is zeroed, the survivors are scaled by 1/√(1-removed), and the qubit is
tagged Collapsed at the measured bit.
*/
func (r *Register) Measure(address int) (uint8, error) {
	if err := r.checkAddress(address); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	from := r.states[address]
	if !from.IsSuperposed() {
		return 0, fmt.Errorf("%w: measuring qubit %d which is %v", ErrPreconditionFailed, address, from)
	}

	sampled, err := r.sample(r.rng.Float64())
	if err != nil {
		errnie.Info("Measure - register %s qubit %d: %v", r.id, address, err)
		return 0, err
	}

	mask := 1 << address
	measured := uint8(0)
	if sampled&mask != 0 {
		measured = 1
	}

	decoder, err := NewAddressDecoder(r.width, []PinnedBit{{Address: address, Bit: measured}})
	if err != nil {
		return 0, err
	}

	kept := make([]int, 0, decoder.Len())
	var removed float64
	for index := range decoder.All() {
		removed += probability(r.amplitudes[index^mask])
		kept = append(kept, index)
	}

	remaining := 1 - removed
	if remaining <= 0 {
		return 0, fmt.Errorf("%w: no probability left on qubit %d = %d after sampling %s",
			ErrInvariantViolation, address, measured, r.FormatIndex(sampled))
	}

	weight := complex(1/math.Sqrt(remaining), 0)
	for _, index := range kept {
		r.amplitudes[index^mask] = 0
		r.amplitudes[index] *= weight
	}

	to := Collapsed(measured)
	r.states[address] = to
	r.recordTransition(address, from, to, "measure")
	r.metrics.recordMeasurement(measured)

	errnie.Info("Measure - register %s qubit %d = %d (basis %s, removed %.6f)",
		r.id, address, measured, r.FormatIndex(sampled), removed)

	return measured, nil
}

/*
sample walks the amplitudes subtracting |amplitude|² from draw and returns the
first index that drives it below zero. Floating error can leave a residual
once the scan is over; within tolerance the last non-zero amplitude is taken,
anything larger means the register was not normalized.
*/
func (r *Register) sample(draw float64) (int, error) {
	if draw < 0 || draw >= 1 || math.IsNaN(draw) {
		return 0, fmt.Errorf("%w: random draw %v outside [0,1)", ErrInvariantViolation, draw)
	}

	residual := draw
	last := -1

	for index, amplitude := range r.amplitudes {
		p := probability(amplitude)
		if p == 0 {
			continue
		}

		last = index
		residual -= p
		if residual < 0 {
			return index, nil
		}
	}

	if last < 0 || residual > r.tolerance {
		return 0, fmt.Errorf("%w: residual %v after scanning all %d basis states",
			ErrInvariantViolation, residual, len(r.amplitudes))
	}

	return last, nil
}
