package qvm

import "errors"

var (
	// ErrInvalidArgument is returned for caller errors: out of range addresses,
	// non-binary values, malformed address sets and arity mismatches.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPreconditionFailed is returned when a qubit is not in the tag state an
	// operation requires.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrInvariantViolation means the amplitude array no longer agrees with the
	// qubit tags or is not normalized. The register is left untouched.
	ErrInvariantViolation = errors.New("register invariant violated")
)
