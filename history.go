package qvm

/*
Transition records one change of a qubit tag. The register keeps them in an
append-only ledger ordered by Sequence, so the sequence of collapses and
promotions a program went through can be replayed after the fact.
*/
type Transition struct {
	Sequence uint64
	Address  int
	From     QubitState
	To       QubitState
	Cause    string
}

// recordTransition appends to the ledger. Callers hold the write lock.
func (r *Register) recordTransition(address int, from, to QubitState, cause string) {
	r.history = append(r.history, Transition{
		Sequence: uint64(len(r.history)) + 1,
		Address:  address,
		From:     from,
		To:       to,
		Cause:    cause,
	})
}

// History returns a copy of the transition ledger.
func (r *Register) History() []Transition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Transition, len(r.history))
	copy(out, r.history)

	return out
}
