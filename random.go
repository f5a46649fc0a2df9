package qvm

import (
	"math/rand/v2"
	"time"
)

/*
RandomSource yields uniform draws from [0,1). Measurement consumes exactly one
draw per call, so a seeded source makes a whole program reproducible.
*math/rand/v2.Rand satisfies it.
*/
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a PCG backed source. A zero seed is replaced by the
// current time.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
