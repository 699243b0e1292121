package engine

import "math/rand/v2"

// Random is the spawner's entropy source
// Lane draws use IntN and kind draws use Float64 in [0,1)
type Random interface {
	Float64() float64
	IntN(n int) int
}

// NewRandom returns a PCG source; a zero seed is replaced by a random one
func NewRandom(seed uint64) Random {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
