package status

import (
	"math"
	"sync/atomic"
)

// Float is an atomic float64 gauge stored as IEEE-754 bits, zero value reads 0.0
type Float struct {
	bits atomic.Uint64
}

// Store sets the gauge
func (f *Float) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Load reads the gauge
func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}
