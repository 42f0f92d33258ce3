// Package scenario fabricates EnergyPlus profiling datasets under
// hypothetical execution conditions: an uncontended baseline run, a
// memory-contended run, a multithreaded run, a hybrid of both, and a
// full concurrency matrix sweep.
package scenario

import "math/rand"

// NewRand returns the deterministic source every generator draws from.
// Runs with the same seed fabricate identical datasets.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func normal(r *rand.Rand, mean, std float64) float64 {
	return r.NormFloat64()*std + mean
}

// jitterCalls perturbs a call count within the given bounds, never
// dropping below one call.
func jitterCalls(r *rand.Rand, calls uint64, lo, hi float64) uint64 {
	jittered := int64(float64(calls) * uniform(r, lo, hi))
	if jittered < 1 {
		return 1
	}
	return uint64(jittered)
}

// sampleWindow caps how many individual call times are drawn to derive
// min/max for very hot functions.
const sampleWindow = 100
