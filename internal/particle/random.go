package particle

import "math/rand"

// RandomInRange returns a random float64 in the range [min, max].
// rng may be nil, in which case the global source is used.
func RandomInRange(rng *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	if rng == nil {
		return min + rand.Float64()*(max-min)
	}
	return min + rng.Float64()*(max-min)
}

// Jitter returns base varied uniformly by span, i.e. a value in
// [base - span/2, base + span/2]. A zero span returns base unchanged.
func Jitter(rng *rand.Rand, base, span float64) float64 {
	if span <= 0 {
		return base
	}
	return RandomInRange(rng, base-span/2, base+span/2)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
