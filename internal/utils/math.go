package utils

import "math"

// SeededFraction maps an integer seed to a value in [0, 1) using a fixed
// sine-fraction formula. The mapping is pure: the same seed always yields
// the same value, with no wall-clock or external entropy involved.
func SeededFraction(seed int) float64 {
	x := math.Sin(float64(seed)) * 10000
	f := x - math.Floor(x)
	// Guard against the degenerate f == 1.0 case from floating point rounding.
	if f >= 1 {
		f = math.Nextafter(1, 0)
	}
	return f
}

// SeededIndex maps a seed to an index in [0, n). n must be positive.
func SeededIndex(seed, n int) int {
	return int(SeededFraction(seed) * float64(n))
}

// SeededRange maps a seed to an integer in [min, max] inclusive.
func SeededRange(seed, min, max int) int {
	if min >= max {
		return min
	}
	return min + SeededIndex(seed, max-min+1)
}
