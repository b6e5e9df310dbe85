package core

import "math"

const defaultEpsilon = 1e-12

// LoudnessFloor is the sentinel returned when no energy survives gating.
var LoudnessFloor = math.Inf(-1)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// EnergyToLoudness converts mean-square energy to loudness in LUFS
// using the BS.1770 convention: -0.691 + 10*log10(energy).
// Returns [LoudnessFloor] for zero or negative energy.
func EnergyToLoudness(energy float64) float64 {
	if energy <= 0 {
		return LoudnessFloor
	}

	return -0.691 + 10*math.Log10(energy)
}

// LoudnessToEnergy is the inverse of [EnergyToLoudness].
func LoudnessToEnergy(lufs float64) float64 {
	return math.Pow(10, (lufs+0.691)/10)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
