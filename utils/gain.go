// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// DecibelsToLinear converts a gain in decibels to a linear amplitude factor:
// 10^(db/20).
func DecibelsToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDecibels converts a linear amplitude factor to decibels.
// Non-positive amplitudes map to negative infinity.
func LinearToDecibels(amp float64) float64 {
	if amp <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(amp)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Abs32 returns the absolute value of a float32 sample.
func Abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
