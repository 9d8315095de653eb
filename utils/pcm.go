// SPDX-License-Identifier: EPL-2.0

package utils

// PCMScale returns the full-scale magnitude of a signed PCM sample with the
// given bit depth, or 0 when the depth is not one of 8, 16, 24 or 32.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 16:
		return 32768.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	}
	return 0
}

// Float32ToPCM converts a float sample in [-1, 1] to a signed integer sample
// of bitDepth bits. Values outside the range are clamped first.
//
// Positive full scale maps to the largest positive integer (e.g. 32767 for
// 16-bit) so the result never overflows.
func Float32ToPCM(x float32, bitDepth int) int {
	scale := PCMScale(bitDepth)
	if scale == 0 {
		return 0
	}

	peak := float64(scale) - 1
	v := float64(Clamp(x, -1, 1)) * peak

	return int(min(max(v, -peak), peak))
}

// PCMToFloat32 converts a signed integer sample of bitDepth bits to a float
// sample in [-1, 1).
func PCMToFloat32(v int, bitDepth int) float32 {
	scale := PCMScale(bitDepth)
	if scale == 0 {
		return 0
	}
	return float32(float64(v) / float64(scale))
}

// Float32ToInt16 is Float32ToPCM specialised for 16-bit output.
func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}
