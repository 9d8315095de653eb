// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Easing maps normalised progress t in [0, 1] to a curve value in [0, 1].
// Every curve satisfies f(0) == 0 and f(1) == 1.
type Easing func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// QuadIn accelerates from zero.
func QuadIn(t float64) float64 { return t * t }

// QuadOut decelerates to one.
func QuadOut(t float64) float64 { return t * (2 - t) }

// CubicInOut accelerates until the midpoint, then decelerates.
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 0.5*u*u*u + 1
}

// SineInOut follows half a cosine period.
func SineInOut(t float64) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*t))
}

// Easings names the built-in curves, for lookups from configuration or flags.
var Easings = map[string]Easing{
	"linear":      Linear,
	"quad-in":     QuadIn,
	"quad-out":    QuadOut,
	"cubic-inout": CubicInOut,
	"sine-inout":  SineInOut,
}
