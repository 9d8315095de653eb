// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{"start returns y1", 0, 1, 2, 3, 0, 1},
		{"end returns y2", 0, 1, 2, 3, 1, 2},
		{"ramp stays linear", 1, 2, 3, 4, 0.25, 2.25},
		{"ramp midpoint", 0, 1, 2, 3, 0.5, 1.5},
		{"negative ramp", -3, -2, -1, 0, 0.5, -1.5},
		{"flat peak overshoots", 0, 1, 1, 0, 0.5, 1.125},
		{"silence", 0, 0, 0, 0, 0.7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("CubicInterpolate(%v, %v, %v, %v, %v) = %v, want %v",
					tt.y0, tt.y1, tt.y2, tt.y3, tt.x, got, tt.want)
			}
		})
	}
}

// A Catmull-Rom segment passes through both inner points for any outer
// neighbours.
func TestCubicInterpolate_Endpoints(t *testing.T) {
	t.Parallel()

	for _, y0 := range []float32{-1, 0, 0.5} {
		for _, y3 := range []float32{-0.25, 0, 1} {
			if got := CubicInterpolate(y0, 0.3, -0.6, y3, 0); got != 0.3 {
				t.Errorf("x=0 with y0=%v y3=%v: got %v, want 0.3", y0, y3, got)
			}
			if got := CubicInterpolate(y0, 0.3, -0.6, y3, 1); math.Abs(float64(got+0.6)) > 1e-6 {
				t.Errorf("x=1 with y0=%v y3=%v: got %v, want -0.6", y0, y3, got)
			}
		}
	}
}

func TestCubicInterpolate_MonotonicRamp(t *testing.T) {
	t.Parallel()

	prev := CubicInterpolate(0, 0.25, 0.5, 0.75, 0)
	for i := 1; i <= 20; i++ {
		got := CubicInterpolate(0, 0.25, 0.5, 0.75, float32(i)/20)
		if got < prev {
			t.Fatalf("step %d: %v < %v", i, got, prev)
		}
		prev = got
	}
}

func TestCubicInterpolateFrame(t *testing.T) {
	t.Parallel()

	f0 := []float32{0, 1}
	f1 := []float32{1, 2}
	f2 := []float32{2, 3}
	f3 := []float32{3, 4}
	dst := make([]float32, 2)

	CubicInterpolateFrame(dst, f0, f1, f2, f3, 0.5)

	for c, want := range []float32{1.5, 2.5} {
		if math.Abs(float64(dst[c]-want)) > 1e-6 {
			t.Errorf("channel %d = %v, want %v", c, dst[c], want)
		}
	}
}

func TestCubicInterpolateFrame_ZeroAllocs(t *testing.T) {
	f := []float32{0.1, 0.2}
	dst := make([]float32, 2)

	allocs := testing.AllocsPerRun(100, func() {
		CubicInterpolateFrame(dst, f, f, f, f, 0.3)
	})
	if allocs != 0 {
		t.Errorf("CubicInterpolateFrame allocated %v times per run", allocs)
	}
}

func BenchmarkCubicInterpolateFrame(b *testing.B) {
	f0 := []float32{0.1, -0.1}
	f1 := []float32{0.5, -0.5}
	f2 := []float32{0.3, -0.3}
	f3 := []float32{-0.2, 0.2}
	dst := make([]float32, 2)

	b.ReportAllocs()
	for b.Loop() {
		CubicInterpolateFrame(dst, f0, f1, f2, f3, 0.42)
	}
}
