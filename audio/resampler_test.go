// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audedit/internal/audiotest"
)

// drain reads src to the end with a buffer of bufLen samples.
func drain(t *testing.T, src Source, bufLen int) []float32 {
	t.Helper()

	buf := make([]float32, bufLen)
	var out []float32

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 2, 1000)
	resampler := NewResampler(src, 8000)

	if resampler.SampleRate() != 8000 {
		t.Errorf("Resampler.SampleRate() = %d, want 8000", resampler.SampleRate())
	}

	if resampler.Channels() != 2 {
		t.Errorf("Resampler.Channels() = %d, want 2", resampler.Channels())
	}
}

func TestResampler_SameRateIsExact(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 1, 100, func(sample, _ int) float32 {
		return float32(sample) / 100
	})
	got := drain(t, NewResampler(src, 8000), 64)

	if len(got) != 100 {
		t.Fatalf("got %d samples, want 100", len(got))
	}
	for i, v := range got {
		if math.Abs(float64(v)-float64(i)/100) > 1e-6 {
			t.Fatalf("sample %d = %v, want %v", i, v, float32(i)/100)
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		frames  int
		want    int
	}{
		{"44.1k to 16k", 44100, 16000, 44100, 16000},
		{"48k to 8k", 48000, 8000, 48000, 8000},
		{"8k to 16k", 8000, 16000, 8000, 15999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, 1, tt.frames, 440)
			got := drain(t, NewResampler(src, tt.dstRate), 1024)

			if diff := len(got) - tt.want; diff > 1 || diff < -1 {
				t.Errorf("got %d samples, want %d", len(got), tt.want)
			}
		})
	}
}

func TestResampler_PreservesConstant(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 2, 4410, 0.5).WithChunk(7)
	got := drain(t, NewResampler(src, 22050), 256)

	if len(got)%2 != 0 {
		t.Fatalf("odd sample count %d for stereo output", len(got))
	}
	for i, v := range got {
		if math.Abs(float64(v)-0.5) > 1e-5 {
			t.Fatalf("sample %d = %v, want 0.5", i, v)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 10), 8000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewFailingSource(8000, 50), 8000)
	buf := make([]float32, 16)

	var err error
	for range 100 {
		if _, err = r.ReadSamples(buf); err != nil {
			break
		}
	}
	if !errors.Is(err, audiotest.ErrMockRead) {
		t.Errorf("error = %v, want ErrMockRead", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 4000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	b.ReportAllocs()

	buf := make([]float32, 4096)
	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 16000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
