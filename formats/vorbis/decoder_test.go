// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audedit/audio"
)

// mockOgg replays interleaved samples, at most chunk frames per read.
type mockOgg struct {
	rate     int
	channels int
	data     []float32
	chunk    int
	err      error
}

func (m *mockOgg) SampleRate() int { return m.rate }
func (m *mockOgg) Channels() int   { return m.channels }

func (m *mockOgg) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.data) == 0 {
		return 0, io.EOF
	}

	n := len(p) - len(p)%m.channels
	if m.chunk > 0 {
		n = min(n, m.chunk*m.channels)
	}
	n = copy(p[:n], m.data)
	m.data = m.data[n:]

	return n, nil
}

func newSource(m *mockOgg) *source {
	return &source{dec: m, sampleRate: m.rate, channels: m.channels}
}

func drain(t *testing.T, src audio.Source, size int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, size)
	for range 1000 {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("source never reached EOF")
	return nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{[]byte("This is not Ogg Vorbis data"), nil} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrDecode) {
			t.Errorf("Decode(%q) error = %v, want ErrDecode", data, err)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		chunk    int
		size     int
		data     []float32
	}{
		{"mono", 1, 0, 64, []float32{0, 0.5, -0.5, 1}},
		{"stereo", 2, 0, 64, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}},
		{"stereo short reads", 2, 1, 64, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}},
		{"5.1 odd destination", 6, 0, 13, make([]float32, 36)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &mockOgg{rate: 48000, channels: tt.channels, data: append([]float32(nil), tt.data...), chunk: tt.chunk}
			got := drain(t, newSource(m), tt.size)

			if len(got) != len(tt.data) {
				t.Fatalf("read %d samples, want %d", len(got), len(tt.data))
			}
			for i := range tt.data {
				if got[i] != tt.data[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], tt.data[i])
				}
			}
		})
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOgg{rate: 8000, channels: 2})
	if _, err := src.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}

	failing := newSource(&mockOgg{rate: 8000, channels: 1, err: io.ErrUnexpectedEOF})
	if _, err := failing.ReadSamples(make([]float32, 4)); !errors.Is(err, ErrDecode) {
		t.Errorf("ReadSamples() error = %v, want ErrDecode", err)
	}
}

func TestSource_Resampled(t *testing.T) {
	t.Parallel()

	m := &mockOgg{rate: 48000, channels: 2, data: make([]float32, 4800*2)}
	got := drain(t, audio.NewResampler(newSource(m), 16000), 512)

	if frames := len(got) / 2; frames < 1590 || frames > 1610 {
		t.Errorf("resampled to %d frames, want about 1600", frames)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := newSource(&mockOgg{rate: 44100, channels: 2, data: make([]float32, 44100*2)})
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
