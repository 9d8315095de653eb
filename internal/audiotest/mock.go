// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic audio sources for tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// Waveform returns the value of channel ch at frame i.
type Waveform func(i, ch int) float32

// MockSource streams frames produced by a Waveform. It satisfies
// audio.Source without importing the audio package.
type MockSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	chunk    int
	wave     Waveform
	closed   bool
}

// NewMockSource returns a source of frames frames computed by wave.
func NewMockSource(sampleRate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{
		rate:     sampleRate,
		channels: channels,
		frames:   frames,
		wave:     wave,
	}
}

// NewSilentSource returns frames frames of zeros.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewSineSource returns a full-scale sine at freq Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, freq float64) *MockSource {
	step := 2 * math.Pi * freq / float64(sampleRate)
	return NewMockSource(sampleRate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(step * float64(i)))
	})
}

// NewConstantSource returns frames frames all holding v.
func NewConstantSource(sampleRate, channels, frames int, v float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return v })
}

// WithChunk caps every read at n frames so callers have to loop.
func (m *MockSource) WithChunk(n int) *MockSource {
	m.chunk = n
	return m
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	left := m.frames - m.pos
	if left <= 0 {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, left)
	if m.chunk > 0 && n > m.chunk {
		n = m.chunk
	}

	i := 0
	for f := m.pos; f < m.pos+n; f++ {
		for ch := range m.channels {
			dst[i] = m.wave(f, ch)
			i++
		}
	}
	m.pos += n

	if m.pos == m.frames {
		return i, io.EOF
	}
	return i, nil
}

// ErrMockRead is returned by FailingSource.
var ErrMockRead = errors.New("mock read failure")

// FailingSource yields good frames, then fails with ErrMockRead.
type FailingSource struct {
	*MockSource
	limit int
}

// NewFailingSource returns a mono source of 0.25 that fails once limit
// frames have been read.
func NewFailingSource(sampleRate, limit int) *FailingSource {
	return &FailingSource{
		MockSource: NewConstantSource(sampleRate, 1, math.MaxInt32, 0.25),
		limit:      limit,
	}
}

func (f *FailingSource) ReadSamples(dst []float32) (int, error) {
	room := f.limit - f.pos
	if room <= 0 {
		return 0, ErrMockRead
	}
	return f.MockSource.ReadSamples(dst[:min(len(dst), room)])
}
