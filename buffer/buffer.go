// SPDX-License-Identifier: EPL-2.0

// Package buffer holds the fixed-length planar sample block that the editing
// engine is built from, and the factory that produces such blocks.
package buffer

import (
	"fmt"
	"time"
)

// Buffer is a fixed-length block of planar float32 samples. Every channel has
// the same length and the channel count never changes.
type Buffer struct {
	sampleRate int
	data       [][]float32
}

// New returns a silent buffer.
func New(channels, length, sampleRate int) (*Buffer, error) {
	if err := validate(channels, length, sampleRate); err != nil {
		return nil, err
	}

	data := make([][]float32, channels)
	backing := make([]float32, channels*length)
	for c := range data {
		data[c] = backing[c*length : (c+1)*length : (c+1)*length]
	}

	return &Buffer{sampleRate: sampleRate, data: data}, nil
}

func validate(channels, length, sampleRate int) error {
	switch {
	case channels < 1:
		return fmt.Errorf("%w: %d channels", ErrInvalidArgument, channels)
	case length < 0:
		return fmt.Errorf("%w: length %d", ErrInvalidArgument, length)
	case sampleRate < 1:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidArgument, sampleRate)
	}
	return nil
}

// Len returns the number of samples per channel.
func (b *Buffer) Len() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data[0])
}

func (b *Buffer) Channels() int   { return len(b.data) }
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(float64(b.Len()) / float64(b.sampleRate) * float64(time.Second))
}

// Channel returns the live samples of channel c. Writes go straight into the
// buffer.
func (b *Buffer) Channel(c int) []float32 {
	return b.data[c]
}

// Compatible reports whether o has the same channel count and sample rate.
func (b *Buffer) Compatible(o *Buffer) bool {
	return b.Channels() == o.Channels() && b.sampleRate == o.sampleRate
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	return b.Slice(0, b.Len())
}

// Slice returns a deep copy of samples [start, end), clamped to the buffer.
func (b *Buffer) Slice(start, end int) *Buffer {
	start = max(start, 0)
	end = min(end, b.Len())
	if end < start {
		end = start
	}

	out, _ := New(b.Channels(), end-start, b.sampleRate)
	for c, ch := range b.data {
		copy(out.data[c], ch[start:end])
	}

	return out
}

// Split returns deep copies of [0, at) and [at, Len()).
func (b *Buffer) Split(at int) (*Buffer, *Buffer) {
	return b.Slice(0, at), b.Slice(at, b.Len())
}

// Fill sets every sample of every channel to v.
func (b *Buffer) Fill(v float32) {
	for _, ch := range b.data {
		for i := range ch {
			ch[i] = v
		}
	}
}

// Interleaved returns the samples frame by frame.
func (b *Buffer) Interleaved() []float32 {
	channels := b.Channels()
	out := make([]float32, b.Len()*channels)
	for c, ch := range b.data {
		for i, v := range ch {
			out[i*channels+c] = v
		}
	}

	return out
}

// Concat joins buffers end to end into a new buffer. All buffers must share
// channel count and sample rate; nil entries are skipped.
func Concat(bufs ...*Buffer) (*Buffer, error) {
	var first *Buffer
	total := 0
	for _, b := range bufs {
		if b == nil {
			continue
		}
		if first == nil {
			first = b
		} else if !first.Compatible(b) {
			return nil, fmt.Errorf("%w: %d ch @ %d Hz vs %d ch @ %d Hz",
				ErrMismatch, first.Channels(), first.sampleRate, b.Channels(), b.sampleRate)
		}
		total += b.Len()
	}
	if first == nil {
		return nil, fmt.Errorf("%w: nothing to concatenate", ErrInvalidArgument)
	}

	out, err := New(first.Channels(), total, first.sampleRate)
	if err != nil {
		return nil, err
	}

	at := 0
	for _, b := range bufs {
		if b == nil {
			continue
		}
		for c := range out.data {
			copy(out.data[c][at:], b.data[c])
		}
		at += b.Len()
	}

	return out, nil
}
