// SPDX-License-Identifier: EPL-2.0

// Package segment stores a timeline as an ordered list of buffers and walks
// windows of it.
//
// A List behaves like one continuous run of samples while keeping the data in
// separate chunks, so edits at arbitrary offsets only touch the chunks they
// overlap. Segments are contiguous: segment i+1 starts where segment i ends.
package segment

import (
	"fmt"
	"slices"
	"time"

	"github.com/ik5/audedit/buffer"
)

// List is an ordered sequence of buffers sharing one channel count and
// sample rate. It owns its buffers; callers must not keep references to
// them across mutating calls.
type List struct {
	segments   []*buffer.Buffer
	length     int
	channels   int
	sampleRate int
}

// New returns an empty list.
func New(channels, sampleRate int) (*List, error) {
	if channels < 1 || sampleRate < 1 {
		return nil, fmt.Errorf("%w: %d channels @ %d Hz", buffer.ErrInvalidArgument, channels, sampleRate)
	}

	return &List{channels: channels, sampleRate: sampleRate}, nil
}

// FromBuffer returns a list holding b as its only segment. The list takes
// ownership of b.
func FromBuffer(b *buffer.Buffer) *List {
	l := &List{channels: b.Channels(), sampleRate: b.SampleRate()}
	if b.Len() > 0 {
		l.segments = []*buffer.Buffer{b}
		l.length = b.Len()
	}

	return l
}

// Len returns the total number of samples per channel.
func (l *List) Len() int        { return l.length }
func (l *List) Channels() int   { return l.channels }
func (l *List) SampleRate() int { return l.sampleRate }

// Duration returns the playing time of the whole timeline.
func (l *List) Duration() time.Duration {
	return time.Duration(float64(l.length) / float64(l.sampleRate) * float64(time.Second))
}

// Count returns the number of segments.
func (l *List) Count() int { return len(l.segments) }

// At returns segment i.
func (l *List) At(i int) *buffer.Buffer { return l.segments[i] }

// Bounds returns the absolute start offset of every segment, plus Len() as
// the final entry.
func (l *List) Bounds() []int {
	out := make([]int, 0, len(l.segments)+1)
	off := 0
	for _, s := range l.segments {
		out = append(out, off)
		off += s.Len()
	}

	return append(out, off)
}

// locate returns the index of the segment containing offset and that
// segment's start. For offset == Len() it returns (Count(), Len()).
func (l *List) locate(offset int) (int, int) {
	start := 0
	for i, s := range l.segments {
		if offset < start+s.Len() {
			return i, start
		}
		start += s.Len()
	}

	return len(l.segments), start
}

func (l *List) check(b *buffer.Buffer) error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", buffer.ErrInvalidArgument)
	}
	if b.Channels() != l.channels || b.SampleRate() != l.sampleRate {
		return fmt.Errorf("%w: got %d ch @ %d Hz, list is %d ch @ %d Hz",
			ErrMismatch, b.Channels(), b.SampleRate(), l.channels, l.sampleRate)
	}

	return nil
}

// Split makes offset a segment boundary. It is a no-op when offset already
// is one or lies outside (0, Len()).
func (l *List) Split(offset int) {
	if offset <= 0 || offset >= l.length {
		return
	}

	i, start := l.locate(offset)
	if start == offset {
		return
	}

	left, right := l.segments[i].Split(offset - start)
	l.segments[i] = left
	l.segments = slices.Insert(l.segments, i+1, right)
}

// Join merges every segment overlapping [start, end) into one segment.
func (l *List) Join(start, end int) {
	start, end = l.clamp(start, end)
	if start >= end {
		return
	}

	first, _ := l.locate(start)
	last, _ := l.locate(end - 1)
	if first == last {
		return
	}

	// Segments are checked on the way in, so they always concatenate.
	joined, err := buffer.Concat(l.segments[first : last+1]...)
	if err != nil {
		return
	}

	l.segments = slices.Replace(l.segments, first, last+1, joined)
}

// Insert splices b in at offset. offset may equal Len() to append.
func (l *List) Insert(offset int, b *buffer.Buffer) error {
	if err := l.check(b); err != nil {
		return err
	}
	if offset < 0 || offset > l.length {
		return fmt.Errorf("%w: insert at %d, length %d", ErrOutOfRange, offset, l.length)
	}
	if b.Len() == 0 {
		return nil
	}

	l.Split(offset)
	i, _ := l.locate(offset)
	l.segments = slices.Insert(l.segments, i, b)
	l.length += b.Len()

	return nil
}

// Append adds b at the end of the timeline.
func (l *List) Append(b *buffer.Buffer) error {
	return l.Insert(l.length, b)
}

// Remove deletes samples [start, end).
func (l *List) Remove(start, end int) {
	start, end = l.clamp(start, end)
	if start >= end {
		return
	}

	l.Split(start)
	l.Split(end)

	first, _ := l.locate(start)
	last, _ := l.locate(end)
	l.segments = slices.Delete(l.segments, first, last)
	l.length -= end - start
}

// Replace swaps segment i for b, which may differ in length.
func (l *List) Replace(i int, b *buffer.Buffer) error {
	if i < 0 || i >= len(l.segments) {
		return fmt.Errorf("%w: segment %d of %d", ErrOutOfRange, i, len(l.segments))
	}
	if err := l.check(b); err != nil {
		return err
	}

	l.length += b.Len() - l.segments[i].Len()
	if b.Len() == 0 {
		l.segments = slices.Delete(l.segments, i, i+1)
		return nil
	}
	l.segments[i] = b

	return nil
}

// Slice returns a new list holding deep copies of samples [start, end),
// clamped to [0, Len()].
func (l *List) Slice(start, end int) *List {
	out := &List{channels: l.channels, sampleRate: l.sampleRate}

	start, end = l.clamp(start, end)
	if start >= end {
		return out
	}

	l.Fill(func(b *buffer.Buffer, _ int, offset int) Action {
		from, to := Overlap(start, end, offset, b.Len())
		part := b.Slice(from, to)
		out.segments = append(out.segments, part)
		out.length += part.Len()
		return Continue
	}, start, end, false)

	return out
}

// CopyTo copies samples from start onward into dst, where dst[i] receives
// channel channels[i]. It copies as many samples as the shortest dst slice
// holds and returns that count, less when the list ends first.
func (l *List) CopyTo(dst [][]float32, channels []int, start int) int {
	if len(dst) == 0 || len(dst) != len(channels) || start < 0 {
		return 0
	}

	n := len(dst[0])
	for _, d := range dst[1:] {
		n = min(n, len(d))
	}
	end := min(start+n, l.length)

	l.Fill(func(b *buffer.Buffer, _ int, offset int) Action {
		from, to := Overlap(start, end, offset, b.Len())
		at := offset + from - start
		for i, c := range channels {
			copy(dst[i][at:], b.Channel(c)[from:to])
		}
		return Continue
	}, start, end, false)

	return max(end-start, 0)
}

// Clone returns a deep copy of the whole list.
func (l *List) Clone() *List {
	return l.Slice(0, l.length)
}

// Buffer returns the whole timeline joined into one new buffer.
func (l *List) Buffer() *buffer.Buffer {
	if len(l.segments) == 0 {
		b, _ := buffer.New(l.channels, 0, l.sampleRate)
		return b
	}

	b, err := buffer.Concat(l.segments...)
	if err != nil {
		return nil
	}

	return b
}

func (l *List) clamp(start, end int) (int, int) {
	return max(start, 0), min(end, l.length)
}
