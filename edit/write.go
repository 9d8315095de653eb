// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"fmt"
	"slices"

	"github.com/ik5/audedit/buffer"
	"github.com/ik5/audedit/segment"
)

// SampleFunc computes a sample from the current value, its absolute
// position on the timeline and its channel index.
type SampleFunc func(sample float32, position, channel int) float32

// Processor transforms one segment. A nil result keeps the segment as is;
// any other result replaces it and may change its length.
type Processor func(b *buffer.Buffer) *buffer.Buffer

// Write overwrites the region with src in place. src channel i lands on the
// i-th selected channel; extra channels on either side are ignored and the
// copy stops at the shorter of src and the region. The length of the audio
// never changes.
func (a *Audio) Write(src *buffer.Buffer, r Region) error {
	if src == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}

	rg, err := a.Resolve(r)
	if err != nil {
		return err
	}

	if src, err = a.conform(src); err != nil {
		return err
	}

	a.debug("write", rg, "src", src.Len())

	end := min(rg.End, rg.Start+src.Len())
	channels := rg.Channels[:min(len(rg.Channels), src.Channels())]

	a.list.Fill(func(b *buffer.Buffer, _ int, offset int) segment.Action {
		from, to := segment.Overlap(rg.Start, end, offset, b.Len())
		at := offset + from - rg.Start
		for i, c := range channels {
			copy(b.Channel(c)[from:to], src.Channel(i)[at:])
		}
		return segment.Continue
	}, rg.Start, end, false)

	return nil
}

// WriteValue sets every selected sample in the region to v.
func (a *Audio) WriteValue(v float32, r Region) error {
	return a.WriteFunc(func(float32, int, int) float32 { return v }, r)
}

// WriteFunc replaces every selected sample in the region with the result of
// fn.
func (a *Audio) WriteFunc(fn SampleFunc, r Region) error {
	if fn == nil {
		return fmt.Errorf("%w: nil sample function", ErrInvalidArgument)
	}

	rg, err := a.Resolve(r)
	if err != nil {
		return err
	}

	a.debug("write", rg)

	a.list.Fill(func(b *buffer.Buffer, _ int, offset int) segment.Action {
		from, to := segment.Overlap(rg.Start, rg.End, offset, b.Len())
		for _, c := range rg.Channels {
			data := b.Channel(c)
			for i := from; i < to; i++ {
				data[i] = fn(data[i], offset+i, c)
			}
		}
		return segment.Continue
	}, rg.Start, rg.End, false)

	return nil
}

// Insert splices src into the timeline at r.Start, or at the end when Start
// is unset. src channel i lands on the i-th selected channel and the other
// channels get silence. A Start past the end pads the audio with silence
// first. A set Duration caps how much of src is inserted.
func (a *Audio) Insert(src *buffer.Buffer, r Region) error {
	if src == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}

	src, err := a.conform(src)
	if err != nil {
		return err
	}

	length := src.Len()
	if r.Duration.IsSet() {
		d, err := r.Duration.ToSamples(a.SampleRate())
		if err != nil {
			return err
		}
		length = min(length, abs(d))
	}

	return a.insert(r, length, func(dst *buffer.Buffer, channels []int, _ int) {
		for i, c := range channels[:min(len(channels), src.Channels())] {
			copy(dst.Channel(c), src.Channel(i))
		}
	})
}

// InsertAudio splices another Audio in, following the rules of Insert.
func (a *Audio) InsertAudio(other *Audio, r Region) error {
	if other == nil {
		return fmt.Errorf("%w: nil audio", ErrInvalidArgument)
	}

	return a.Insert(other.Buffer(), r)
}

// InsertValue inserts r.Duration samples of v on the selected channels.
func (a *Audio) InsertValue(v float32, r Region) error {
	return a.InsertFunc(func(float32, int, int) float32 { return v }, r)
}

// InsertFunc inserts r.Duration samples computed by fn on the selected
// channels. fn sees a zero sample and the position the sample will occupy
// once inserted.
func (a *Audio) InsertFunc(fn SampleFunc, r Region) error {
	if fn == nil {
		return fmt.Errorf("%w: nil sample function", ErrInvalidArgument)
	}
	if !r.Duration.IsSet() {
		return fmt.Errorf("%w: insert needs a duration", ErrInvalidArgument)
	}

	d, err := r.Duration.ToSamples(a.SampleRate())
	if err != nil {
		return err
	}

	return a.insert(r, abs(d), func(dst *buffer.Buffer, channels []int, at int) {
		for _, c := range channels {
			data := dst.Channel(c)
			for i := range data {
				data[i] = fn(0, at+i, c)
			}
		}
	})
}

// insert builds a silent buffer of length samples, lets fill populate the
// selected channels and splices it in.
func (a *Audio) insert(r Region, length int, fill func(dst *buffer.Buffer, channels []int, at int)) error {
	channels, err := resolveChannels(r.Channels, a.Channels())
	if err != nil {
		return err
	}

	if length >= MaxOffset {
		return fmt.Errorf("%w: insert length %v", ErrOutOfRange, r.Duration)
	}

	at := a.Len()
	if r.Start.IsSet() {
		if at, err = r.Start.ToSamples(a.SampleRate()); err != nil {
			return err
		}
		if at >= MaxOffset {
			return fmt.Errorf("%w: insert position %v", ErrOutOfRange, r.Start)
		}
		if at < 0 {
			at = max(at+a.Len(), 0)
		}
		if gap := at - a.Len(); gap > 0 {
			if err := a.padSamples(gap, PadRight, 0); err != nil {
				return err
			}
		}
	}

	rg := Range{Start: at, End: at + length, Channels: channels}
	a.debug("insert", rg)

	if length == 0 {
		return nil
	}

	b, err := a.factory.Silence(length, a.Channels(), a.SampleRate())
	if err != nil {
		return invalid(err)
	}
	fill(b, channels, at)

	if err := a.list.Insert(at, b); err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}

	return nil
}

// Remove deletes the region from the timeline. Channels are ignored: a
// timeline keeps every channel the same length.
func (a *Audio) Remove(r Region) error {
	rg, err := a.Resolve(r)
	if err != nil {
		return err
	}

	a.debug("remove", rg)
	a.list.Remove(rg.Start, rg.End)

	return nil
}

// Process hands every segment of the region to fn, after splitting the
// timeline at the region bounds so fn only sees samples inside it.
func (a *Audio) Process(fn Processor, r Region) error {
	if fn == nil {
		return fmt.Errorf("%w: nil processor", ErrInvalidArgument)
	}

	rg, err := a.Resolve(r)
	if err != nil {
		return err
	}

	a.debug("process", rg)

	a.list.Split(rg.Start)
	a.list.Split(rg.End)

	type replacement struct {
		index int
		buf   *buffer.Buffer
	}
	var out []replacement

	a.list.Fill(func(b *buffer.Buffer, index, _ int) segment.Action {
		if nb := fn(b); nb != nil && nb != b {
			out = append(out, replacement{index, nb})
		}
		return segment.Continue
	}, rg.Start, rg.End, false)

	// Back to front so deleting an emptied segment keeps earlier indices valid.
	for _, rep := range slices.Backward(out) {
		if err := a.list.Replace(rep.index, rep.buf); err != nil {
			return invalid(err)
		}
	}

	return nil
}

// conform resamples src to the Audio's rate when they differ.
func (a *Audio) conform(src *buffer.Buffer) (*buffer.Buffer, error) {
	if src.SampleRate() == a.SampleRate() {
		return src, nil
	}

	stream := &listSource{
		list: segment.FromBuffer(src),
		rg:   Range{End: src.Len(), Channels: allChannels(src.Channels())},
	}

	b, err := a.factory.FromSource(stream, buffer.SourceOptions{SampleRate: a.SampleRate()})
	if err != nil {
		return nil, fmt.Errorf("resampling %d Hz input: %w", src.SampleRate(), err)
	}

	return b, nil
}

func allChannels(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
