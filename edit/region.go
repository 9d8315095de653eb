// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"fmt"
	"math"
	"time"
)

// Offset is a position or length on the timeline, given either in seconds
// or in samples. The zero Offset is unset.
type Offset struct {
	value   float64
	samples bool
	set     bool
}

// Seconds returns an Offset measured in seconds.
func Seconds(s float64) Offset { return Offset{value: s, set: true} }

// Samples returns an Offset measured in samples.
func Samples(n int) Offset { return Offset{value: float64(n), samples: true, set: true} }

// Time returns an Offset for a time.Duration.
func Time(d time.Duration) Offset { return Seconds(d.Seconds()) }

// IsSet reports whether the Offset was given.
func (o Offset) IsSet() bool { return o.set }

func (o Offset) String() string {
	switch {
	case !o.set:
		return "unset"
	case o.samples:
		return fmt.Sprintf("%d samples", int(o.value))
	}
	return fmt.Sprintf("%gs", o.value)
}

// MaxOffset bounds every converted offset. Larger magnitudes saturate so
// that sums of two offsets cannot overflow an int.
const MaxOffset = math.MaxInt >> 2

// ToSamples converts the offset at sampleRate, rounding to the nearest
// sample. The result saturates at ±MaxOffset.
func (o Offset) ToSamples(sampleRate int) (int, error) {
	if math.IsNaN(o.value) || math.IsInf(o.value, 0) {
		return 0, fmt.Errorf("%w: offset %v", ErrInvalidArgument, o.value)
	}

	v := o.value
	if !o.samples {
		v = math.Round(v * float64(sampleRate))
	}

	switch {
	case v >= MaxOffset:
		return MaxOffset, nil
	case v <= -MaxOffset:
		return -MaxOffset, nil
	}
	return int(v), nil
}

// Region addresses part of the audio. The zero Region selects everything.
//
// Start counts from the end when negative. An unset Duration runs to the end;
// a negative Duration selects the span ending at Start (or at the end of the
// audio when Start is unset) and marks the range as backward. Nil Channels
// selects every channel.
type Region struct {
	Start    Offset
	Duration Offset
	Channels []int
}

// All selects the whole audio on every channel.
var All = Region{}

// Range is a resolved Region in absolute samples:
// 0 <= Start <= End <= length of the audio.
type Range struct {
	Start    int
	End      int
	Channels []int
	Backward bool
}

// Length returns End - Start.
func (r Range) Length() int { return r.End - r.Start }

// Empty reports whether the range holds no samples.
func (r Range) Empty() bool { return r.End <= r.Start }

// Timeline is what a Resolver needs to know about the audio.
type Timeline interface {
	Len() int
	Channels() int
	SampleRate() int
}

// Resolver turns a caller's Region into absolute sample bounds.
type Resolver interface {
	Resolve(t Timeline, r Region) (Range, error)
}

// DefaultResolver implements the rules documented on Region.
type DefaultResolver struct{}

var _ Resolver = DefaultResolver{}

// Resolve applies the Region rules to t. Bounds are clamped to the timeline,
// so a start past the end yields an empty range at the end.
func (DefaultResolver) Resolve(t Timeline, r Region) (Range, error) {
	length := t.Len()
	rate := t.SampleRate()

	channels, err := resolveChannels(r.Channels, t.Channels())
	if err != nil {
		return Range{}, err
	}

	start := 0
	if r.Start.IsSet() {
		if start, err = r.Start.ToSamples(rate); err != nil {
			return Range{}, err
		}
		if start < 0 {
			start += length
		}
	}

	end := length
	backward := false
	if r.Duration.IsSet() {
		d, err := r.Duration.ToSamples(rate)
		if err != nil {
			return Range{}, err
		}

		if d >= 0 {
			end = start + d
		} else {
			if !r.Start.IsSet() {
				start = length
			}
			end = start
			start += d
			backward = true
		}
	}

	start = min(max(start, 0), length)
	end = min(max(end, start), length)

	return Range{Start: start, End: end, Channels: channels, Backward: backward}, nil
}

func resolveChannels(requested []int, count int) ([]int, error) {
	if requested == nil {
		return allChannels(count), nil
	}

	seen := make(map[int]bool, len(requested))
	out := make([]int, 0, len(requested))
	for _, c := range requested {
		if c < 0 || c >= count {
			return nil, fmt.Errorf("%w: channel %d of %d", ErrOutOfRange, c, count)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: channel %d listed twice", ErrInvalidArgument, c)
		}
		seen[c] = true
		out = append(out, c)
	}

	return out, nil
}
