// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"fmt"
	"math"
	"slices"

	"github.com/ik5/audedit/buffer"
	"github.com/ik5/audedit/segment"
	"github.com/ik5/audedit/utils"
)

// DefaultFadeGain and DefaultTrimThreshold are in decibels.
const (
	DefaultFadeGain      = -40.0
	DefaultTrimThreshold = -40.0
)

// apply runs fn over every selected sample of rg.
func (a *Audio) apply(rg Range, fn func(v float32) float32) {
	a.list.Fill(func(b *buffer.Buffer, _ int, offset int) segment.Action {
		from, to := segment.Overlap(rg.Start, rg.End, offset, b.Len())
		for _, c := range rg.Channels {
			data := b.Channel(c)[from:to]
			for i, v := range data {
				data[i] = fn(v)
			}
		}
		return segment.Continue
	}, rg.Start, rg.End, false)
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s %v", ErrInvalidArgument, name, v)
	}
	return nil
}

// Gain scales the region by db decibels.
func (a *Audio) Gain(db float64, r Region) error {
	if err := finite("gain", db); err != nil {
		return err
	}

	rg, err := a.Resolve(r)
	if err != nil {
		return err
	}
	if db == 0 {
		return nil
	}

	a.debug("gain", rg, "db", db)

	k := float32(utils.DecibelsToLinear(db))
	a.apply(rg, func(v float32) float32 { return v * k })

	return nil
}

// Invert flips the polarity of the region.
func (a *Audio) Invert(r Region) error {
	rg, err := a.Resolve(r)
	if err != nil {
		return err
	}

	a.debug("invert", rg)
	a.apply(rg, func(v float32) float32 { return -v })

	return nil
}

// Normalize amplifies the region so its peak reaches full scale. Regions
// already at or above full scale are clipped to [-1, 1] and silent regions
// are left alone.
func (a *Audio) Normalize(r Region) error {
	rg, err := a.Resolve(r)
	if err != nil {
		return err
	}

	lo, hi := a.limits(rg)
	peak := max(utils.Abs32(lo), utils.Abs32(hi))
	if peak == 0 {
		return nil
	}

	amp := float32(max(1/float64(peak), 1))
	a.debug("normalize", rg, "peak", peak, "amp", amp)

	a.apply(rg, func(v float32) float32 { return utils.Clamp(v*amp, -1, 1) })

	return nil
}

// FadeOptions shape a fade. Level, when positive, is the starting linear
// amplitude and takes precedence over Gain. Gain is in decibels; a zero Gain
// means DefaultFadeGain, so a 0 dB start is asked for with Level: 1.
// Easing defaults to utils.Linear.
type FadeOptions struct {
	Gain   float64
	Level  float64
	Easing utils.Easing
}

func (o FadeOptions) gain() (float64, error) {
	if err := finite("fade level", o.Level); err != nil {
		return 0, err
	}
	if err := finite("fade gain", o.Gain); err != nil {
		return 0, err
	}

	switch {
	case o.Level > 0:
		return utils.LinearToDecibels(o.Level), nil
	case o.Gain != 0:
		return o.Gain, nil
	}
	return DefaultFadeGain, nil
}

// Fade ramps the region from the fade gain up to unity. A forward region
// fades in from its start; a backward one (negative Duration) fades out
// towards its end.
func (a *Audio) Fade(r Region, opts FadeOptions) error {
	g, err := opts.gain()
	if err != nil {
		return err
	}

	ease := opts.Easing
	if ease == nil {
		ease = utils.Linear
	}

	rg, err := a.Resolve(r)
	if err != nil {
		return err
	}
	if rg.Empty() {
		return nil
	}

	a.debug("fade", rg, "gain", g, "backward", rg.Backward)

	length := float64(rg.Length())
	a.list.Fill(func(b *buffer.Buffer, _ int, offset int) segment.Action {
		from, to := segment.Overlap(rg.Start, rg.End, offset, b.Len())
		for i := from; i < to; i++ {
			k := offset + i - rg.Start
			if rg.Backward {
				k = rg.End - 1 - (offset + i)
			}

			t := float64(k) / length
			factor := float32(utils.DecibelsToLinear(-ease(t)*g + g))
			for _, c := range rg.Channels {
				b.Channel(c)[i] *= factor
			}
		}
		return segment.Continue
	}, rg.Start, rg.End, false)

	return nil
}

// Reverse reverses the order of samples inside the region.
func (a *Audio) Reverse(r Region) error {
	rg, err := a.Resolve(r)
	if err != nil {
		return err
	}

	a.debug("reverse", rg)

	a.list.Join(rg.Start, rg.End)
	a.list.Fill(func(b *buffer.Buffer, _ int, offset int) segment.Action {
		from, to := segment.Overlap(rg.Start, rg.End, offset, b.Len())
		for _, c := range rg.Channels {
			slices.Reverse(b.Channel(c)[from:to])
		}
		return segment.Continue
	}, rg.Start, rg.End, false)

	return nil
}

// TrimSide selects which ends Trim cuts.
type TrimSide int

const (
	TrimBoth TrimSide = iota
	TrimLeft
	TrimRight
)

// ParseTrimSide maps "both", "left" and "right" to a TrimSide.
func ParseTrimSide(s string) (TrimSide, error) {
	switch s {
	case "", "both":
		return TrimBoth, nil
	case "left", "start":
		return TrimLeft, nil
	case "right", "end":
		return TrimRight, nil
	}
	return 0, fmt.Errorf("%w: trim side %q", ErrInvalidArgument, s)
}

// TrimOptions tune Trim. Level, when positive, is a linear threshold and
// takes precedence over Threshold, which is in decibels. A zero Threshold
// means DefaultTrimThreshold; a 0 dB threshold is asked for with Level: 1.
type TrimOptions struct {
	Threshold float64
	Level     float64
	Side      TrimSide
}

func (o TrimOptions) level() (float32, error) {
	if err := finite("trim level", o.Level); err != nil {
		return 0, err
	}
	if err := finite("trim threshold", o.Threshold); err != nil {
		return 0, err
	}

	switch {
	case o.Level > 0:
		return float32(o.Level), nil
	case o.Threshold != 0:
		return float32(utils.DecibelsToLinear(o.Threshold)), nil
	}
	return float32(utils.DecibelsToLinear(DefaultTrimThreshold)), nil
}

// Trim cuts leading and trailing samples whose magnitude stays at or below
// the threshold on every channel. Audio that is silent throughout is left
// unchanged.
func (a *Audio) Trim(opts TrimOptions) error {
	level, err := opts.level()
	if err != nil {
		return err
	}

	length := a.Len()
	first, last := 0, length
	loud := func(b *buffer.Buffer, i int) bool {
		for c := range b.Channels() {
			if utils.Abs32(b.Channel(c)[i]) > level {
				return true
			}
		}
		return false
	}

	if opts.Side != TrimRight {
		a.list.Fill(func(b *buffer.Buffer, _ int, offset int) segment.Action {
			for i := range b.Len() {
				if loud(b, i) {
					first = offset + i
					return segment.Stop
				}
			}
			return segment.Continue
		}, 0, length, false)
	}

	if opts.Side != TrimLeft {
		a.list.Fill(func(b *buffer.Buffer, _ int, offset int) segment.Action {
			for i := b.Len() - 1; i >= 0; i-- {
				if loud(b, i) {
					last = offset + i + 1
					return segment.Stop
				}
			}
			return segment.Continue
		}, 0, length, true)
	}

	a.debug("trim", Range{Start: first, End: last}, "level", level)

	if first == 0 && last == length {
		return nil
	}
	a.list = a.list.Slice(first, last)

	return nil
}

// PadSide selects where Pad adds samples.
type PadSide int

const (
	PadRight PadSide = iota
	PadLeft
)

// ParsePadSide maps "left" and "right" to a PadSide.
func ParsePadSide(s string) (PadSide, error) {
	switch s {
	case "", "right", "end":
		return PadRight, nil
	case "left", "start":
		return PadLeft, nil
	}
	return 0, fmt.Errorf("%w: pad side %q", ErrInvalidArgument, s)
}

// PadOptions tune Pad. Value fills the new samples.
type PadOptions struct {
	Side  PadSide
	Value float32
}

// Pad extends the audio to at least seconds long, rounding up to whole
// samples. Audio that is already long enough is unchanged.
func (a *Audio) Pad(seconds float64, opts PadOptions) error {
	if err := finite("pad duration", seconds); err != nil {
		return err
	}

	needed := ceilSamples(seconds, a.SampleRate()) - a.Len()
	if needed <= 0 {
		return nil
	}

	return a.padSamples(needed, opts.Side, opts.Value)
}

func (a *Audio) padSamples(n int, side PadSide, v float32) error {
	b, err := a.factory.Silence(n, a.Channels(), a.SampleRate())
	if err != nil {
		return invalid(err)
	}
	if v != 0 {
		b.Fill(v)
	}

	at := a.Len()
	if side == PadLeft {
		at = 0
	}

	a.debug("pad", Range{Start: at, End: at + n}, "value", v)

	return a.list.Insert(at, b)
}

// Mix is reserved for mixing other audio into the region and currently
// leaves the audio unchanged.
func (a *Audio) Mix(*Audio, Region) error { return nil }

// Rate is reserved for changing playback rate and currently leaves the audio
// unchanged.
func (a *Audio) Rate(float64, Region) error { return nil }

// Shift is reserved for pitch shifting and currently leaves the audio
// unchanged.
func (a *Audio) Shift(float64, Region) error { return nil }
