// SPDX-License-Identifier: EPL-2.0

package edit

import "github.com/ik5/audedit/buffer"

// Chain applies a sequence of edits, stopping at the first failure:
//
//	err := a.Chain().Trim(TrimOptions{}).Normalize(All).Fade(Region{Duration: Seconds(0.5)}, FadeOptions{}).Err()
type Chain struct {
	a   *Audio
	err error
}

// Chain starts a chain of edits on a.
func (a *Audio) Chain() *Chain { return &Chain{a: a} }

// Err returns the first error met along the chain.
func (c *Chain) Err() error { return c.err }

// Audio returns the edited audio.
func (c *Chain) Audio() *Audio { return c.a }

func (c *Chain) do(op func() error) *Chain {
	if c.err == nil {
		c.err = op()
	}
	return c
}

// Write runs Audio.Write unless an earlier step failed.
func (c *Chain) Write(src *buffer.Buffer, r Region) *Chain {
	return c.do(func() error { return c.a.Write(src, r) })
}

// WriteValue runs Audio.WriteValue unless an earlier step failed.
func (c *Chain) WriteValue(v float32, r Region) *Chain {
	return c.do(func() error { return c.a.WriteValue(v, r) })
}

// WriteFunc runs Audio.WriteFunc unless an earlier step failed.
func (c *Chain) WriteFunc(fn SampleFunc, r Region) *Chain {
	return c.do(func() error { return c.a.WriteFunc(fn, r) })
}

// Insert runs Audio.Insert unless an earlier step failed.
func (c *Chain) Insert(src *buffer.Buffer, r Region) *Chain {
	return c.do(func() error { return c.a.Insert(src, r) })
}

// InsertValue runs Audio.InsertValue unless an earlier step failed.
func (c *Chain) InsertValue(v float32, r Region) *Chain {
	return c.do(func() error { return c.a.InsertValue(v, r) })
}

// InsertFunc runs Audio.InsertFunc unless an earlier step failed.
func (c *Chain) InsertFunc(fn SampleFunc, r Region) *Chain {
	return c.do(func() error { return c.a.InsertFunc(fn, r) })
}

// Remove runs Audio.Remove unless an earlier step failed.
func (c *Chain) Remove(r Region) *Chain {
	return c.do(func() error { return c.a.Remove(r) })
}

// Process runs Audio.Process unless an earlier step failed.
func (c *Chain) Process(fn Processor, r Region) *Chain {
	return c.do(func() error { return c.a.Process(fn, r) })
}

// Gain runs Audio.Gain unless an earlier step failed.
func (c *Chain) Gain(db float64, r Region) *Chain {
	return c.do(func() error { return c.a.Gain(db, r) })
}

// Invert runs Audio.Invert unless an earlier step failed.
func (c *Chain) Invert(r Region) *Chain {
	return c.do(func() error { return c.a.Invert(r) })
}

// Normalize runs Audio.Normalize unless an earlier step failed.
func (c *Chain) Normalize(r Region) *Chain {
	return c.do(func() error { return c.a.Normalize(r) })
}

// Fade runs Audio.Fade unless an earlier step failed.
func (c *Chain) Fade(r Region, opts FadeOptions) *Chain {
	return c.do(func() error { return c.a.Fade(r, opts) })
}

// Reverse runs Audio.Reverse unless an earlier step failed.
func (c *Chain) Reverse(r Region) *Chain {
	return c.do(func() error { return c.a.Reverse(r) })
}

// Trim runs Audio.Trim unless an earlier step failed.
func (c *Chain) Trim(opts TrimOptions) *Chain {
	return c.do(func() error { return c.a.Trim(opts) })
}

// Pad runs Audio.Pad unless an earlier step failed.
func (c *Chain) Pad(seconds float64, opts PadOptions) *Chain {
	return c.do(func() error { return c.a.Pad(seconds, opts) })
}

// Mix runs Audio.Mix unless an earlier step failed.
func (c *Chain) Mix(other *Audio, r Region) *Chain {
	return c.do(func() error { return c.a.Mix(other, r) })
}

// Rate runs Audio.Rate unless an earlier step failed.
func (c *Chain) Rate(rate float64, r Region) *Chain {
	return c.do(func() error { return c.a.Rate(rate, r) })
}

// Shift runs Audio.Shift unless an earlier step failed.
func (c *Chain) Shift(semitones float64, r Region) *Chain {
	return c.do(func() error { return c.a.Shift(semitones, r) })
}
