// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audedit/utils"
)

// maxEmptyReads bounds consecutive (0, nil) reads from a source.
const maxEmptyReads = 100

// Resampler streams from src to a target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole low-pass filter is applied to the input when downsampling.
//
// Output frame n is taken at source position n*step, where step is
// srcRate/dstRate, and the stream ends once that position passes the last
// source frame.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64
	channels int

	// hist holds four consecutive source frames: t-1, t, t+1, t+2.
	// real[i] is false when hist[i] is a duplicated edge frame.
	hist   [4][]float32
	real   [4]bool
	pos    float64
	primed bool
	done   bool

	block    []float32
	blockPos int
	blockLen int
	srcEOF   bool

	lowPass bool
	alpha   float32
	lpState []float32
	lpReady bool
}

// NewResampler converts src to dstRate with cubic interpolation.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	bufFrames := max(src.BufSize()/max(channels, 1), 256)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		block:    make([]float32, bufFrames*channels),
		lowPass:  step > 1.0,
		alpha:    0.5,
		lpState:  make([]float32, channels),
	}

	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	for empty := 0; r.blockPos >= r.blockLen; empty++ {
		if r.srcEOF {
			return false, nil
		}
		if empty >= maxEmptyReads {
			return false, io.ErrNoProgress
		}

		n, err := r.src.ReadSamples(r.block)
		r.blockPos = 0
		r.blockLen = n - n%r.channels

		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.block[r.blockPos:r.blockPos+r.channels])
	r.blockPos += r.channels

	if r.lowPass {
		// Seed the filter with the first frame to avoid a warm-up transient.
		if !r.lpReady {
			copy(r.lpState, dst)
			r.lpReady = true
		}
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.lpState[c]
			r.lpState[c] = dst[c]
		}
	}

	return true, nil
}

// load fills hist[i] from the source, duplicating hist[i-1] when the source
// has run dry.
func (r *Resampler) load(i int) error {
	ok, err := r.nextFrame(r.hist[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[i], r.hist[i-1])
	}
	r.real[i] = ok

	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.nextFrame(r.hist[1])
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return nil
	}
	r.real[1] = true

	copy(r.hist[0], r.hist[1])
	r.real[0] = false

	if err := r.load(2); err != nil {
		return err
	}
	return r.load(3)
}

// advance shifts the history by one source frame.
func (r *Resampler) advance() (bool, error) {
	if !r.real[2] {
		return false, nil
	}

	r.hist[0], r.hist[1], r.hist[2], r.hist[3] = r.hist[1], r.hist[2], r.hist[3], r.hist[0]
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	if err := r.load(3); err != nil {
		return false, err
	}
	return true, nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	framesNeeded := len(dst) / r.channels
	written := 0

	for written < framesNeeded && !r.done {
		for r.pos >= 1.0 {
			ok, err := r.advance()
			if err != nil {
				return written * r.channels, err
			}
			if !ok {
				r.done = true
				break
			}
			r.pos -= 1.0
		}

		// Past the last frame there is nothing to interpolate toward.
		if r.done || (r.pos > 0 && !r.real[2]) {
			r.done = true
			break
		}

		out := dst[written*r.channels : (written+1)*r.channels]
		utils.CubicInterpolateFrame(out, r.hist[0], r.hist[1], r.hist[2], r.hist[3], float32(r.pos))

		written++
		r.pos += r.step
	}

	if r.done {
		return written * r.channels, io.EOF
	}

	return written * r.channels, nil
}
