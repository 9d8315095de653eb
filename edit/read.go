// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/buffer"
	"github.com/ik5/audedit/segment"
	"github.com/ik5/audedit/utils"
)

// Read copies the region out as one slice per selected channel.
func (a *Audio) Read(r Region) ([][]float32, error) {
	rg, err := a.Resolve(r)
	if err != nil {
		return nil, err
	}

	return a.read(rg), nil
}

func (a *Audio) read(rg Range) [][]float32 {
	out := make([][]float32, len(rg.Channels))
	for i := range out {
		out[i] = make([]float32, rg.Length())
	}
	a.list.CopyTo(out, rg.Channels, rg.Start)

	return out
}

// ReadInterleaved copies the region out frame by frame.
func (a *Audio) ReadInterleaved(r Region) ([]float32, error) {
	rg, err := a.Resolve(r)
	if err != nil {
		return nil, err
	}

	return interleave(a.read(rg)), nil
}

// ReadPCM copies the region out as signed integer samples of bitDepth bits
// (8, 16, 24 or 32).
func (a *Audio) ReadPCM(r Region, bitDepth int) (*goaudio.IntBuffer, error) {
	if utils.PCMScale(bitDepth) == 0 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrInvalidArgument, bitDepth)
	}

	samples, err := a.ReadInterleaved(r)
	if err != nil {
		return nil, err
	}

	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = utils.Float32ToPCM(v, bitDepth)
	}

	channels := a.Channels()
	if r.Channels != nil {
		channels = len(r.Channels)
	}

	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  a.SampleRate(),
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}, nil
}

func interleave(planar [][]float32) []float32 {
	if len(planar) == 0 {
		return nil
	}

	channels := len(planar)
	out := make([]float32, len(planar[0])*channels)
	for c, data := range planar {
		for i, v := range data {
			out[i*channels+c] = v
		}
	}

	return out
}

// Limits returns the smallest and largest sample in the region. Both are 0
// for an empty region.
func (a *Audio) Limits(r Region) (lo, hi float32, err error) {
	rg, err := a.Resolve(r)
	if err != nil {
		return 0, 0, err
	}

	lo, hi = a.limits(rg)
	return lo, hi, nil
}

func (a *Audio) limits(rg Range) (lo, hi float32) {
	first := true
	a.list.Fill(func(b *buffer.Buffer, _ int, offset int) segment.Action {
		from, to := segment.Overlap(rg.Start, rg.End, offset, b.Len())
		for _, c := range rg.Channels {
			for _, v := range b.Channel(c)[from:to] {
				if first {
					lo, hi, first = v, v, false
					continue
				}
				lo = min(lo, v)
				hi = max(hi, v)
			}
		}
		return segment.Continue
	}, rg.Start, rg.End, false)

	return lo, hi
}

// Source streams the region as an audio.Source of interleaved samples over
// the selected channels. The Audio must not be edited while the source is
// being read.
func (a *Audio) Source(r Region) (audio.Source, error) {
	rg, err := a.Resolve(r)
	if err != nil {
		return nil, err
	}

	return &listSource{list: a.list, rg: rg, pos: rg.Start}, nil
}

type listSource struct {
	list   *segment.List
	rg     Range
	pos    int
	closed bool
}

var _ audio.Source = (*listSource)(nil)

const sourceBufSize = 4096

func (s *listSource) SampleRate() int { return s.list.SampleRate() }
func (s *listSource) Channels() int   { return len(s.rg.Channels) }
func (s *listSource) BufSize() int    { return sourceBufSize }

func (s *listSource) Close() error {
	s.closed = true
	return nil
}

func (s *listSource) ReadSamples(dst []float32) (int, error) {
	if s.closed || s.pos >= s.rg.End {
		return 0, io.EOF
	}

	channels := len(s.rg.Channels)
	if channels == 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, s.rg.End-s.pos)
	if frames == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	start, end := s.pos, s.pos+frames
	s.list.Fill(func(b *buffer.Buffer, _ int, offset int) segment.Action {
		from, to := segment.Overlap(start, end, offset, b.Len())
		base := (offset + from - start) * channels
		for i, c := range s.rg.Channels {
			for k, v := range b.Channel(c)[from:to] {
				dst[base+k*channels+i] = v
			}
		}
		return segment.Continue
	}, start, end, false)

	s.pos = end
	if s.pos >= s.rg.End {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}
