// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audedit/audio"
)

const bufSize = 4096

// ErrDecode wraps failures reported by the Ogg Vorbis decoder.
var ErrDecode = errors.New("vorbis decode")

// oggReader is the part of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns how many it wrote,
	// always a multiple of Channels.
	Read(p []float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return bufSize }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	// The decoder writes float32 in [-1, 1] directly into dst.
	n, err := s.dec.Read(dst[:want])

	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF):
		return n, io.EOF
	}

	return n, fmt.Errorf("%w: %w", ErrDecode, err)
}

// Decoder decodes Ogg Vorbis streams.
type Decoder struct{}

// Decode reads the Vorbis headers.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if dec.Channels() < 1 {
		return nil, fmt.Errorf("%w: %w", ErrDecode, audio.ErrInvalidChannels)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
