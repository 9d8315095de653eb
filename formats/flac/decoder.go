// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/tphakala/flac"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

var (
	// ErrDecode wraps failures reported by the FLAC decoder.
	ErrDecode = errors.New("flac decode")
	// ErrUnsupportedBitDepth is returned for streams that are not 16, 24 or
	// 32 bits per sample.
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth, want 16, 24 or 32")
)

const bufSize = 4096

// frameReader is the part of flac.Decoder the source needs: each call
// returns one frame of interleaved little-endian PCM.
type frameReader interface {
	Next() ([]byte, error)
}

type source struct {
	dec        frameReader
	sampleRate int
	channels   int
	bitDepth   int
	pending    []byte
	eof        bool
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

	width := s.bitDepth / 8
	for !s.eof && len(s.pending) < want*width {
		frame, err := s.dec.Next()
		if errors.Is(err, io.EOF) {
			s.eof = true
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		s.pending = append(s.pending, frame...)
	}

	// Whole frames only; a trailing partial sample frame is dropped.
	n := min(want, len(s.pending)/width)
	n -= n % s.channels
	for i := range n {
		dst[i] = utils.PCMToFloat32(s.sample(s.pending[i*width:]), s.bitDepth)
	}
	s.pending = s.pending[n*width:]

	if s.eof && len(s.pending) < s.channels*width {
		return n, io.EOF
	}
	return n, nil
}

// sample decodes one signed little-endian sample at the start of b.
func (s *source) sample(b []byte) int {
	switch s.bitDepth {
	case 16:
		return int(int16(binary.LittleEndian.Uint16(b)))
	case 24:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		return int(v<<8) >> 8
	default:
		return int(int32(binary.LittleEndian.Uint32(b)))
	}
}

// Decoder decodes FLAC streams of 16, 24 or 32 bits.
type Decoder struct{}

// Decode reads the FLAC stream header.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := flac.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	switch dec.BitsPerSample {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitsPerSample)
	}
	if dec.NChannels < 1 || dec.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrDecode, dec.NChannels, dec.SampleRate)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate,
		channels:   dec.NChannels,
		bitDepth:   dec.BitsPerSample,
	}, nil
}
