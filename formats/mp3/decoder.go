// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
const (
	channels      = 2
	bytesPerFrame = channels * 2
	bufSize       = 4096
)

// ErrDecode wraps failures reported by the MP3 decoder.
var ErrDecode = errors.New("mp3 decode")

// pcmReader is the part of gomp3.Decoder the source needs.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        pcmReader
	sampleRate int
	buf        []byte
	// pending holds the bytes of a frame split across two reads.
	pending []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return bufSize }

func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / channels
	if frames == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	need := frames * bytesPerFrame
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	carried := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	n, err := s.dec.Read(s.buf[carried:])
	n += carried

	whole := n - n%bytesPerFrame
	s.pending = append(s.pending, s.buf[whole:n]...)

	for i := range whole / 2 {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = utils.PCMToFloat32(int(v), 16)
	}

	switch {
	case err == nil:
		return whole / 2, nil
	case errors.Is(err, io.EOF):
		return whole / 2, io.EOF
	}

	return whole / 2, fmt.Errorf("%w: %w", ErrDecode, err)
}

// Decoder decodes MPEG-1/2 Layer III streams.
type Decoder struct{}

// Decode reads the first frame header. The stream is always stereo.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, bufSize*2),
	}, nil
}
