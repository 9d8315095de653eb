// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

const bufSize = 4096

// pcmReader is the part of aiff.Decoder the source needs.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type aiffSource struct {
	pcm      pcmReader
	rate     int
	channels int
	depth    int
	ints     goaudio.IntBuffer
	done     bool
}

func (s *aiffSource) SampleRate() int { return s.rate }
func (s *aiffSource) Channels() int   { return s.channels }
func (s *aiffSource) BufSize() int    { return bufSize }
func (s *aiffSource) Close() error    { return nil }

func (s *aiffSource) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / s.channels
	if frames == 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.done {
		return 0, io.EOF
	}

	want := frames * s.channels
	if cap(s.ints.Data) < want {
		s.ints.Data = make([]int, want)
		s.ints.Format = s.pcm.Format()
	}
	s.ints.Data = s.ints.Data[:want]

	n, err := s.pcm.PCMBuffer(&s.ints)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("decoding aiff: %w", err)
	}

	for i, v := range s.ints.Data[:n] {
		dst[i] = utils.PCMToFloat32(v, s.depth)
	}

	// The SSND chunk is exhausted once a read comes back short.
	if n < want {
		s.done = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	}
	return n, nil
}

// Decoder decodes AIFF files with signed integer PCM of 8 to 32 bits.
type Decoder struct{}

// Decode reads the COMM chunk and positions the stream at the sound data.
// Readers that cannot seek are read into memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	depth := int(dec.BitDepth)
	if utils.PCMScale(depth) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	f := dec.Format()
	if f == nil || f.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return &aiffSource{
		pcm:      dec,
		rate:     f.SampleRate,
		channels: f.NumChannels,
		depth:    depth,
	}, nil
}
