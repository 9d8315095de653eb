// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE

	bufSize = 4096
)

type wavSource struct {
	dec        *wav.Decoder
	sampleRate int
	channels   int
	bitDepth   int
	buf        *goaudio.IntBuffer
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) BufSize() int    { return bufSize }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("decoding wav: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.PCMToFloat32(v, s.bitDepth)
	}

	return n, nil
}

// Decoder decodes integer PCM WAV files of 16, 24 or 32 bits.
type Decoder struct{}

// Decode reads the WAV headers and positions r at the sample data. Readers
// that cannot seek are read into memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPCMData, err)
	}
	if dec.PCMChunk == nil {
		return nil, ErrNoPCMData
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	return &wavSource{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		bitDepth:   bitDepth,
		buf: &goaudio.IntBuffer{
			Data:   make([]int, bufSize-bufSize%channels),
			Format: &goaudio.Format{NumChannels: channels, SampleRate: int(dec.SampleRate)},
		},
	}, nil
}
