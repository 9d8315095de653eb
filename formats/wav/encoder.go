// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

// DefaultBitDepth is used when an Encoder has no BitDepth set.
const DefaultBitDepth = 16

const maxEmptyReads = 100

// Encoder writes integer PCM WAV files.
type Encoder struct {
	// BitDepth is 16, 24 or 32.
	BitDepth int
}

func (e Encoder) bitDepth() (int, error) {
	switch e.BitDepth {
	case 0:
		return DefaultBitDepth, nil
	case 16, 24, 32:
		return e.BitDepth, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, e.BitDepth)
}

// Encode drains src into w. The header sizes are patched on completion, so
// w must be seekable; see EncodeTo for plain writers. src is not closed.
func (e Encoder) Encode(w io.WriteSeeker, src audio.Source) error {
	depth, err := e.bitDepth()
	if err != nil {
		return err
	}

	channels := src.Channels()
	if channels < 1 {
		return fmt.Errorf("encoding wav: %w", audio.ErrInvalidChannels)
	}

	enc := wav.NewEncoder(w, src.SampleRate(), depth, channels, formatPCM)

	chunk := make([]float32, max(src.BufSize()/channels, 1024)*channels)
	out := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()},
		SourceBitDepth: depth,
		Data:           make([]int, len(chunk)),
	}

	wrote := false
	for empty := 0; ; {
		n, err := src.ReadSamples(chunk)
		n -= n % channels

		if n > 0 || !wrote {
			out.Data = out.Data[:n]
			for i, v := range chunk[:n] {
				out.Data[i] = utils.Float32ToPCM(v, depth)
			}
			// The first write also emits the header, even for empty input.
			if werr := enc.Write(out); werr != nil {
				return fmt.Errorf("writing wav samples: %w", werr)
			}
			wrote = true
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}

		if n == 0 {
			if empty++; empty >= maxEmptyReads {
				return fmt.Errorf("reading source: %w", io.ErrNoProgress)
			}
		} else {
			empty = 0
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing wav: %w", err)
	}

	return nil
}

// EncodeTo is Encode for writers that may not seek, such as a pipe. 16-bit
// output is streamed with WriteWAV16; other depths are assembled in memory
// first.
func (e Encoder) EncodeTo(w io.Writer, src audio.Source) error {
	if ws, ok := w.(io.WriteSeeker); ok && seekable(ws) {
		return e.Encode(ws, src)
	}

	depth, err := e.bitDepth()
	if err != nil {
		return err
	}

	if depth == 16 {
		samples, err := readInt16(src)
		if err != nil {
			return err
		}
		return WriteWAV16(w, src.SampleRate(), src.Channels(), samples)
	}

	buf := &seekBuffer{}
	if err := e.Encode(buf, src); err != nil {
		return err
	}
	if _, err := w.Write(buf.data); err != nil {
		return fmt.Errorf("writing wav: %w", err)
	}

	return nil
}

// seekable reports whether ws really seeks; a terminal or pipe behind an
// *os.File does not.
func seekable(ws io.WriteSeeker) bool {
	_, err := ws.Seek(0, io.SeekCurrent)
	return err == nil
}

func readInt16(src audio.Source) ([]int16, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("encoding wav: %w", audio.ErrInvalidChannels)
	}

	chunk := make([]float32, max(src.BufSize()/channels, 1024)*channels)

	var out []int16
	for empty := 0; ; {
		n, err := src.ReadSamples(chunk)
		for _, v := range chunk[:n-n%channels] {
			out = append(out, utils.Float32ToInt16(v))
		}

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}

		if n == 0 {
			if empty++; empty >= maxEmptyReads {
				return nil, fmt.Errorf("reading source: %w", io.ErrNoProgress)
			}
		} else {
			empty = 0
		}
	}
}

// seekBuffer is an in-memory io.WriteSeeker.
type seekBuffer struct {
	data []byte
	pos  int
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	if end := s.pos + len(p); end > len(s.data) {
		s.data = append(s.data, make([]byte, end-len(s.data))...)
	}
	n := copy(s.data[s.pos:], p)
	s.pos += n

	return n, nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(s.pos) + offset
	case io.SeekEnd:
		pos = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, errors.New("seek: negative position")
	}
	s.pos = int(pos)

	return pos, nil
}
