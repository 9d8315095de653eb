// SPDX-License-Identifier: EPL-2.0

package buffer

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/utils"
)

// Factory produces buffers: silence of a given shape, or copies of sample
// data held elsewhere.
type Factory interface {
	Silence(length, channels, sampleRate int) (*Buffer, error)
	FromPlanar(data [][]float32, sampleRate int) (*Buffer, error)
	FromInterleaved(data []float32, channels, sampleRate int) (*Buffer, error)
	FromSource(src audio.Source, opts SourceOptions) (*Buffer, error)
}

// SourceOptions conform a stream while it is collected. Zero fields keep the
// source's own value.
type SourceOptions struct {
	SampleRate int
	Channels   int
	// MaxFrames stops collection after this many frames.
	MaxFrames int
}

// DefaultFactory is the stock Factory. The zero value is ready to use.
type DefaultFactory struct{}

var _ Factory = DefaultFactory{}

// Silence returns a zeroed buffer.
func (DefaultFactory) Silence(length, channels, sampleRate int) (*Buffer, error) {
	return New(channels, length, sampleRate)
}

// FromPlanar deep-copies per-channel data.
func (DefaultFactory) FromPlanar(data [][]float32, sampleRate int) (*Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidArgument)
	}

	length := len(data[0])
	for c := range data {
		if len(data[c]) != length {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrRaggedChannels, c, len(data[c]), length)
		}
	}

	b, err := New(len(data), length, sampleRate)
	if err != nil {
		return nil, err
	}
	for c := range data {
		copy(b.data[c], data[c])
	}

	return b, nil
}

// FromInterleaved de-interleaves frame-ordered samples.
func (DefaultFactory) FromInterleaved(data []float32, channels, sampleRate int) (*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidArgument, channels)
	}
	if len(data)%channels != 0 {
		return nil, fmt.Errorf("%d samples for %d channels: %w", len(data), channels, audio.ErrInvalidDstSize)
	}

	b, err := New(channels, len(data)/channels, sampleRate)
	if err != nil {
		return nil, err
	}
	for i, v := range data {
		b.data[i%channels][i/channels] = v
	}

	return b, nil
}

// FromSource drains src into a buffer, resampling and remixing on the way
// when opts ask for a different layout. The caller keeps ownership of src.
func (f DefaultFactory) FromSource(src audio.Source, opts SourceOptions) (*Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}

	stream := src
	if opts.SampleRate > 0 && opts.SampleRate != stream.SampleRate() {
		stream = audio.NewResampler(stream, opts.SampleRate)
	}
	if opts.Channels > 0 && opts.Channels != stream.Channels() {
		mixer, err := audio.NewChannelMixer(stream, opts.Channels)
		if err != nil {
			return nil, err
		}
		stream = mixer
	}

	channels := stream.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: source reports %d channels", ErrInvalidArgument, channels)
	}

	frames := max(stream.BufSize()/channels, 1024)
	chunk := make([]float32, frames*channels)

	var collected []float32
	for empty := 0; ; {
		want := chunk
		if opts.MaxFrames > 0 {
			left := opts.MaxFrames*channels - len(collected)
			if left <= 0 {
				break
			}
			want = chunk[:min(len(chunk), left)]
		}

		n, err := stream.ReadSamples(want)
		collected = append(collected, want[:n-n%channels]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= 100 {
				return nil, fmt.Errorf("reading source: %w", io.ErrNoProgress)
			}
		} else {
			empty = 0
		}
	}

	return f.FromInterleaved(collected, channels, stream.SampleRate())
}

// FromIntBuffer converts a go-audio integer buffer. SourceBitDepth selects
// the scale; 16-bit is assumed when it is unset.
func FromIntBuffer(buf *goaudio.IntBuffer) (*Buffer, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: int buffer without format", ErrInvalidArgument)
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	if utils.PCMScale(depth) == 0 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrInvalidArgument, depth)
	}

	data := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = utils.PCMToFloat32(v, depth)
	}

	return DefaultFactory{}.FromInterleaved(data, buf.Format.NumChannels, buf.Format.SampleRate)
}

// FromFloat32Buffer copies a go-audio float buffer.
func FromFloat32Buffer(buf *goaudio.Float32Buffer) (*Buffer, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: float buffer without format", ErrInvalidArgument)
	}

	return DefaultFactory{}.FromInterleaved(buf.Data, buf.Format.NumChannels, buf.Format.SampleRate)
}
