// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer adapts a source to a different channel count.
//
//   - any -> mono: channels are averaged
//   - mono -> N: the single channel is copied to every output channel
//   - N -> M otherwise: the first min(N, M) channels are kept, extra output
//     channels are silent
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

// NewChannelMixer returns a source producing channels output channels.
func NewChannelMixer(src Source, channels int) (*ChannelMixer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	return &ChannelMixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}, nil
}

// NewMonoMixer averages all source channels into one.
func NewMonoMixer(src Source) *ChannelMixer {
	m, _ := NewChannelMixer(src, 1)
	return m
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	needed := frames * in

	// Grow tmp if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < needed {
		m.tmp = make([]float32, max(needed, 8192))
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / in

	switch {
	case m.channels == 1:
		mixDown(dst, m.tmp, frames, in)
	case in == 1:
		for f := range frames {
			v := m.tmp[f]
			out := dst[f*m.channels : (f+1)*m.channels]
			for c := range out {
				out[c] = v
			}
		}
	default:
		keep := min(in, m.channels)
		for f := range frames {
			out := dst[f*m.channels : (f+1)*m.channels]
			copy(out, m.tmp[f*in:f*in+keep])
			clear(out[keep:])
		}
	}

	return frames * m.channels, err
}

// mixDown averages interleaved frames of in channels into mono dst.
func mixDown(dst, src []float32, frames, in int) {
	switch in {
	case 2: // Stereo (most common)
		for f := range frames {
			idx := f << 1
			dst[f] = (src[idx] + src[idx+1]) * 0.5
		}
	default:
		inv := float32(1.0) / float32(in)
		for f := range frames {
			sum := float32(0)
			base := f * in
			for c := range in {
				sum += src[base+c]
			}
			dst[f] = sum * inv
		}
	}
}
