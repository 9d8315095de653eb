// SPDX-License-Identifier: EPL-2.0

package audedit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/edit"
	"github.com/ik5/audedit/formats/aiff"
	"github.com/ik5/audedit/formats/flac"
	"github.com/ik5/audedit/formats/mp3"
	"github.com/ik5/audedit/formats/vorbis"
	"github.com/ik5/audedit/formats/wav"
)

// ErrUnknownFormat is returned when no decoder is registered for a format.
var ErrUnknownFormat = audio.ErrUnknownFormat

// DefaultRegistry returns a registry with every bundled decoder, keyed by
// the usual file extensions.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})

	return reg
}

var defaultRegistry = DefaultRegistry()

// Decode reads a whole stream of the given format (an extension such as
// "wav" or ".mp3") into an Audio.
func Decode(r io.Reader, format string, opts edit.Options) (*edit.Audio, error) {
	src, err := defaultRegistry.Decode(format, r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return edit.FromSource(src, opts)
}

// Open decodes the file at path, picking the decoder from its extension.
func Open(path string, opts edit.Options) (*edit.Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	a, err := Decode(f, filepath.Ext(path), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

// SaveOptions control how audio is written. Zero fields keep the audio's
// own layout; BitDepth defaults to 16.
type SaveOptions struct {
	BitDepth   int
	SampleRate int
	Channels   int
	// Region limits output to part of the audio.
	Region edit.Region
}

// Source returns the audio as a stream conformed to opts.
func (o SaveOptions) Source(a *edit.Audio) (audio.Source, error) {
	src, err := a.Source(o.Region)
	if err != nil {
		return nil, err
	}

	if o.SampleRate > 0 && o.SampleRate != src.SampleRate() {
		src = audio.NewResampler(src, o.SampleRate)
	}
	if o.Channels > 0 && o.Channels != src.Channels() {
		if src, err = audio.NewChannelMixer(src, o.Channels); err != nil {
			return nil, err
		}
	}

	return src, nil
}

// Encode writes a as a WAV stream to w. w need not be seekable.
func Encode(w io.Writer, a *edit.Audio, opts SaveOptions) error {
	src, err := opts.Source(a)
	if err != nil {
		return err
	}
	defer src.Close()

	return wav.Encoder{BitDepth: opts.BitDepth}.EncodeTo(w, src)
}

// Save writes a as a WAV file at path, replacing any existing file.
func Save(path string, a *edit.Audio, opts SaveOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w", cerr)
		}
	}()

	return Encode(f, a, opts)
}
