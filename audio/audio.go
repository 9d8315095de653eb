// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Source is a pull-based stream of interleaved float32 samples. Decoders,
// converters and edited audio all expose this shape.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels per frame (1 = mono, 2 = stereo).
	Channels() int
	// ReadSamples fills dst with whole frames of samples in [-1, 1] and
	// returns how many float32 values it wrote. io.EOF may come with the
	// final n > 0.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the preferred len(dst) for ReadSamples.
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (e.g. "wav", "mp3", "ogg") to decoders. Keys
// are case-insensitive and a leading dot is ignored, so a file extension
// can be used directly. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

// Register adds d under format, replacing any earlier decoder.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[normalizeFormat(format)] = d
}

// Get returns the decoder registered for format, which may be a file
// extension.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codecs[normalizeFormat(format)]
	return d, ok
}

// Decode looks up the decoder for format and runs it on rd.
func (r *Registry) Decode(format string, rd io.Reader) (Source, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	src, err := d.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", normalizeFormat(format), err)
	}
	return src, nil
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}
