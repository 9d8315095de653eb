// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/buffer"
	"github.com/ik5/audedit/segment"
)

// Audio is an editable timeline. Edits address part of it through a Region
// and mutate it in place.
//
// An Audio is not safe for concurrent use.
type Audio struct {
	list     *segment.List
	resolver Resolver
	factory  buffer.Factory
	logger   *slog.Logger
}

// Options customise an Audio. Zero fields fall back to DefaultResolver,
// buffer.DefaultFactory and slog.Default.
type Options struct {
	Resolver Resolver
	Factory  buffer.Factory
	Logger   *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Resolver == nil {
		o.Resolver = DefaultResolver{}
	}
	if o.Factory == nil {
		o.Factory = buffer.DefaultFactory{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return o
}

// New wraps b in an Audio. The Audio takes ownership of b.
func New(b *buffer.Buffer, opts Options) (*Audio, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}

	return FromList(segment.FromBuffer(b), opts), nil
}

// FromList wraps an existing segment list.
func FromList(l *segment.List, opts Options) *Audio {
	opts = opts.withDefaults()

	return &Audio{
		list:     l,
		resolver: opts.Resolver,
		factory:  opts.Factory,
		logger:   opts.Logger.With("component", "edit"),
	}
}

// NewSilent returns seconds of silence, rounded up to whole samples.
func NewSilent(seconds float64, channels, sampleRate int, opts Options) (*Audio, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return nil, fmt.Errorf("%w: duration %v", ErrInvalidArgument, seconds)
	}

	opts = opts.withDefaults()
	b, err := opts.Factory.Silence(ceilSamples(seconds, sampleRate), channels, sampleRate)
	if err != nil {
		return nil, invalid(err)
	}

	return FromList(segment.FromBuffer(b), opts), nil
}

// FromSource reads src to the end. The caller keeps ownership of src.
func FromSource(src audio.Source, opts Options) (*Audio, error) {
	opts = opts.withDefaults()

	b, err := opts.Factory.FromSource(src, buffer.SourceOptions{})
	if err != nil {
		return nil, err
	}

	return FromList(segment.FromBuffer(b), opts), nil
}

// Len returns the number of samples per channel.
func (a *Audio) Len() int { return a.list.Len() }

// Channels returns the channel count.
func (a *Audio) Channels() int { return a.list.Channels() }

// SampleRate returns the sample rate in Hz.
func (a *Audio) SampleRate() int { return a.list.SampleRate() }

// Duration returns the length of the timeline as a time.Duration.
func (a *Audio) Duration() time.Duration { return a.list.Duration() }

// Segments exposes the underlying list. Mutating it bypasses the editing
// rules but keeps the Audio consistent.
func (a *Audio) Segments() *segment.List { return a.list }

// Buffer returns the whole timeline joined into one new buffer.
func (a *Audio) Buffer() *buffer.Buffer { return a.list.Buffer() }

// Clone returns an independent deep copy sharing the same options.
func (a *Audio) Clone() *Audio {
	return &Audio{
		list:     a.list.Clone(),
		resolver: a.resolver,
		factory:  a.factory,
		logger:   a.logger,
	}
}

// Resolve applies the Audio's resolver to r.
func (a *Audio) Resolve(r Region) (Range, error) {
	return a.resolver.Resolve(a, r)
}

func (a *Audio) debug(op string, rg Range, args ...any) {
	if !a.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	a.logger.Debug(op,
		append([]any{
			"start", rg.Start,
			"end", rg.End,
			"channels", rg.Channels,
			"length", a.Len(),
		}, args...)...)
}

// ceilSamples converts seconds to a sample count, rounding up. Products a
// hair above a whole number due to float error count as that number.
func ceilSamples(seconds float64, sampleRate int) int {
	x := seconds * float64(sampleRate)
	if r := math.Round(x); math.Abs(x-r) < 1e-9 {
		return int(r)
	}

	return int(math.Ceil(x))
}
