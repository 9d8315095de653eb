// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"bytes"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audedit/internal/audiotest"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a := newAudio(t, 8000, make([]float32, 8000), make([]float32, 8000))
	assert.Equal(t, 8000, a.Len())
	assert.Equal(t, 2, a.Channels())
	assert.Equal(t, 8000, a.SampleRate())
	assert.Equal(t, time.Second, a.Duration())
	assert.Equal(t, 1, a.Segments().Count())

	_, err := New(nil, Options{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewSilent(t *testing.T) {
	t.Parallel()

	a, err := NewSilent(0.25, 2, 10, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len(), "rounded up")
	assert.Equal(t, 2, a.Channels())

	_, err = NewSilent(math.NaN(), 1, 10, Options{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewSilent(1, 0, 10, Options{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFromSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(100, 2, 50, 0.25).WithChunk(7)

	a, err := FromSource(src, Options{})
	require.NoError(t, err)
	assert.Equal(t, 50, a.Len())
	assert.Equal(t, 2, a.Channels())
	assert.False(t, src.Closed())

	lo, hi, err := a.Limits(All)
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), lo)
	assert.Equal(t, float32(0.25), hi)

	_, err = FromSource(audiotest.NewFailingSource(100, 10), Options{})
	require.ErrorIs(t, err, audiotest.ErrMockRead)
}

func TestAudio_Clone(t *testing.T) {
	t.Parallel()

	a := newAudio(t, 10, []float32{1, 2, 3})
	c := a.Clone()

	require.NoError(t, c.Invert(All))
	assert.Equal(t, []float32{1, 2, 3}, channel0(t, a))
	assert.Equal(t, []float32{-1, -2, -3}, channel0(t, c))
}

func TestAudio_DebugLogging(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := mono(t, 10, 1, 2, 3)
	a, err := New(b, Options{Logger: logger})
	require.NoError(t, err)

	require.NoError(t, a.Gain(-6, Region{Start: Samples(1)}))
	assert.Contains(t, out.String(), "msg=gain")
	assert.Contains(t, out.String(), "component=edit")
	assert.Contains(t, out.String(), "start=1")

	out.Reset()
	quiet := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	a, err = New(mono(t, 10, 1), Options{Logger: quiet})
	require.NoError(t, err)
	require.NoError(t, a.Invert(All))
	assert.Empty(t, out.String())
}
