// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/audedit/buffer"
	"github.com/ik5/audedit/segment"
)

func newAudio(t *testing.T, rate int, channels ...[]float32) *Audio {
	t.Helper()

	b, err := buffer.DefaultFactory{}.FromPlanar(channels, rate)
	require.NoError(t, err)

	a, err := New(b, Options{})
	require.NoError(t, err)

	return a
}

// chunked builds a mono Audio whose timeline is split into the given
// segments.
func chunked(t *testing.T, rate int, segs ...[]float32) *Audio {
	t.Helper()

	l, err := segment.New(1, rate)
	require.NoError(t, err)
	for _, s := range segs {
		b, err := buffer.DefaultFactory{}.FromPlanar([][]float32{s}, rate)
		require.NoError(t, err)
		require.NoError(t, l.Append(b))
	}

	return FromList(l, Options{})
}

func mono(t *testing.T, rate int, samples ...float32) *buffer.Buffer {
	t.Helper()

	b, err := buffer.DefaultFactory{}.FromPlanar([][]float32{samples}, rate)
	require.NoError(t, err)

	return b
}

func readAll(t *testing.T, a *Audio) [][]float32 {
	t.Helper()

	out, err := a.Read(All)
	require.NoError(t, err)

	return out
}

func channel0(t *testing.T, a *Audio) []float32 {
	t.Helper()
	return readAll(t, a)[0]
}
