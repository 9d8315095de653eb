// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/buffer"
	"github.com/ik5/audedit/edit"
	"github.com/ik5/audedit/internal/config"
)

const testRate = 8

// writeWAV saves a mono or multichannel file at testRate into dir.
func writeWAV(t *testing.T, dir string, data ...[]float32) string {
	t.Helper()

	b, err := buffer.DefaultFactory{}.FromPlanar(data, testRate)
	require.NoError(t, err)
	a, err := edit.New(b, edit.Options{})
	require.NoError(t, err)

	path := filepath.Join(dir, "in.wav")
	require.NoError(t, audedit.Save(path, a, audedit.SaveOptions{}))
	return path
}

// readWAV returns every channel of the file at path.
func readWAV(t *testing.T, path string) [][]float32 {
	t.Helper()

	a, err := audedit.Open(path, edit.Options{})
	require.NoError(t, err)
	data, err := a.Read(edit.All)
	require.NoError(t, err)
	return data
}

func constant(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

type result struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// run executes the command tree with args, isolated from any user config.
func run(t *testing.T, args ...string) (*result, error) {
	t.Helper()

	res := &result{}
	env := NewEnv(
		WithStdout(&res.stdout),
		WithStderr(&res.stderr),
		WithConfigOptions(config.WithDirs(t.TempDir())),
	)

	root := Root(env)
	root.SetArgs(args)
	root.SetOut(&res.stdout)
	root.SetErr(&res.stderr)

	return res, root.Execute()
}

// requireSamples asserts got matches want within 16-bit quantisation.
func requireSamples(t *testing.T, want, got []float32) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-3, "sample %d", i)
	}
}
