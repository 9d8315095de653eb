// SPDX-License-Identifier: EPL-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()

	p := filepath.Join(dir, FileName+".yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := New(WithDirs(t.TempDir())).Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		BitDepth:      16,
		FadeGain:      -40,
		TrimThreshold: -40,
		LogLevel:      "info",
	}, cfg)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bit-depth: 24\nfade-gain: -30\nlog-level: debug\n")

	l := New(WithDirs(dir))
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.BitDepth)
	assert.InDelta(t, -30.0, cfg.FadeGain, 1e-9)
	assert.InDelta(t, -40.0, cfg.TrimThreshold, 1e-9)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, filepath.Join(dir, FileName+".yaml"), l.File())
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	cfg, err := New(WithFile(filepath.Join(t.TempDir(), "none.yaml"))).Load()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.BitDepth)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bit-depth: 24\n")
	t.Setenv("AUDEDIT_BIT_DEPTH", "32")
	t.Setenv("AUDEDIT_TRIM_THRESHOLD", "-55.5")

	cfg, err := New(WithDirs(dir)).Load()
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.BitDepth)
	assert.InDelta(t, -55.5, cfg.TrimThreshold, 1e-9)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("AUDEDIT_BIT_DEPTH", "24")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int(KeyBitDepth, 16, "")
	fs.String(KeyLogLevel, "info", "")
	fs.Bool("unrelated", false, "")
	require.NoError(t, fs.Parse([]string{"--bit-depth=32"}))

	l := New(WithDirs(t.TempDir()))
	require.NoError(t, l.BindFlags(fs))

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.BitDepth)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_UnchangedFlagKeepsFileValue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bit-depth: 24\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int(KeyBitDepth, 16, "")
	require.NoError(t, fs.Parse(nil))

	l := New(WithDirs(dir))
	require.NoError(t, l.BindFlags(fs))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.BitDepth)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"bit depth", "bit-depth: 12\n"},
		{"log level", "log-level: loud\n"},
		{"not a number", "fade-gain: quiet\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, dir, tt.body)

			_, err := New(WithDirs(dir)).Load()
			require.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bit-depth: [16\n")

	_, err := New(WithDirs(dir)).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestSet_PersistsAndKeepsOtherKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", FileName+".yaml")

	l := New(WithFile(path))
	require.NoError(t, l.Set(path, KeyBitDepth, "24"))
	require.NoError(t, l.Set(path, KeyLogLevel, "WARN"))

	v, err := l.Get(KeyBitDepth)
	require.NoError(t, err)
	assert.Equal(t, "24", v)

	cfg, err := New(WithFile(path)).Load()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.BitDepth)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestSet_Rejects(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName+".yaml")
	l := New(WithFile(path))

	require.ErrorIs(t, l.Set(path, "volume", "11"), ErrUnknownKey)
	require.ErrorIs(t, l.Set(path, KeyBitDepth, "8"), ErrInvalidValue)
	require.ErrorIs(t, l.Set(path, KeyFadeGain, "loud"), ErrInvalidValue)
	require.ErrorIs(t, l.Set(path, KeyTrimThreshold, "NaN"), ErrInvalidValue)

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGet_UnknownKey(t *testing.T) {
	t.Parallel()

	_, err := New(WithDirs(t.TempDir())).Get("volume")
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "trim-threshold: -60\n")

	all, err := New(WithDirs(dir)).All()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		KeyBitDepth:      "16",
		KeyFadeGain:      "-40",
		KeyTrimThreshold: "-60",
		KeyLogLevel:      "info",
	}, all)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	p, err := New(WithDirs(t.TempDir())).DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "audedit", "audedit.yaml"), p)

	explicit := filepath.Join(t.TempDir(), "x.yaml")
	p, err = New(WithFile(explicit)).DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, explicit, p)
}

func TestConfig_LevelFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "???"}.Level())
	assert.Equal(t, slog.LevelError, Config{LogLevel: "error"}.Level())
}
