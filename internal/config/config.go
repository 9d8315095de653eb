// SPDX-License-Identifier: EPL-2.0

// Package config loads the audedit command line settings. Values come, in
// rising precedence, from built-in defaults, an optional audedit.yaml file,
// AUDEDIT_* environment variables and bound command flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ik5/audedit/edit"
)

// Config keys.
const (
	KeyBitDepth      = "bit-depth"
	KeyFadeGain      = "fade-gain"
	KeyTrimThreshold = "trim-threshold"
	KeyLogLevel      = "log-level"
)

const (
	// EnvPrefix prefixes every environment override, e.g. AUDEDIT_BIT_DEPTH.
	EnvPrefix = "AUDEDIT"
	// FileName is the config file name without extension.
	FileName = "audedit"
	fileType = "yaml"
)

// Keys lists all supported configuration keys in display order.
var Keys = []string{KeyBitDepth, KeyFadeGain, KeyTrimThreshold, KeyLogLevel}

var (
	// ErrUnknownKey indicates a key outside Keys.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue indicates a value that fails validation for its key.
	ErrInvalidValue = errors.New("invalid config value")
)

// Config holds the resolved settings.
type Config struct {
	BitDepth      int     `mapstructure:"bit-depth"`
	FadeGain      float64 `mapstructure:"fade-gain"`
	TrimThreshold float64 `mapstructure:"trim-threshold"`
	LogLevel      string  `mapstructure:"log-level"`
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Validate checks every field.
func (c Config) Validate() error {
	return errors.Join(
		validate(KeyBitDepth, c.BitDepth),
		validate(KeyFadeGain, c.FadeGain),
		validate(KeyTrimThreshold, c.TrimThreshold),
		validate(KeyLogLevel, c.LogLevel),
	)
}

func validate(key string, v any) error {
	switch key {
	case KeyBitDepth:
		d, ok := v.(int)
		if !ok || !slices.Contains([]int{16, 24, 32}, d) {
			return fmt.Errorf("%w: %s must be 16, 24 or 32, got %v", ErrInvalidValue, key, v)
		}
	case KeyFadeGain, KeyTrimThreshold:
		f, ok := v.(float64)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidValue, key, v)
		}
	case KeyLogLevel:
		s, _ := v.(string)
		var l slog.Level
		if err := l.UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("%w: %s: %q", ErrInvalidValue, key, s)
		}
	default:
		return fmt.Errorf("%w %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}
	return nil
}

// Loader wraps a private viper instance so tests and commands never share
// global state.
type Loader struct {
	v    *viper.Viper
	dirs []string
	file string
}

// Option configures a Loader.
type Option func(*Loader)

// WithDirs replaces the directories searched for audedit.yaml.
func WithDirs(dirs ...string) Option {
	return func(l *Loader) { l.dirs = dirs }
}

// WithFile points the loader at an explicit config file.
func WithFile(path string) Option {
	return func(l *Loader) { l.file = path }
}

// New returns a Loader with defaults and environment bindings in place.
// The search path is the working directory followed by Dir().
func New(opts ...Option) *Loader {
	l := &Loader{v: viper.New(), dirs: []string{"."}}
	if d, err := Dir(); err == nil {
		l.dirs = append(l.dirs, d)
	}
	for _, opt := range opts {
		opt(l)
	}

	l.v.SetDefault(KeyBitDepth, 16)
	l.v.SetDefault(KeyFadeGain, edit.DefaultFadeGain)
	l.v.SetDefault(KeyTrimThreshold, edit.DefaultTrimThreshold)
	l.v.SetDefault(KeyLogLevel, "info")

	if l.file != "" {
		l.v.SetConfigFile(l.file)
	} else {
		l.v.SetConfigName(FileName)
		l.v.SetConfigType(fileType)
		for _, d := range l.dirs {
			l.v.AddConfigPath(d)
		}
	}

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	l.v.AutomaticEnv()

	return l
}

// Dir returns the per-user configuration directory:
// $XDG_CONFIG_HOME/audedit, or ~/.config/audedit.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, FileName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", FileName), nil
}

// BindFlags lets the named flags of fs override config values. Flags that
// do not exist in fs are skipped.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for _, key := range Keys {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the config file, if any, and returns the merged settings.
// A missing file is not an error.
func (l *Loader) Load() (Config, error) {
	var cfg Config

	if err := l.read(); err != nil {
		return cfg, err
	}
	if err := l.v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (l *Loader) read() error {
	err := l.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil, errors.As(err, &notFound):
		return nil
	case l.file != "" && errors.Is(err, os.ErrNotExist):
		return nil
	}
	return fmt.Errorf("failed to read config: %w", err)
}

// File returns the config file in use, or "" when none was found.
func (l *Loader) File() string { return l.v.ConfigFileUsed() }

// Get returns the effective value of key as a string.
func (l *Loader) Get(key string) (string, error) {
	if !slices.Contains(Keys, key) {
		return "", fmt.Errorf("%w %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}
	if err := l.read(); err != nil {
		return "", err
	}
	return l.v.GetString(key), nil
}

// All returns the effective value of every key.
func (l *Loader) All() (map[string]string, error) {
	if err := l.read(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(Keys))
	for _, key := range Keys {
		out[key] = l.v.GetString(key)
	}
	return out, nil
}

// Set validates value for key and persists it to path, creating the file
// and its directory when needed. Other keys already in the file are kept.
func (l *Loader) Set(path, key, value string) error {
	parsed, err := parse(key, value)
	if err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType(fileType)
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	file.Set(key, parsed)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	l.v.Set(key, parsed)
	return nil
}

// DefaultPath is where Set writes when no file is in use yet.
func (l *Loader) DefaultPath() (string, error) {
	if f := l.File(); f != "" {
		return f, nil
	}
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, FileName+"."+fileType), nil
}

// parse converts a textual value to the type stored for key.
func parse(key, value string) (any, error) {
	var v any
	switch key {
	case KeyBitDepth:
		var d int
		if _, err := fmt.Sscan(value, &d); err != nil {
			return nil, fmt.Errorf("%w: %s: %q", ErrInvalidValue, key, value)
		}
		v = d
	case KeyFadeGain, KeyTrimThreshold:
		var f float64
		if _, err := fmt.Sscan(value, &f); err != nil {
			return nil, fmt.Errorf("%w: %s: %q", ErrInvalidValue, key, value)
		}
		v = f
	default:
		v = strings.ToLower(value)
	}

	if err := validate(key, v); err != nil {
		return nil, err
	}
	return v, nil
}
