// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"io"
	"os"

	"github.com/ik5/audedit/internal/config"
)

// Env holds the injectable dependencies of the audedit commands. Tests
// replace the streams and point the config loader at a temporary directory.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	// ConfigOptions are passed to config.New for every command run.
	ConfigOptions []config.Option
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the writer used for command output and "-o -" audio.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) { e.Stdout = w }
}

// WithStderr sets the writer used for logs and messages.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) { e.Stderr = w }
}

// WithConfigOptions sets the options used to build the config loader.
func WithConfigOptions(opts ...config.Option) EnvOption {
	return func(e *Env) { e.ConfigOptions = opts }
}

// DefaultEnv returns an Env wired to the process streams.
func DefaultEnv() *Env {
	return &Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}
