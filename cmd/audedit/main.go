// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/edit"
	"github.com/ik5/audedit/formats/aiff"
	"github.com/ik5/audedit/formats/flac"
	"github.com/ik5/audedit/formats/mp3"
	"github.com/ik5/audedit/formats/vorbis"
	"github.com/ik5/audedit/formats/wav"
	"github.com/ik5/audedit/internal/cli"
	"github.com/ik5/audedit/internal/config"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitValidation = 4
	ExitFormat     = 5
	ExitInterrupt  = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := cli.Root(cli.DefaultEnv())
	root.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "audedit:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	if errors.Is(err, edit.ErrInvalidArgument) || errors.Is(err, edit.ErrOutOfRange) ||
		errors.Is(err, cli.ErrFileNotFound) || errors.Is(err, cli.ErrInvalidEasing) ||
		errors.Is(err, config.ErrInvalidValue) || errors.Is(err, config.ErrUnknownKey) ||
		errors.Is(err, audedit.ErrUnknownFormat) {
		return ExitValidation
	}

	if errors.Is(err, wav.ErrNotWavFile) || errors.Is(err, wav.ErrUnsupportedFormat) ||
		errors.Is(err, wav.ErrUnsupportedBitDepth) || errors.Is(err, wav.ErrNoPCMData) ||
		errors.Is(err, aiff.ErrNotAiffFile) || errors.Is(err, aiff.ErrUnsupportedBitDepth) ||
		errors.Is(err, aiff.ErrUnsupportedAiffLayout) ||
		errors.Is(err, flac.ErrDecode) || errors.Is(err, flac.ErrUnsupportedBitDepth) ||
		errors.Is(err, mp3.ErrDecode) || errors.Is(err, vorbis.ErrDecode) {
		return ExitFormat
	}

	// Checked after the sentinels: edit.ErrInvalidArgument shares the
	// "invalid argument" text with pflag's parse errors.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	return ExitGeneral
}

// Cobra does not expose typed errors, so usage failures are recognised by
// their message.
var cobraUsageErrorPatterns = []string{
	"required flag",
	"unknown flag",
	"unknown shorthand",
	"unknown command",
	"flag needs an argument",
	"invalid argument",
	"accepts ",
	"requires at least",
	"requires at most",
}

func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
