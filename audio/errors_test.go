// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidDstSize, "dst size must be multiple of channels"},
		{ErrInvalidChannels, "channel count must be positive"},
		{ErrInvalidRate, "sample rate must be positive"},
		{ErrUnknownFormat, "unknown audio format"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}

			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.err) {
				t.Error("errors.Is() failed for wrapped error")
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	t.Parallel()

	if errors.Is(ErrInvalidChannels, ErrInvalidDstSize) || errors.Is(ErrInvalidRate, ErrInvalidChannels) ||
		errors.Is(ErrUnknownFormat, ErrInvalidDstSize) {
		t.Error("sentinel errors must not match each other")
	}
}
