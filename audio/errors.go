// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrInvalidChannels = errors.New("channel count must be positive")
	ErrInvalidRate     = errors.New("sample rate must be positive")
	// ErrUnknownFormat is returned when no decoder is registered for a format.
	ErrUnknownFormat = errors.New("unknown audio format")
)
