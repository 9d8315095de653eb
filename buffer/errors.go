// SPDX-License-Identifier: EPL-2.0

package buffer

import "errors"

var (
	// ErrInvalidArgument reports a negative length, a non-positive channel
	// count or sample rate, or a nil input.
	ErrInvalidArgument = errors.New("invalid buffer argument")

	// ErrRaggedChannels reports planar data whose channels differ in length.
	ErrRaggedChannels = errors.New("channels have different lengths")

	// ErrMismatch reports buffers that cannot be combined because their
	// channel count or sample rate differ.
	ErrMismatch = errors.New("buffer layout mismatch")
)
