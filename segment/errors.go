// SPDX-License-Identifier: EPL-2.0

package segment

import "errors"

var (
	// ErrMismatch reports a buffer whose channel count or sample rate differs
	// from the list's.
	ErrMismatch = errors.New("segment layout mismatch")

	// ErrOutOfRange reports an offset or index outside the timeline.
	ErrOutOfRange = errors.New("offset out of range")
)
