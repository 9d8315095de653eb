// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a parameter of the wrong shape: a NaN or
	// infinite duration or gain, a nil function or buffer, a missing length.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange reports a channel index or sample offset outside the
	// audio.
	ErrOutOfRange = errors.New("out of range")
)

// invalid classifies a lower-level error as ErrInvalidArgument while keeping
// it matchable.
func invalid(err error) error {
	if err == nil || errors.Is(err, ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
