// SPDX-License-Identifier: EPL-2.0

package cli

import "errors"

// CLI-specific sentinel errors.
// Domain failures arrive wrapped from the edit, config and format packages.
var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidEasing indicates an unknown fade curve name.
	ErrInvalidEasing = errors.New("unknown easing")
)
