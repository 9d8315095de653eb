// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedFormat   = errors.New("unsupported WAV format, only integer PCM is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth, want 16, 24 or 32")
	ErrNoPCMData           = errors.New("WAV file has no data chunk")
)
