// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio with github.com/jfreymuth/oggvorbis.
//
// The source keeps the stream's own channel count and sample rate and yields
// interleaved float32 samples in [-1, 1], decoded straight into the caller's
// buffer.
package vorbis
