// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files with
// github.com/go-audio/aiff.
//
// Signed big-endian PCM of 8, 16, 24 or 32 bits is supported, with any
// channel count and sample rate. Samples are float32 in [-1, 1).
//
// go-audio needs an io.ReadSeeker; other readers are buffered in memory
// before decoding.
package aiff
