// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files with github.com/tphakala/flac.
//
// Streams of 16, 24 or 32 bits per sample are supported, with any channel
// count and sample rate. The decoder works frame by frame and needs only an
// io.Reader.
package flac
