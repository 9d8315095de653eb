// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files.
//
// Decoding and seekable encoding go through github.com/go-audio/wav:
//
//	src, err := wav.Decoder{}.Decode(file)
//	...
//	err = wav.Encoder{BitDepth: 24}.Encode(out, src)
//
// Samples cross the audio.Source boundary as float32 in [-1, 1]. 16, 24 and
// 32-bit PCM are supported, mono or multichannel, at any sample rate.
//
// Encode patches the header sizes once all samples are written, which needs
// an io.WriteSeeker. For pipes and standard output use EncodeTo, or
// WriteWAV16 when the samples are already in memory.
package wav
