// SPDX-License-Identifier: EPL-2.0

// Package audio defines the pull-based stream every decoder produces and the
// adapters used to bring foreign material onto an edit's timeline.
//
// A [Source] hands out interleaved float32 frames through ReadSamples until
// it returns io.EOF. Samples use 0 for silence and [-1, 1] for full scale.
// Decoders under formats/ return a Source, the buffer factory drains one into
// memory, and an edit region can be exposed as a Source again for encoding.
//
// Rate and channel layout are conformed by wrapping:
//
//	src = audio.NewResampler(src, 48000)
//	src, err = audio.NewChannelMixer(src, 2)
//
// [Registry] maps file extensions to decoders. Keys ignore case and a
// leading dot, so filepath.Ext can be passed as is:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	src, err := registry.Decode(filepath.Ext(path), f)
//
// Decode reports ErrUnknownFormat for an extension nobody registered.
package audio
