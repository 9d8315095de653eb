// SPDX-License-Identifier: EPL-2.0

// Package audedit loads, edits and saves audio.
//
// Files are decoded through the format packages into an edit.Audio, edited
// region by region, and written back as WAV:
//
//	a, err := audedit.Open("take.mp3", edit.Options{})
//	if err != nil {
//	    return err
//	}
//
//	err = a.Chain().
//	    Trim(edit.TrimOptions{}).
//	    Normalize(edit.All).
//	    Fade(edit.Region{Duration: edit.Seconds(-2)}, edit.FadeOptions{}).
//	    Err()
//	if err != nil {
//	    return err
//	}
//
//	return audedit.Save("take.wav", a, audedit.SaveOptions{BitDepth: 24})
//
// # Supported Formats
//
// Input, chosen by file extension:
//   - WAV (PCM 16, 24 or 32-bit) via formats/wav
//   - AIFF (PCM 8 to 32-bit) via formats/aiff
//   - FLAC (16, 24 or 32-bit) via formats/flac
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Output is always WAV. SaveOptions can resample and remix on the way out
// using the streaming converters of the audio package.
//
// # Lower Level Pieces
//
//   - audio: the Source interface, decoder registry, Resampler and ChannelMixer
//   - buffer: planar multichannel sample buffers
//   - segment: the chunked timeline behind edit.Audio
//   - edit: regions and editing operations
package audedit
