// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer 3 audio with github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo at the stream's sample rate;
// mono files come out with both channels equal. Samples are float32 in
// [-1, 1). Wrap the source in audio.NewChannelMixer to get mono back:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	mono := audio.NewMonoMixer(src)
package mp3
