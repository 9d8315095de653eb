// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/audiotest"
)

// Material recorded at 44.1kHz stereo is conformed to a 16kHz mono
// timeline before it is inserted.
func Example_conform() {
	var src audio.Source = audiotest.NewSineSource(44100, 2, 44100, 440)
	src = audio.NewResampler(src, 16000)
	src = audio.NewMonoMixer(src)

	frames := 0
	buf := make([]float32, 1024)
	for {
		n, err := src.ReadSamples(buf)
		frames += n / src.Channels()
		if err != nil {
			break
		}
	}

	fmt.Printf("%d Hz, %d channel(s), %d frames\n", src.SampleRate(), src.Channels(), frames)
	// Output:
	// 16000 Hz, 1 channel(s), 16000 frames
}

func ExampleRegistry_Decode() {
	registry := audio.NewRegistry()
	registry.Register("wav", nil)
	registry.Register("mp3", nil)

	fmt.Println(registry.Formats())

	_, err := registry.Decode(".opus", io.MultiReader())
	fmt.Println(errors.Is(err, audio.ErrUnknownFormat))
	// Output:
	// [mp3 wav]
	// true
}
