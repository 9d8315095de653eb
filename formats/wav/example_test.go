// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/audedit/formats/wav"
)

func ExampleWriteWAV16() {
	var buf bytes.Buffer
	if err := wav.WriteWAV16(&buf, 8000, 1, []int16{0, 8192, 16384}); err != nil {
		fmt.Println(err)
		return
	}

	src, err := wav.Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		fmt.Println(err)
		return
	}

	samples := make([]float32, 8)
	n, _ := src.ReadSamples(samples)
	fmt.Println(src.SampleRate(), src.Channels(), samples[:n])
	// Output: 8000 1 [0 0.25 0.5]
}
