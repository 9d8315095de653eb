// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"math"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/audedit/edit"
	"github.com/ik5/audedit/utils"
)

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "info <file>...",
		Short:   "Print format details and peak level of audio files",
		Example: `  audedit info voice.mp3 music.ogg`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]*edit.Audio, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					au, err := a.open(path)
					if err != nil {
						return err
					}
					files[i] = au
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for i, path := range args {
				if err := a.printInfo(path, files[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) printInfo(path string, au *edit.Audio) error {
	lo, hi, err := au.Limits(edit.All)
	if err != nil {
		return err
	}
	peak := max(math.Abs(float64(lo)), math.Abs(float64(hi)))

	w := a.env.Stdout
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  sample rate: %d Hz\n", au.SampleRate())
	fmt.Fprintf(w, "  channels:    %d\n", au.Channels())
	fmt.Fprintf(w, "  samples:     %d\n", au.Len())
	fmt.Fprintf(w, "  duration:    %s\n", au.Duration())
	if peak == 0 {
		fmt.Fprintf(w, "  peak:        silent\n")
	} else {
		fmt.Fprintf(w, "  peak:        %.2f dBFS\n", utils.LinearToDecibels(peak))
	}

	return nil
}
