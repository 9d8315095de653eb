// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/audedit/edit"
	"github.com/ik5/audedit/internal/config"
	"github.com/ik5/audedit/utils"
)

func (a *app) gainCmd() *cobra.Command {
	var (
		f  editFlags
		db float64
	)

	cmd := a.editCmd(&cobra.Command{
		Use:     "gain",
		Short:   "Amplify or attenuate by a number of decibels",
		Example: `  audedit gain -i in.wav -o out.wav --db -6 --start 1 --duration 2`,
	}, &f, func(au *edit.Audio, r edit.Region) error {
		return au.Gain(db, r)
	})

	cmd.Flags().Float64Var(&db, "db", 0, "gain in decibels")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func (a *app) fadeCmd() *cobra.Command {
	var (
		f      editFlags
		level  float64
		easing string
	)

	cmd := a.editCmd(&cobra.Command{
		Use:   "fade",
		Short: "Fade the region in, or out when --duration is negative",
		Example: `  audedit fade -i in.wav -o out.wav --duration 2
  audedit fade -i in.wav -o out.wav --duration=-3 --easing sine-inout`,
	}, &f, func(au *edit.Audio, r edit.Region) error {
		ease, ok := utils.Easings[easing]
		if !ok {
			return fmt.Errorf("%w %q (valid: %s)", ErrInvalidEasing, easing, strings.Join(easingNames(), ", "))
		}
		return au.Fade(r, edit.FadeOptions{Gain: a.cfg.FadeGain, Level: level, Easing: ease})
	})

	fs := cmd.Flags()
	fs.Float64(config.KeyFadeGain, edit.DefaultFadeGain, "starting gain in decibels")
	fs.Float64Var(&level, "level", 0, "starting linear amplitude, overrides --fade-gain")
	fs.StringVar(&easing, "easing", "linear", "fade curve: "+strings.Join(easingNames(), ", "))

	return cmd
}

func easingNames() []string {
	names := make([]string, 0, len(utils.Easings))
	for name := range utils.Easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *app) normalizeCmd() *cobra.Command {
	var f editFlags
	return a.editCmd(&cobra.Command{
		Use:   "normalize",
		Short: "Scale the region so its peak reaches full scale",
	}, &f, (*edit.Audio).Normalize)
}

func (a *app) reverseCmd() *cobra.Command {
	var f editFlags
	return a.editCmd(&cobra.Command{
		Use:   "reverse",
		Short: "Play the region backwards",
	}, &f, (*edit.Audio).Reverse)
}

func (a *app) invertCmd() *cobra.Command {
	var f editFlags
	return a.editCmd(&cobra.Command{
		Use:   "invert",
		Short: "Flip the polarity of the region",
	}, &f, (*edit.Audio).Invert)
}

func (a *app) removeCmd() *cobra.Command {
	var f editFlags
	return a.editCmd(&cobra.Command{
		Use:     "remove",
		Short:   "Cut the region out of the timeline",
		Example: `  audedit remove -i in.wav -o out.wav --start 10 --duration 5`,
	}, &f, (*edit.Audio).Remove)
}

func (a *app) trimCmd() *cobra.Command {
	var (
		f     editFlags
		level float64
		side  string
	)

	cmd := a.editCmd(&cobra.Command{
		Use:   "trim",
		Short: "Cut leading and trailing silence",
		Long: `Cut leading and trailing silence.

Samples at or below the threshold on every channel count as silence. The
region flags are ignored: trim always works on the whole file.`,
	}, &f, func(au *edit.Audio, _ edit.Region) error {
		s, err := edit.ParseTrimSide(side)
		if err != nil {
			return err
		}
		return au.Trim(edit.TrimOptions{Threshold: a.cfg.TrimThreshold, Level: level, Side: s})
	})

	fs := cmd.Flags()
	fs.Float64(config.KeyTrimThreshold, edit.DefaultTrimThreshold, "silence threshold in decibels")
	fs.Float64Var(&level, "level", 0, "silence threshold as a linear amplitude, overrides --trim-threshold")
	fs.StringVar(&side, "side", "both", "which ends to trim: both, left or right")

	return cmd
}

func (a *app) padCmd() *cobra.Command {
	var (
		f       editFlags
		seconds float64
		side    string
		value   float32
	)

	cmd := a.editCmd(&cobra.Command{
		Use:     "pad",
		Short:   "Extend the file to a minimum length",
		Example: `  audedit pad -i in.wav -o out.wav --seconds 30 --side left`,
	}, &f, func(au *edit.Audio, _ edit.Region) error {
		s, err := edit.ParsePadSide(side)
		if err != nil {
			return err
		}
		return au.Pad(seconds, edit.PadOptions{Side: s, Value: value})
	})

	fs := cmd.Flags()
	fs.Float64Var(&seconds, "seconds", 0, "minimum length in seconds")
	fs.StringVar(&side, "side", "right", "where to add samples: left or right")
	fs.Float32Var(&value, "value", 0, "sample value for the added audio")
	_ = cmd.MarkFlagRequired("seconds")

	return cmd
}

func (a *app) insertSilenceCmd() *cobra.Command {
	var (
		f     editFlags
		value float32
	)

	cmd := a.editCmd(&cobra.Command{
		Use:   "insert-silence",
		Short: "Insert --duration seconds of silence at --start",
		Long: `Insert --duration seconds of silence at --start.

Without --start the silence is appended. A start past the end pads the gap
with silence as well.`,
		Example: `  audedit insert-silence -i in.wav -o out.wav --start 5 --duration 1.5`,
	}, &f, func(au *edit.Audio, r edit.Region) error {
		return au.InsertValue(value, r)
	})

	cmd.Flags().Float32Var(&value, "value", 0, "sample value for the inserted audio")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}
