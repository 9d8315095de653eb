// SPDX-License-Identifier: EPL-2.0

// Package cli implements the audedit command tree.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/edit"
	"github.com/ik5/audedit/internal/config"
)

// app carries the state shared by one invocation of the command tree.
type app struct {
	env        *Env
	configFile string
	verbose    bool

	loader *config.Loader
	cfg    config.Config
	logger *slog.Logger
}

// Root builds the audedit command tree. Errors are returned to the caller
// unprinted.
func Root(env *Env) *cobra.Command {
	a := &app{env: env, logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:   "audedit",
		Short: "Edit audio files from the command line",
		Long: `Edit audio files from the command line.

Every edit command reads --input (wav, aiff, flac, mp3 or ogg), applies one
operation to the region chosen by --start, --duration and --channels, and
writes a WAV file to --output. Use "-o -" to write to stdout.

A negative --start counts from the end. A negative --duration selects the
samples before --start (or before the end), which fade treats as a fade out.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./audedit.yaml, then $XDG_CONFIG_HOME/audedit/audedit.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	pf.String(config.KeyLogLevel, "info", "log level: debug, info, warn or error")
	pf.Int(config.KeyBitDepth, 16, "output bit depth: 16, 24 or 32")

	root.AddCommand(
		a.infoCmd(),
		a.gainCmd(),
		a.fadeCmd(),
		a.normalizeCmd(),
		a.trimCmd(),
		a.reverseCmd(),
		a.invertCmd(),
		a.padCmd(),
		a.removeCmd(),
		a.insertSilenceCmd(),
		a.configCmd(),
	)

	return root
}

// newLoader builds the config loader for this run.
func (a *app) newLoader() *config.Loader {
	opts := slices.Clone(a.env.ConfigOptions)
	if a.configFile != "" {
		opts = append(opts, config.WithFile(a.configFile))
	}
	return config.New(opts...)
}

// setup loads the configuration, with the running command's flags taking
// precedence, and installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.loader = a.newLoader()
	if err := a.loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg, err := a.loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Level()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.env.Stderr, &slog.HandlerOptions{Level: level}))

	a.logger.Debug("configuration loaded",
		"file", a.loader.File(),
		"bit_depth", cfg.BitDepth,
		"fade_gain", cfg.FadeGain,
		"trim_threshold", cfg.TrimThreshold,
	)
	return nil
}

// regionFlags select the part of the audio an edit applies to.
type regionFlags struct {
	start    float64
	duration float64
	channels []int
}

func (f *regionFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.start, "start", 0, "region start in seconds, negative counts from the end")
	fs.Float64Var(&f.duration, "duration", 0, "region length in seconds, negative runs backwards (default: to the end)")
	fs.IntSliceVar(&f.channels, "channels", nil, "comma separated channel indices (default: all)")
}

// region maps the flags onto an edit.Region. Flags left unset stay unset
// so the resolver applies its defaults.
func (f *regionFlags) region(fs *pflag.FlagSet) edit.Region {
	var r edit.Region
	if fs.Changed("start") {
		r.Start = edit.Seconds(f.start)
	}
	if fs.Changed("duration") {
		r.Duration = edit.Seconds(f.duration)
	}
	if fs.Changed("channels") {
		r.Channels = f.channels
	}
	return r
}

// editFlags are shared by every command that rewrites a file.
type editFlags struct {
	input  string
	output string
	regionFlags
}

// editCmd builds a command that opens --input, runs op on the selected
// region and writes the result to --output.
func (a *app) editCmd(cmd *cobra.Command, f *editFlags, op func(*edit.Audio, edit.Region) error) *cobra.Command {
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		au, err := a.open(f.input)
		if err != nil {
			return err
		}

		r := f.region(cmd.Flags())
		a.logger.Debug("applying", "command", cmd.Name(), "start", r.Start, "duration", r.Duration, "channels", r.Channels)
		if err := op(au, r); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name(), err)
		}

		return a.save(f.output, au)
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "input audio file (wav, aiff, flac, mp3 or ogg)")
	fs.StringVarP(&f.output, "output", "o", "", `output WAV file, "-" for stdout`)
	f.register(fs)
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (a *app) open(path string) (*edit.Audio, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	au, err := audedit.Open(path, edit.Options{Logger: a.logger})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("opened",
		"path", path,
		"sample_rate", au.SampleRate(),
		"channels", au.Channels(),
		"duration", au.Duration(),
	)
	return au, nil
}

func (a *app) save(path string, au *edit.Audio) error {
	opts := audedit.SaveOptions{BitDepth: a.cfg.BitDepth}

	if path == "-" {
		return audedit.Encode(a.env.Stdout, au, opts)
	}
	if err := audedit.Save(path, au, opts); err != nil {
		return err
	}

	a.logger.Info("written", "path", path, "duration", au.Duration(), "bit_depth", opts.BitDepth)
	return nil
}
