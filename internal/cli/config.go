// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audedit/internal/config"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Settings are read from ./audedit.yaml or $XDG_CONFIG_HOME/audedit/audedit.yaml
and can be overridden with AUDEDIT_* environment variables (for example
AUDEDIT_BIT_DEPTH=24) or the matching command line flags.

Supported settings:
  bit-depth        Output WAV bit depth: 16, 24 or 32
  fade-gain        Default fade starting gain in decibels
  trim-threshold   Default trim silence threshold in decibels
  log-level        debug, info, warn or error`,
		Example: `  audedit config set bit-depth 24
  audedit config get fade-gain
  audedit config list`,
		// The file may hold values that fail validation; these commands
		// must still be able to show and fix them.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.loader = a.newLoader()
			return a.loader.BindFlags(cmd.Flags())
		},
	}

	cmd.AddCommand(a.configSetCmd(), a.configGetCmd(), a.configListCmd())

	return cmd
}

func (a *app) configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

The value is written to the config file in use, or to
$XDG_CONFIG_HOME/audedit/audedit.yaml when there is none yet.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigSet(args[0], args[1])
		},
	}
}

func (a *app) configGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.loader.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.env.Stdout, v)
			return nil
		},
	}
}

func (a *app) configListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the effective value of every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.loader.All()
			if err != nil {
				return err
			}
			for _, key := range config.Keys {
				fmt.Fprintf(a.env.Stdout, "%s=%s\n", key, all[key])
			}
			if f := a.loader.File(); f != "" {
				fmt.Fprintf(a.env.Stderr, "# from %s\n", f)
			}
			return nil
		},
	}
}

func (a *app) runConfigSet(key, value string) error {
	// Locate an existing file first so Set updates it in place.
	if _, err := a.loader.All(); err != nil {
		return err
	}

	path, err := a.loader.DefaultPath()
	if err != nil {
		return err
	}
	if err := a.loader.Set(path, key, value); err != nil {
		return err
	}

	fmt.Fprintf(a.env.Stderr, "Set %s = %s in %s\n", key, value, path)
	return nil
}
