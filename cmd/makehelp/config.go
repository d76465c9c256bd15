// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"makehelp/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `makehelp config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage makehelp configuration",
		Long: `Manage makehelp configuration.

Configuration is read from the first file found of:
  - the file given with --config
  - Linux: ~/.config/makehelp/config.cue ($XDG_CONFIG_HOME is honored)
    macOS: ~/Library/Application Support/makehelp/config.cue
    Windows: %APPDATA%\makehelp\config.cue
  - ./makehelp.cue

MAKEHELP_* environment variables override file values, for example
MAKEHELP_LISTING_WIDTH=30 or MAKEHELP_UI_COLOR=never.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := showConfig(cmd.Context(), app, rootFlags); err != nil {
				return app.fail(cmd, err, rootFlags.verbose)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := showConfigPath(app); err != nil {
				return app.fail(cmd, err, rootFlags.verbose)
			}
			return nil
		},
	})

	var local bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(app, local); err != nil {
				return app.fail(cmd, err, rootFlags.verbose)
			}
			return nil
		},
	}
	initCmd.Flags().BoolVar(&local, "local", false, "create ./"+config.LocalConfigFileName+" instead of the user config file")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, rootFlags *rootFlagValues) error {
	cfg, path, err := app.Config.Resolve(ctx, app.loadOptions(rootFlags))
	if err != nil {
		return err
	}

	source := SubtitleStyle.Render("(using defaults)")
	if path != "" {
		source = path
	}

	fmt.Fprintf(app.stderr, "%s: %s\n\n", CmdStyle.Render("Config file"), source)
	fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	return nil
}

func showConfigPath(app *App) error {
	path, err := config.UserConfigPath(app.configDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.stdout, path)
	return nil
}

func initConfig(app *App, local bool) error {
	path := config.LocalConfigFileName
	if !local {
		var err error
		if path, err = config.UserConfigPath(app.configDir); err != nil {
			return err
		}
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(app.stderr, "%s already exists, left unchanged\n", CmdStyle.Render(path))
		return nil
	}

	fmt.Fprintf(app.stderr, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
