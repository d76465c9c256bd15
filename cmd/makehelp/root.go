// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"makehelp/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree. Without a subcommand it prints the
// listing, exactly like `makehelp list`.
func NewRootCommand(app *App) *cobra.Command {
	rootFlags := &rootFlagValues{}
	listFlags := &listFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "makehelp",
		Short: "List the documented commands of a Makefile",
		Long: TitleStyle.Render("makehelp") + SubtitleStyle.Render(" - List the documented commands of a Makefile") + `

A rule is documented when its target line carries a '## ' comment:

  build: deps ## Build the binary

makehelp prints one line per documented command, the name padded to a
fixed column followed by its description.

` + SubtitleStyle.Render("Examples:") + `
  makehelp                       List the commands of ./Makefile
  makehelp -f mk/docker.mk       List the commands of another file
  makehelp --sort name           Order by command name
  makehelp export -o cmds.toml   Write a command registry
  makehelp watch                 Re-list on every save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, rootFlags, listFlags)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/makehelp/config.cue)")
	bindListFlags(rootCmd, listFlags)

	rootCmd.AddCommand(
		newListCommand(app, rootFlags),
		newExportCommand(app, rootFlags),
		newWatchCommand(app, rootFlags),
		newConfigCommand(app, rootFlags),
		newCompletionCommand(),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the command tree and exits the process with its status.
// This is called by main.main().
func Execute() {
	os.Exit(run())
}

// run executes the command tree through fang and returns the exit status.
func run() int {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return int(exitErr.Code)
		}
		return int(types.ExitFailure)
	}
	return int(types.ExitSuccess)
}

// errorHandler prints errors fang receives. An *ExitError was already
// rendered by App.fail and is not printed again; flag and argument errors
// from cobra get fang's default rendering.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
