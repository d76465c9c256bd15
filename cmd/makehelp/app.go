// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"makehelp/internal/config"
	"makehelp/internal/issue"
	"makehelp/internal/watch"
	"makehelp/pkg/makefile"
	"makehelp/pkg/registry"
	"makehelp/pkg/types"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type (
	// App wires CLI services and shared dependencies. Cobra handlers receive
	// an App reference and write only to its stdout and stderr.
	App struct {
		Config    ConfigProvider
		configDir string
		stdout    io.Writer
		stderr    io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		// ConfigDir overrides the user config directory lookup.
		ConfigDir string
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Resolve(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// rootFlagValues holds the persistent flags shared by every command.
	rootFlagValues struct {
		verbose    bool
		configPath string
	}
)

// NewApp creates the CLI composition root.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		configDir: deps.ConfigDir,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadConfig loads configuration honoring the --config flag.
func (a *App) loadConfig(ctx context.Context, rootFlags *rootFlagValues) (*config.Config, error) {
	return a.Config.Load(ctx, a.loadOptions(rootFlags))
}

func (a *App) loadOptions(rootFlags *rootFlagValues) config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: rootFlags.configPath,
		ConfigDirPath:  a.configDir,
	}
}

// fail renders err to stderr with its guide and returns the ExitError that
// carries the exit status out of RunE.
func (a *App) fail(cmd *cobra.Command, err error, verbose bool) error {
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, verbose))

	if guide := issueFor(err); guide != nil {
		rendered, renderErr := guide.Render(guideStyle(a.stderr))
		if renderErr == nil {
			fmt.Fprint(a.stderr, rendered)
		}
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: types.ExitFailure, Err: err}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// issueFor picks the guide explaining err, or nil.
func issueFor(err error) *issue.Issue {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Guide() != nil {
		return ae.Guide()
	}

	var fae *makefile.FileAccessError
	if errors.As(err, &fae) {
		switch {
		case fae.NotExist():
			return issue.Get(issue.DefinitionFileNotFoundId)
		case fae.Permission():
			return issue.Get(issue.PermissionDeniedId)
		}
		return nil
	}

	switch {
	case errors.Is(err, registry.ErrUnsupportedFormat):
		return issue.Get(issue.UnsupportedRegistryFormatId)
	case errors.Is(err, registry.ErrDecode):
		return issue.Get(issue.RegistryParseErrorId)
	case errors.Is(err, watch.ErrWatcherBroken):
		return issue.Get(issue.WatchFailedId)
	case errors.Is(err, config.ErrInvalidConfig):
		return issue.Get(issue.ConfigLoadFailedId)
	}
	return nil
}

// guideStyle selects the glamour style for w: colored on terminals, plain
// otherwise.
func guideStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
