// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"makehelp/internal/config"
	"makehelp/pkg/listing"
	"makehelp/pkg/makefile"
	"makehelp/pkg/registry"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// listFlagValues holds the flags that shape a listing. A flag overrides
	// the configuration only when set on the command line.
	listFlagValues struct {
		files      []string
		registry   string
		color      string
		sort       string
		width      int
		noIncludes bool
	}

	// listingPlan is a resolved listing: where entries come from and how
	// they are rendered.
	listingPlan struct {
		cfg     *config.Config
		source  listing.Source
		lister  *listing.Lister
		logger  *log.Logger
		verbose bool
	}
)

// newListCommand creates the `makehelp list` command.
func newListCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	listFlags := &listFlagValues{}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the documented commands",
		Long: `Print the documented commands of the definition files.

Only lines of the form 'name: ... ## description' are listed. By default
lines are ordered by their full text; use --sort name to order by command
name instead. An empty listing is not an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, rootFlags, listFlags)
		},
	}

	bindListFlags(listCmd, listFlags)
	return listCmd
}

func bindListFlags(cmd *cobra.Command, f *listFlagValues) {
	defaults := config.DefaultConfig()

	cmd.Flags().StringArrayVarP(&f.files, "file", "f", nil, "definition file to read (repeatable; default is the Makefile in the working directory)")
	cmd.Flags().StringVar(&f.registry, "registry", "", "list a registry file (.cue, .toml, .yaml, .json) instead of definition files")
	cmd.Flags().StringVar(&f.color, "color", string(defaults.UI.Color), "colorize command names: auto, always, never")
	cmd.Flags().StringVar(&f.sort, "sort", string(defaults.Listing.Sort), "listing order: line, name")
	cmd.Flags().IntVar(&f.width, "width", int(defaults.Listing.Width), "name column width")
	cmd.Flags().BoolVar(&f.noIncludes, "no-includes", false, "do not follow include directives")

	_ = cmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{string(listing.ColorAuto), string(listing.ColorAlways), string(listing.ColorNever)}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("sort", cobra.FixedCompletions(
		[]string{string(listing.SortLine), string(listing.SortName)}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("registry", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		exts := make([]string, 0, 5)
		for _, f := range registry.Formats() {
			exts = append(exts, string(f))
		}
		exts = append(exts, "yml")
		return exts, cobra.ShellCompDirectiveFilterFileExt
	})
}

func runList(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, listFlags *listFlagValues) error {
	plan, err := planListing(cmd, app, rootFlags, listFlags)
	if err != nil {
		return app.fail(cmd, err, rootFlags.verbose)
	}

	if err := plan.lister.List(cmd.Context(), plan.source); err != nil {
		return app.fail(cmd, err, plan.verbose)
	}
	return nil
}

// planListing merges configuration and flags into a listingPlan.
func planListing(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, listFlags *listFlagValues) (*listingPlan, error) {
	cfg, err := app.loadConfig(cmd.Context(), rootFlags)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Listing.Files = listFlags.files
	}
	if flags.Changed("registry") {
		cfg.Listing.Registry = listFlags.registry
	}
	if flags.Changed("color") {
		cfg.UI.Color = listing.ColorMode(listFlags.color)
	}
	if flags.Changed("sort") {
		cfg.Listing.Sort = listing.SortMode(listFlags.sort)
	}
	if flags.Changed("width") {
		cfg.Listing.Width = config.ColumnWidth(listFlags.width)
	}
	if flags.Changed("no-includes") {
		cfg.Listing.FollowIncludes = !listFlags.noIncludes
	}
	if valid, errs := cfg.IsValid(); !valid {
		return nil, errs[0]
	}

	verbose := rootFlags.verbose || cfg.UI.Verbose
	logger := newLogger(app.stderr, verbose)

	formatter := listing.SelectFormatter(cfg.UI.Color, app.stdout)
	logger.Debug("formatter selected", "color", cfg.UI.Color, "formatter", fmt.Sprintf("%T", formatter))

	plan := &listingPlan{
		cfg: cfg,
		lister: &listing.Lister{
			Out: app.stdout,
			Options: listing.Options{
				Width:     int(cfg.Listing.Width),
				Sort:      cfg.Listing.Sort,
				Formatter: formatter,
			},
			Logger: logger,
		},
		logger:  logger,
		verbose: verbose,
	}

	if cfg.Listing.Registry != "" {
		logger.Debug("listing registry", "path", cfg.Listing.Registry)
		plan.source = registry.File{Path: cfg.Listing.Registry}
		return plan, nil
	}

	plan.source = listing.DefinitionFiles{
		Paths:          definitionFiles(cfg),
		FollowIncludes: cfg.Listing.FollowIncludes,
		Logger:         logger,
	}
	return plan, nil
}

// definitionFiles returns the configured files, or the file make would read
// in the working directory.
func definitionFiles(cfg *config.Config) []string {
	if len(cfg.Listing.Files) > 0 {
		return cfg.Listing.Files
	}
	return []string{makefile.Discover(".")}
}
