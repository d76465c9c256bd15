// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"time"

	"makehelp/internal/watch"
	"makehelp/pkg/makefile"

	"github.com/spf13/cobra"
)

// watchFlagValues holds the `makehelp watch` flags on top of the listing flags.
type watchFlagValues struct {
	listFlagValues
	clear    bool
	debounce time.Duration
}

// newWatchCommand creates the `makehelp watch` command.
func newWatchCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &watchFlagValues{}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the listing and re-print it when a definition file changes",
		Long: `Print the listing, then watch the definition files (or the registry
file) and print it again after every change. Stop with Ctrl+C.

Included files are watched too. A listing that fails while watching is
reported on stderr and the watch continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, app, rootFlags, flags)
		},
	}

	bindListFlags(watchCmd, &flags.listFlagValues)
	watchCmd.Flags().BoolVar(&flags.clear, "clear", false, "clear the screen before each listing")
	watchCmd.Flags().DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce, "quiet period after the last change before re-listing")

	return watchCmd
}

func runWatch(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *watchFlagValues) error {
	plan, err := planListing(cmd, app, rootFlags, &flags.listFlagValues)
	if err != nil {
		return app.fail(cmd, err, rootFlags.verbose)
	}

	ctx := cmd.Context()
	relist := func(ctx context.Context, _ []string) error {
		return plan.lister.List(ctx, plan.source)
	}

	// The file may not exist yet; the watch picks it up once it is created.
	if err := relist(ctx, nil); err != nil {
		plan.logger.Error("listing failed", "err", formatErrorForDisplay(err, plan.verbose))
	}

	paths := watchPaths(ctx, plan)
	w, err := watch.New(watch.Config{
		Paths:       paths,
		Debounce:    flags.debounce,
		ClearScreen: flags.clear,
		OnChange:    relist,
		Stdout:      app.stdout,
		Logger:      plan.logger,
	})
	if err != nil {
		return app.fail(cmd, err, plan.verbose)
	}

	plan.logger.Info("watching for changes (Ctrl+C to stop)", "files", paths)
	if err := w.Run(ctx); err != nil {
		return app.fail(cmd, err, plan.verbose)
	}
	return nil
}

// watchPaths lists the files whose changes alter the listing: the registry
// file, or the definition files plus what they include.
func watchPaths(ctx context.Context, plan *listingPlan) []string {
	if plan.cfg.Listing.Registry != "" {
		return []string{plan.cfg.Listing.Registry}
	}

	roots := definitionFiles(plan.cfg)
	if !plan.cfg.Listing.FollowIncludes {
		return roots
	}
	files, err := makefile.FileList(ctx, roots, nil)
	if err != nil {
		plan.logger.Debug("include expansion failed, watching root files only", "err", err)
		return roots
	}
	return files
}
