// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"makehelp/pkg/listing"
	"makehelp/pkg/registry"

	"github.com/spf13/cobra"
)

// exportFlagValues holds the `makehelp export` flags.
type exportFlagValues struct {
	files      []string
	noIncludes bool
	format     string
	output     string
}

// newExportCommand creates the `makehelp export` command.
func newExportCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &exportFlagValues{}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the documented commands as a registry file",
		Long: `Scan the definition files and write their documented commands as a
registry document that 'makehelp --registry' can list.

The format is taken from --format, or from the extension of --output when
--format is not given. Commands defined more than once keep their first
description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, app, rootFlags, flags)
		},
	}

	formats := make([]string, 0, len(registry.Formats()))
	for _, f := range registry.Formats() {
		formats = append(formats, string(f))
	}

	exportCmd.Flags().StringArrayVarP(&flags.files, "file", "f", nil, "definition file to read (repeatable; default is the Makefile in the working directory)")
	exportCmd.Flags().BoolVar(&flags.noIncludes, "no-includes", false, "do not follow include directives")
	exportCmd.Flags().StringVar(&flags.format, "format", string(registry.FormatCUE), "registry format: "+strings.Join(formats, ", "))
	exportCmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to this file instead of stdout")
	_ = exportCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formats, cobra.ShellCompDirectiveNoFileComp))

	return exportCmd
}

func runExport(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *exportFlagValues) error {
	cfg, err := app.loadConfig(cmd.Context(), rootFlags)
	if err != nil {
		return app.fail(cmd, err, rootFlags.verbose)
	}
	verbose := rootFlags.verbose || cfg.UI.Verbose
	logger := newLogger(app.stderr, verbose)

	format, err := exportFormat(cmd, flags)
	if err != nil {
		return app.fail(cmd, err, verbose)
	}

	if cmd.Flags().Changed("file") {
		cfg.Listing.Files = flags.files
	}
	if cmd.Flags().Changed("no-includes") {
		cfg.Listing.FollowIncludes = !flags.noIncludes
	}

	src := listing.DefinitionFiles{
		Paths:          definitionFiles(cfg),
		FollowIncludes: cfg.Listing.FollowIncludes,
		Logger:         logger,
	}
	entries, err := src.Entries(cmd.Context())
	if err != nil {
		return app.fail(cmd, err, verbose)
	}

	reg, dropped, err := registry.FromEntries(entries)
	if err != nil {
		return app.fail(cmd, err, verbose)
	}
	for _, name := range dropped {
		logger.Warn("command defined more than once, keeping the first description", "command", name)
	}

	var buf bytes.Buffer
	if err := registry.Encode(&buf, format, reg); err != nil {
		return app.fail(cmd, err, verbose)
	}

	if flags.output == "" {
		if _, err := app.stdout.Write(buf.Bytes()); err != nil {
			return app.fail(cmd, fmt.Errorf("write registry: %w", err), verbose)
		}
		return nil
	}

	if dir := filepath.Dir(flags.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return app.fail(cmd, fmt.Errorf("create output directory: %w", err), verbose)
		}
	}
	if err := os.WriteFile(flags.output, buf.Bytes(), 0o644); err != nil {
		return app.fail(cmd, fmt.Errorf("write registry: %w", err), verbose)
	}
	logger.Info("registry written", "path", flags.output, "format", format, "commands", reg.Len())
	return nil
}

// exportFormat resolves the output format: the explicit flag first, then
// the output file extension, then the flag default.
func exportFormat(cmd *cobra.Command, flags *exportFlagValues) (registry.Format, error) {
	if !cmd.Flags().Changed("format") && flags.output != "" {
		return registry.FormatFromPath(flags.output)
	}
	f := registry.Format(strings.ToLower(flags.format))
	if valid, errs := f.IsValid(); !valid {
		return "", errs[0]
	}
	return f, nil
}
