// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger returns the diagnostics logger. Listing output never goes
// through it.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "makehelp",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
