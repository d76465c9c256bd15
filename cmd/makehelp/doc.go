// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the makehelp command tree.
//
// The root command and `list` print the documented commands of the
// definition files (or of a registry file). `export` turns definition files
// into a registry document, `watch` re-renders on change and `config`
// manages the configuration file.
package cmd
