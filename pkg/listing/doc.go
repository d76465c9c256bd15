// SPDX-License-Identifier: MPL-2.0

// Package listing renders documented commands as an aligned, optionally
// colorized listing: one line per command, the name padded to a fixed column
// and followed by its description.
//
// Rendering is a pure read, sort, format, write pipeline. The formatter is
// chosen once (see SelectFormatter) and never re-evaluated per line.
package listing
