// SPDX-License-Identifier: MPL-2.0

// Package makefile extracts self-documented commands from build-definition
// files.
//
// A line documents a command when it has the shape
//
//	name: prerequisites ## description
//
// where name is one or more of [A-Za-z0-9_-] anchored at the start of the
// line. Lines without the "## " marker are skipped silently; the scanner never
// reports malformed lines.
package makefile
