// SPDX-License-Identifier: MPL-2.0

// Package registry holds documented commands declared explicitly, as a
// mapping from command name to description, instead of scraping them from
// definition-file text at runtime.
//
// A registry is built in code with Register, converted from scanned entries
// with FromEntries, or loaded from a structured file. Files share one shape in
// every supported format (CUE, TOML, YAML, JSON):
//
//	commands: [
//		{name: "build", description: "main build fn"},
//		{name: "test", description: "run tests"},
//	]
//
// A *Registry and a File both satisfy listing.Source, so the listing output is
// identical whichever way the commands were declared.
package registry
