// SPDX-License-Identifier: MPL-2.0

// Package config handles makehelp configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/makehelp/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/makehelp/config.cue on macOS, %APPDATA%\makehelp\config.cue
// on Windows), falling back to ./makehelp.cue in the working directory. Every key can be
// overridden through MAKEHELP_* environment variables (ui.color -> MAKEHELP_UI_COLOR).
//
// Files are validated against an embedded CUE schema (config_schema.cue) before
// they are merged into Viper, so type errors are reported with file positions.
package config
