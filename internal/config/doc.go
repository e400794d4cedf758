// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/docport/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/docport/config.cue on macOS, %APPDATA%\docport\config.cue
// on Windows). The package covers converter selection (tool.path, tool.pdf_engine),
// export defaults (format, output directory, extra arguments, open-after), and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations. Loading is
// explicit: a Provider takes LoadOptions and returns a plain Config value, and the package
// keeps no loaded state between calls.
package config
