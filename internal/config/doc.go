// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/childenv/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/childenv/config.toml on macOS, %APPDATA%\childenv\config.toml
// on Windows), with a config.toml in the current directory as a fallback. Scalar settings
// may be overridden through CHILDENV_-prefixed environment variables. The package provides
// named rule profiles (profile name to rule string), default profile selection, and the
// verbosity switch.
package config
