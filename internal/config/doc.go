// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for tunnelcfg's own
// preferences (not the documents it edits). The preferences are a YAML
// document located in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/tunnelcfg.yaml or $HOME/.config/tunnelcfg.yaml
//   - Windows: %APPDATA%/tunnelcfg.yaml
//
// TUNNELCFG_CFG_FILE overrides the location.
package config
