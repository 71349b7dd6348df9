// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for storyweaver.
//
// Configuration lives in a single TOML file with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - GeminiConfig: AI backend connection settings (key, model, limits)
//   - UIConfig: Theme selection
//   - ExportConfig: PDF export destination and filename
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (STORYWEAVER_*, GEMINI_API_KEY)
//   - ~/.storyweaver/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	model := cfg.Gemini.Model
//	theme := cfg.UI.Theme
package config
