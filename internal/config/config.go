// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages storyweaver configuration loading and validation.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/storyweaver-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the root configuration structure.
type Config struct {
	Version string `toml:"version" json:"version"`

	Gemini   GeminiConfig   `toml:"gemini" json:"gemini"`
	UI       UIConfig       `toml:"ui" json:"ui"`
	Document DocumentConfig `toml:"document" json:"document"`
	Export   ExportConfig   `toml:"export" json:"export"`
	Logging  LoggingConfig  `toml:"logging" json:"logging"`
}

// GeminiConfig holds the AI backend connection settings.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini API. Required; the TUI
	// refuses to start without it. Overridable via STORYWEAVER_GEMINI_KEY
	// or GEMINI_API_KEY.
	APIKey string `toml:"api_key" json:"api_key"`

	// Model is the Gemini model id used for both conversation and
	// streaming continuation.
	Model string `toml:"model" json:"model"`

	// BaseURL is the API root. Changed only for proxies and tests.
	BaseURL string `toml:"base_url" json:"base_url"`

	// TimeoutSeconds bounds a single conversational request.
	TimeoutSeconds int `toml:"timeout_seconds" json:"timeout_seconds"`

	// RequestsPerMinute throttles outgoing API calls client-side.
	RequestsPerMinute int `toml:"requests_per_minute" json:"requests_per_minute"`
}

// UIConfig holds user interface settings.
type UIConfig struct {
	// Theme selects the color scheme: "dark" or "light". Absent or
	// unknown values fall back to dark.
	Theme string `toml:"theme" json:"theme"`
}

// DocumentConfig holds manuscript handling settings.
type DocumentConfig struct {
	// Autosave persists manuscript snapshots to the draft store as the
	// user writes and restores the latest one at startup.
	Autosave bool `toml:"autosave" json:"autosave"`

	// MaxSnapshots caps the draft store; older snapshots are pruned.
	MaxSnapshots int `toml:"max_snapshots" json:"max_snapshots"`
}

// ExportConfig holds PDF export settings.
type ExportConfig struct {
	// OutputDir is where the artifact is written. Default: current
	// working directory.
	OutputDir string `toml:"output_dir" json:"output_dir"`

	// Filename is the fixed artifact name.
	Filename string `toml:"filename" json:"filename"`

	// OpenAfterExport opens the artifact in the default viewer.
	OpenAfterExport bool `toml:"open_after_export" json:"open_after_export"`
}

// LoggingConfig holds file-logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `toml:"level" json:"level"`

	// File is the log path. Empty means <config dir>/logs/storyweaver.log.
	File string `toml:"file" json:"file"`

	MaxSizeMB  int `toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int `toml:"max_backups" json:"max_backups"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Gemini: GeminiConfig{
			APIKey:            "",
			Model:             "gemini-1.5-flash",
			BaseURL:           "https://generativelanguage.googleapis.com/v1beta",
			TimeoutSeconds:    60,
			RequestsPerMinute: 12,
		},

		UI: UIConfig{
			Theme: "dark",
		},

		Document: DocumentConfig{
			Autosave:     true,
			MaxSnapshots: 50,
		},

		Export: ExportConfig{
			OutputDir:       ".",
			Filename:        "story.pdf",
			OpenAfterExport: false,
		},

		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the storyweaver configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".storyweaver"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists. The directory is
// private to the user because the config file carries the API key.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// LogFilePath resolves the effective log file location.
func (c *Config) LogFilePath() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "storyweaver.log"), nil
}

// DraftDBPath returns the location of the manuscript snapshot store.
func DraftDBPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "drafts.db"), nil
}

// ensureSecurePermissions checks and fixes permissions on the config file.
// SECURITY: Config files should be 0600 (owner read/write only) to protect the API key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when the file does not exist. Environment overrides are applied last, so
// they win over both file values and defaults.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from an explicit file path. Used by
// tests and the config watcher.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadTOML decodes a TOML file over cfg.
func loadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all filesystems; loading
		// still proceeds.
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	return nil
}

// Save writes the configuration to the default TOML path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer

	buf.WriteString("# storyweaver configuration file\n")
	buf.WriteString("# Generated by storyweaver - edit with care\n")
	buf.WriteString("#\n")
	buf.WriteString("# Documentation: https://github.com/jeranaias/storyweaver\n")
	buf.WriteString("\n")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	theme := strings.ToLower(c.UI.Theme)
	if theme != "dark" && theme != "light" {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light", c.UI.Theme),
		})
	}

	if c.Gemini.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "gemini.model",
			Message: "model must not be empty",
		})
	}
	if !strings.HasPrefix(c.Gemini.BaseURL, "http://") && !strings.HasPrefix(c.Gemini.BaseURL, "https://") {
		errs = append(errs, ValidationError{
			Field:   "gemini.base_url",
			Message: fmt.Sprintf("invalid base URL '%s'", c.Gemini.BaseURL),
		})
	}
	if c.Gemini.TimeoutSeconds < 1 || c.Gemini.TimeoutSeconds > 600 {
		errs = append(errs, ValidationError{
			Field:   "gemini.timeout_seconds",
			Message: fmt.Sprintf("timeout %d out of range (1-600)", c.Gemini.TimeoutSeconds),
		})
	}
	if c.Gemini.RequestsPerMinute < 1 || c.Gemini.RequestsPerMinute > 600 {
		errs = append(errs, ValidationError{
			Field:   "gemini.requests_per_minute",
			Message: fmt.Sprintf("rate %d out of range (1-600)", c.Gemini.RequestsPerMinute),
		})
	}

	if c.Document.MaxSnapshots < 1 || c.Document.MaxSnapshots > 10000 {
		errs = append(errs, ValidationError{
			Field:   "document.max_snapshots",
			Message: fmt.Sprintf("max_snapshots %d out of range (1-10000)", c.Document.MaxSnapshots),
		})
	}

	if c.Export.Filename == "" || strings.ContainsAny(c.Export.Filename, `/\`) {
		errs = append(errs, ValidationError{
			Field:   "export.filename",
			Message: fmt.Sprintf("invalid filename '%s'", c.Export.Filename),
		})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills in zero values that a hand-edited config may have
// dropped. Called after load, before validation.
func (c *Config) SetDefaults() {
	def := Default()

	if c.Version == "" {
		c.Version = def.Version
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = def.Gemini.Model
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = def.Gemini.BaseURL
	}
	if c.Gemini.TimeoutSeconds == 0 {
		c.Gemini.TimeoutSeconds = def.Gemini.TimeoutSeconds
	}
	if c.Gemini.RequestsPerMinute == 0 {
		c.Gemini.RequestsPerMinute = def.Gemini.RequestsPerMinute
	}
	if c.Document.MaxSnapshots == 0 {
		c.Document.MaxSnapshots = def.Document.MaxSnapshots
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = def.Export.OutputDir
	}
	if c.Export.Filename == "" {
		c.Export.Filename = def.Export.Filename
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = def.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = def.Logging.MaxBackups
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over config file values.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("STORYWEAVER_GEMINI_KEY"); key != "" {
		c.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}

	if model := os.Getenv("STORYWEAVER_MODEL"); model != "" {
		c.Gemini.Model = model
	}

	if url := os.Getenv("STORYWEAVER_GEMINI_URL"); url != "" {
		c.Gemini.BaseURL = url
	}

	if theme := os.Getenv("STORYWEAVER_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}

	if dir := os.Getenv("STORYWEAVER_EXPORT_DIR"); dir != "" {
		c.Export.OutputDir = dir
	}

	if level := os.Getenv("STORYWEAVER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	if autosave := os.Getenv("STORYWEAVER_AUTOSAVE"); autosave != "" {
		if val, err := strconv.ParseBool(autosave); err == nil {
			c.Document.Autosave = val
		}
	}
}

// =============================================================================
// CREDENTIAL CHECK
// =============================================================================

// HasCredential reports whether a Gemini API key is configured. The TUI
// treats a missing credential as a fatal startup condition.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.Gemini.APIKey) != ""
}

// String returns a human-readable representation with the API key redacted.
func (c *Config) String() string {
	key := "(not set)"
	if c.HasCredential() {
		key = "****" + lastN(c.Gemini.APIKey, 4)
	}
	return fmt.Sprintf("gemini{model: %s, key: %s} ui{theme: %s} document{autosave: %t} export{dir: %s}",
		c.Gemini.Model, key, c.UI.Theme, c.Document.Autosave, c.Export.OutputDir)
}

// lastN returns the final n characters of s, or all of s if shorter.
func lastN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
