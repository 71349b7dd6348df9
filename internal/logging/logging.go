// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the application's structured file logger.
//
// The TUI owns stdout and stderr while it runs, so all diagnostics go to a
// rotating JSON log file under the config directory. Nothing in this
// package ever writes to the terminal.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the file logger. Zero values fall back to sane defaults.
type Options struct {
	// Path is the log file location. Required.
	Path string

	// Level is the minimum level: debug, info, warn, or error.
	Level string

	// MaxSizeMB rotates the file after it exceeds this size.
	MaxSizeMB int

	// MaxBackups caps how many rotated files are kept.
	MaxBackups int
}

// Init builds a file-only zap logger with lumberjack rotation.
func Init(opts Options) (*zap.Logger, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("log path is required")
	}

	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 3
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     30,
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		level,
	)

	return zap.New(core, zap.AddCaller()), nil
}

// Nop returns a logger that discards everything. Tests and optional
// subsystems use it so callers never need nil checks.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// parseLevel maps a config string to a zap level. Empty means info.
func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zap.InfoLevel, nil
	case "debug":
		return zap.DebugLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}
