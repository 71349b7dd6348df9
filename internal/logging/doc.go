// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures storyweaver's structured file logger.
//
// The TUI owns stdout and stderr while it runs, so every diagnostic goes to
// a rotating JSON log file under the config directory. The logger is plain
// zap with lumberjack rotation; packages receive a *zap.Logger and never
// construct their own.
//
// # Usage
//
//	logger, err := logging.Init(logging.Options{
//	    Path:  logPath,
//	    Level: "info",
//	})
//	defer logger.Sync()
//
// Nop() returns a discard-everything logger for tests and optional
// subsystems.
package logging
