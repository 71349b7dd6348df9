// storyweaver - A two-pane terminal studio for writing fiction with an AI
// co-author.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/jeranaias/storyweaver-tui/internal/bus"
	"github.com/jeranaias/storyweaver-tui/internal/config"
	"github.com/jeranaias/storyweaver-tui/internal/drafts"
	"github.com/jeranaias/storyweaver-tui/internal/engine"
	"github.com/jeranaias/storyweaver-tui/internal/export"
	"github.com/jeranaias/storyweaver-tui/internal/gateway"
	"github.com/jeranaias/storyweaver-tui/internal/ledger"
	"github.com/jeranaias/storyweaver-tui/internal/logging"
	"github.com/jeranaias/storyweaver-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const usageText = `storyweaver - write stories alongside an AI co-author

Usage:
  storyweaver              Start the writing interface
  storyweaver auth         Save your Gemini API key (prompted, no echo)
  storyweaver version      Show version information
  storyweaver help         Show this help

Configuration:
  ~/.storyweaver/config.toml   Settings (theme, model, export, logging)
  GEMINI_API_KEY               API key override (also STORYWEAVER_GEMINI_KEY)

Version: %s
`

func main() {
	args := os.Args[1:]

	cmd := ""
	if len(args) > 0 {
		cmd = strings.ToLower(args[0])
	}

	switch cmd {
	case "":
		runTUI()
	case "auth":
		if err := runAuth(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		printVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

// printUsage prints the usage/help text.
func printUsage() {
	fmt.Printf(usageText, Version)
}

// printVersion prints version information.
func printVersion() {
	fmt.Printf("storyweaver version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// =============================================================================
// AUTH COMMAND
// =============================================================================

// runAuth prompts for the Gemini API key without echoing it and writes it
// to the config file.
func runAuth() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.HasCredential() {
		fmt.Printf("An API key is already configured (****%s).\n", lastN(cfg.Gemini.APIKey, 4))
		fmt.Println("Entering a new key will replace it.")
		fmt.Println()
	}

	fmt.Print("Enter Gemini API key: ")
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	fmt.Println() // Newline after hidden input

	key := strings.TrimSpace(string(keyBytes))
	if key == "" {
		return fmt.Errorf("API key required")
	}

	cfg.Gemini.APIKey = key
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	path, err := config.ConfigPath()
	if err != nil {
		path = "the config file"
	}
	fmt.Printf("API key saved to %s\n", path)
	return nil
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
// TUI STARTUP
// =============================================================================

// runTUI wires the application together and runs the Bubble Tea program.
func runTUI() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	// A missing credential is fatal: every orchestration needs the backend.
	if !cfg.HasCredential() {
		fmt.Fprintln(os.Stderr, "No Gemini API key configured.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Save one with:")
		fmt.Fprintln(os.Stderr, "  storyweaver auth")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Or set it in the environment:")
		fmt.Fprintln(os.Stderr, "  export GEMINI_API_KEY=your-key")
		os.Exit(1)
	}

	// File logger; the TUI owns stdout and stderr from here on.
	logger := logging.Nop()
	if logPath, err := cfg.LogFilePath(); err == nil {
		fileLogger, err := logging.Init(logging.Options{
			Path:       logPath,
			Level:      cfg.Logging.Level,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
		} else {
			logger = fileLogger
		}
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting storyweaver",
		zap.String("version", Version),
		zap.String("model", cfg.Gemini.Model),
		zap.String("theme", cfg.UI.Theme))

	// Event bus; everything downstream publishes through it.
	b := bus.New()
	defer b.Close()

	// Draft store: restore the latest snapshot when autosave is on.
	var store *drafts.Store
	initialDocument := ""
	if cfg.Document.Autosave {
		dbPath, err := config.DraftDBPath()
		if err == nil {
			store, err = drafts.Open(dbPath, cfg.Document.MaxSnapshots)
			if err != nil {
				logger.Warn("draft store unavailable, autosave disabled", zap.Error(err))
				store = nil
			}
		}
	}
	if store != nil {
		defer store.Close()
		snap, err := store.Latest()
		switch {
		case err == nil:
			initialDocument = snap.Content
			logger.Info("restored draft",
				zap.String("snapshot_id", snap.ID),
				zap.Int("chars", len(snap.Content)))
		case errors.Is(err, drafts.ErrNoDraft):
			// First run, nothing to restore.
		default:
			logger.Warn("could not restore draft", zap.Error(err))
		}
	}

	// Gemini gateway: one client, one conversational session.
	client := gateway.NewClient(cfg.Gemini.APIKey).
		WithBaseURL(cfg.Gemini.BaseURL).
		WithModel(cfg.Gemini.Model).
		WithTimeout(time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second).
		WithRequestsPerMinute(cfg.Gemini.RequestsPerMinute)
	session := client.NewSession()

	// Shared state: ledger, manuscript, responder gate.
	led := ledger.New(b)
	doc := engine.NewDocumentContent(b)
	if initialDocument != "" {
		doc.Set(initialDocument)
	}
	responder := engine.NewResponderState(b)

	eng := engine.New(engine.Config{
		Session:   session,
		Continuer: client,
		Ledger:    led,
		Document:  doc,
		Responder: responder,
		Logger:    logger,
	})

	// Export pipeline with its own single-flight gate.
	exportOpts := export.DefaultOptions()
	exportOpts.OutputDir = cfg.Export.OutputDir
	exportOpts.Filename = cfg.Export.Filename
	exportOpts.OpenAfterExport = cfg.Export.OpenAfterExport
	pipeline := export.New(export.Config{
		Source:  doc,
		Ledger:  led,
		Bus:     b,
		Options: exportOpts,
		Logger:  logger,
	})

	// Config watcher: theme edits from outside apply live. Optional; the
	// app runs fine without it.
	watcher, err := config.NewWatcher(b)
	if err != nil {
		logger.Warn("config watcher unavailable", zap.Error(err))
	} else {
		if err := watcher.Watch(); err != nil {
			logger.Warn("config watcher failed to start", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	// UI model and program.
	m := ui.New(ui.Config{
		Engine:          eng,
		Exporter:        pipeline,
		Drafts:          store,
		App:             cfg,
		Logger:          logger,
		InitialDocument: initialDocument,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Bridge bus events into the program before it starts handling input.
	bridge := ui.NewBridge(b, logger)
	if err := bridge.Start(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer bridge.Stop()

	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("storyweaver exited")
}
