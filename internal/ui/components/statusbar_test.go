// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for storyweaver.
package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/storyweaver-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func testStatusBar() *StatusBar {
	return NewStatusBar(styles.NewTheme(styles.ModeDark))
}

func TestNewStatusBar(t *testing.T) {
	s := testStatusBar()

	if s.ExportState != "idle" {
		t.Errorf("default export state = %q, want idle", s.ExportState)
	}
	if !s.ShowShortcuts {
		t.Error("shortcuts should be shown by default")
	}
}

func TestStatusBarLayoutsByWidth(t *testing.T) {
	s := testStatusBar()
	s.SetWords(1234)

	s.SetWidth(50)
	if !strings.Contains(s.View(), "1,234w") {
		t.Error("narrow view should show the compact word count")
	}

	s.SetWidth(80)
	if !strings.Contains(s.View(), "1,234 words") {
		t.Error("medium view should show the full word count")
	}

	s.SetWidth(120)
	wide := s.View()
	if !strings.Contains(wide, "1,234 words") {
		t.Error("wide view should show the full word count")
	}
	if !strings.Contains(wide, "^A") || !strings.Contains(wide, "^E") {
		t.Error("wide view should show shortcut hints")
	}
}

func TestStatusBarBusyIndicator(t *testing.T) {
	s := testStatusBar()
	s.SetWidth(80)

	if !strings.Contains(s.View(), "Ready") {
		t.Error("idle bar should read Ready")
	}

	s.SetBusy(true)
	s.SetSpinnerFrame("|")
	view := s.View()
	if !strings.Contains(view, "Muse is thinking") {
		t.Error("busy bar should show the thinking label")
	}
	if strings.Contains(view, "Ready") {
		t.Error("busy bar should not read Ready")
	}
}

func TestStatusBarExportBadge(t *testing.T) {
	s := testStatusBar()
	s.SetWidth(80)

	s.SetExportState("capturing")
	if !strings.Contains(s.View(), "exporting") {
		t.Error("capturing state should show the exporting badge")
	}

	s.SetExportState("failed")
	if !strings.Contains(s.View(), "export failed") {
		t.Error("failed state should show the failure badge")
	}

	s.SetExportState("idle")
	view := s.View()
	if strings.Contains(view, "exporting") || strings.Contains(view, "export failed") {
		t.Error("idle state should show no export badge")
	}
}

func TestStatusBarNoteSuppressedWhileExporting(t *testing.T) {
	s := testStatusBar()
	s.SetWidth(120)
	s.SetNote("Exported to story.pdf")

	if !strings.Contains(s.View(), "Exported to story.pdf") {
		t.Error("note should render while idle")
	}

	s.SetExportState("requested")
	if strings.Contains(s.View(), "Exported to story.pdf") {
		t.Error("stale note should be hidden while a new export runs")
	}
}

func TestStatusBarWideWidth(t *testing.T) {
	s := testStatusBar()
	s.SetWidth(120)
	s.SetWords(42)

	// Rendered bar fills the configured width.
	lines := strings.Split(s.View(), "\n")
	last := lines[len(lines)-1]
	if w := maxLineWidth(stripANSI(last)); w < 100 {
		t.Errorf("wide bar should span close to full width, got %d", w)
	}
}

// stripANSI removes escape sequences for width assertions.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
