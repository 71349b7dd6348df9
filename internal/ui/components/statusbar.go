// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for storyweaver.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/storyweaver-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// StatusBar is the bottom bar showing assistant activity, export progress,
// the manuscript word count, and keyboard shortcut hints.
type StatusBar struct {
	Width         int    // Available width
	Busy          bool   // True while the assistant is responding
	SpinnerFrame  string // Current spinner frame, shown while Busy
	ExportState   string // Export pipeline state ("idle", "requested", ...)
	Note          string // Transient note (draft saved, export result)
	Words         int    // Manuscript word count
	ShowShortcuts bool   // Show keyboard shortcut hints
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:         80,
		ExportState:   "idle",
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetBusy updates the assistant activity indicator.
func (s *StatusBar) SetBusy(busy bool) {
	s.Busy = busy
}

// SetSpinnerFrame updates the spinner frame shown while busy.
func (s *StatusBar) SetSpinnerFrame(frame string) {
	s.SpinnerFrame = frame
}

// SetExportState updates the export pipeline state display.
func (s *StatusBar) SetExportState(state string) {
	s.ExportState = state
}

// SetNote updates the transient note text.
func (s *StatusBar) SetNote(note string) {
	s.Note = note
}

// SetWords updates the manuscript word count.
func (s *StatusBar) SetWords(words int) {
	s.Words = words
}

// View renders the status bar, choosing a layout based on width.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact bar for narrow terminals.
// Format: ~ 1,234w note
func (s *StatusBar) viewNarrow() string {
	p := s.theme.Palette

	parts := []string{s.renderActivity(true)}

	wordStyle := lipgloss.NewStyle().Foreground(p.TextMuted)
	parts = append(parts, wordStyle.Render(fmtNumber(s.Words)+"w"))

	if note := s.noteText(); note != "" {
		noteStyle := lipgloss.NewStyle().Foreground(p.TextSecondary)
		parts = append(parts, noteStyle.Render(truncate(note, s.Width-12)))
	}

	return lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Width(s.Width).
		Render(strings.Join(parts, " "))
}

// viewMedium renders a medium-width bar.
// Format: Status | export | note | 1,234 words
func (s *StatusBar) viewMedium() string {
	p := s.theme.Palette

	separator := lipgloss.NewStyle().
		Foreground(p.Overlay).
		Render(" | ")

	parts := []string{s.renderActivity(false)}

	if badge := s.renderExportBadge(); badge != "" {
		parts = append(parts, badge)
	}

	if note := s.noteText(); note != "" {
		noteStyle := lipgloss.NewStyle().Foreground(p.TextSecondary)
		parts = append(parts, noteStyle.Render(truncate(note, s.Width/2)))
	}

	wordStyle := lipgloss.NewStyle().Foreground(p.TextMuted)
	parts = append(parts, wordStyle.Render(fmtNumber(s.Words)+" words"))

	return lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(strings.Join(parts, separator))
}

// viewWide renders the full bar for wide terminals: activity and notes on
// the left, word count and shortcuts on the right.
func (s *StatusBar) viewWide() string {
	p := s.theme.Palette

	leftSep := lipgloss.NewStyle().Foreground(p.Overlay).Render(" | ")

	leftParts := []string{s.renderActivity(false)}
	if badge := s.renderExportBadge(); badge != "" {
		leftParts = append(leftParts, badge)
	}
	if note := s.noteText(); note != "" {
		noteStyle := lipgloss.NewStyle().Foreground(p.TextSecondary)
		leftParts = append(leftParts, noteStyle.Render(truncate(note, s.Width/2)))
	}
	leftSection := strings.Join(leftParts, leftSep)

	rightParts := []string{}
	wordStyle := lipgloss.NewStyle().Foreground(p.TextMuted)
	rightParts = append(rightParts, wordStyle.Render(fmtNumber(s.Words)+" words"))
	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}
	rightSection := strings.Join(rightParts, "  ")

	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)

	spacing := s.Width - leftWidth - rightWidth - 4
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Overlay).
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderActivity renders the busy spinner or the ready marker.
func (s *StatusBar) renderActivity(compact bool) string {
	p := s.theme.Palette

	if s.Busy {
		busyStyle := lipgloss.NewStyle().Foreground(p.Purple).Bold(true)
		frame := s.SpinnerFrame
		if frame == "" {
			frame = "~"
		}
		if compact {
			return busyStyle.Render(frame)
		}
		return busyStyle.Render(frame + " Muse is thinking")
	}

	readyStyle := lipgloss.NewStyle().Foreground(p.Emerald)
	if compact {
		return readyStyle.Render("+")
	}
	return readyStyle.Render("Ready")
}

// renderExportBadge renders the export progress badge, or "" when idle.
func (s *StatusBar) renderExportBadge() string {
	p := s.theme.Palette

	switch s.ExportState {
	case "requested", "capturing":
		return lipgloss.NewStyle().
			Foreground(p.Amber).
			Bold(true).
			Render("exporting")
	case "failed":
		return lipgloss.NewStyle().
			Foreground(p.Rose).
			Bold(true).
			Render("export failed")
	default:
		return ""
	}
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	p := s.theme.Palette

	keyStyle := lipgloss.NewStyle().
		Foreground(p.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(p.TextMuted)

	shortcuts := []string{
		keyStyle.Render("^A") + descStyle.Render("actions"),
		keyStyle.Render("^E") + descStyle.Render("export"),
		keyStyle.Render("^T") + descStyle.Render("theme"),
		keyStyle.Render("^C") + descStyle.Render("quit"),
	}

	return strings.Join(shortcuts, " ")
}

// noteText returns the transient note, suppressed while a newer export run
// is in flight so the badge and a stale note never contradict each other.
func (s *StatusBar) noteText() string {
	if s.Note == "" {
		return ""
	}
	if s.ExportState == "requested" || s.ExportState == "capturing" {
		return ""
	}
	return s.Note
}
