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
// HEADER COMPONENT - Title bar with storyweaver branding
// =============================================================================

// Header is the title bar shown above the editor and chat panes.
type Header struct {
	Title     string // Main title (default: "storyweaver")
	Assistant string // Assistant display name shown next to the title
	ThemeName string // Active theme name ("dark" or "light")
	Width     int    // Available width
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:     "storyweaver",
		Assistant: "",
		ThemeName: "",
		Width:     80,
		theme:     theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetAssistant updates the assistant display name.
func (h *Header) SetAssistant(name string) {
	h.Assistant = name
}

// SetThemeName updates the displayed theme name.
func (h *Header) SetThemeName(name string) {
	h.ThemeName = name
}

// View renders the header as a single styled line.
func (h *Header) View() string {
	p := h.theme.Palette

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(p.Purple)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	parts := []string{brand}

	if h.Assistant != "" {
		assistantStyle := lipgloss.NewStyle().
			Foreground(p.TextSecondary)
		parts = append(parts, assistantStyle.Render(h.Assistant))
	}

	if h.ThemeName != "" {
		themeStyle := lipgloss.NewStyle().
			Foreground(p.TextMuted)
		parts = append(parts, themeStyle.Render("["+h.ThemeName+"]"))
	}

	separator := lipgloss.NewStyle().
		Foreground(p.Overlay).
		Render(" | ")

	line := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Padding(0, 1).
		Width(h.Width).
		Render(line)
}

// ViewBoxed renders a bordered two-line header for wide terminals.
func (h *Header) ViewBoxed() string {
	width := h.Width
	if width < 40 {
		width = 40
	}
	innerWidth := width - 6

	p := h.theme.Palette

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(p.Purple)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	subtitleParts := []string{}
	if h.Assistant != "" {
		subtitleParts = append(subtitleParts, "with "+h.Assistant)
	}
	if h.ThemeName != "" {
		subtitleParts = append(subtitleParts, "["+h.ThemeName+"]")
	}
	subtitle := strings.Join(subtitleParts, " ")

	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)

	subtitleLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Foreground(p.TextMuted).
		Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	headerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Purple).
		Background(p.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return headerBox.Render(content)
}
