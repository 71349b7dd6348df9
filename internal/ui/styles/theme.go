// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the storyweaver TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application. The mode
// (dark or light) comes from the persisted preference; terminal detection
// only informs the color profile, never the palette choice.
type Theme struct {
	// Mode and its derived palette
	Mode    Mode
	Palette Palette

	// Terminal capabilities
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHint  lipgloss.Style

	// ==========================================================================
	// PANE STYLES
	// ==========================================================================

	PaneFocused      lipgloss.Style
	PaneBlurred      lipgloss.Style
	PaneTitle        lipgloss.Style
	PaneTitleFocused lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	TurnLabel       lipgloss.Style
	ProvisionalText lipgloss.Style
	ErrorText       lipgloss.Style

	// ==========================================================================
	// CHAT INPUT STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusBusy   lipgloss.Style
	StatusExport lipgloss.Style
	WordCount    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES (actions menu, language picker)
	// ==========================================================================

	OverlayBox          lipgloss.Style
	OverlayTitle        lipgloss.Style
	OverlayItem         lipgloss.Style
	OverlayItemSelected lipgloss.Style
	OverlayKey          lipgloss.Style
	OverlayHint         lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
}

// NewTheme creates a theme for the given mode with all styles configured.
func NewTheme(mode Mode) *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		Mode:         mode,
		Palette:      PaletteFor(mode),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// SetMode switches the theme to the given mode and rebuilds every style
// from the matching palette. Layout dimensions are preserved.
func (t *Theme) SetMode(mode Mode) {
	t.Mode = mode
	t.Palette = PaletteFor(mode)
	t.initStyles()
}

// initStyles initializes all the lip gloss styles from the palette.
func (t *Theme) initStyles() {
	p := t.Palette

	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Cyan).
		Background(p.SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Purple)

	t.HeaderHint = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	// Panes
	t.PaneFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Cyan).
		Padding(0, 1)

	t.PaneBlurred = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.PaneTitle = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Bold(true)

	t.PaneTitleFocused = lipgloss.NewStyle().
		Foreground(p.Cyan).
		Bold(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(p.AssistantBubbleFg).
		Background(p.AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.AssistantBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.SystemBubble = lipgloss.NewStyle().
		Foreground(p.SystemBubbleFg).
		Background(p.SystemBubbleBg).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(p.SystemBubbleBorder).
		Padding(0, 2)

	t.TurnLabel = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Bold(true)

	t.ProvisionalText = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(p.Rose).
		Bold(true)

	// Chat input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(p.Cyan).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Padding(0, 1)

	t.StatusBusy = lipgloss.NewStyle().
		Foreground(p.Amber).
		Bold(true)

	t.StatusExport = lipgloss.NewStyle().
		Foreground(p.Emerald).
		Bold(true)

	t.WordCount = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Overlays
	t.OverlayBox = lipgloss.NewStyle().
		Background(p.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Purple).
		Padding(1, 2)

	t.OverlayTitle = lipgloss.NewStyle().
		Foreground(p.Purple).
		Bold(true)

	t.OverlayItem = lipgloss.NewStyle().
		Foreground(p.TextPrimary).
		Padding(0, 1)

	t.OverlayItemSelected = lipgloss.NewStyle().
		Background(p.Purple).
		Foreground(p.TextInverse).
		Bold(true).
		Padding(0, 1)

	t.OverlayKey = lipgloss.NewStyle().
		Foreground(p.Cyan).
		Width(10)

	t.OverlayHint = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Spinner and loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(p.TextSecondary)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
