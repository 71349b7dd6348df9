// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the storyweaver TUI.
// Colors come from an explicit dark or light palette selected by the
// persisted theme preference, not from terminal background detection.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME MODE
// =============================================================================

// Mode selects which palette the theme renders with.
type Mode int

const (
	ModeDark  Mode = iota // Default
	ModeLight
)

// ParseMode maps a persisted theme string to a Mode. Unknown or empty
// values fall back to dark.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "light") {
		return ModeLight
	}
	return ModeDark
}

// String returns the persistable name of the mode.
func (m Mode) String() string {
	if m == ModeLight {
		return "light"
	}
	return "dark"
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// =============================================================================
// PALETTE
// =============================================================================

// Palette is the full set of concrete colors for one theme mode.
type Palette struct {
	// Accents
	Purple  lipgloss.Color // Primary accent, assistant turns, selections
	Cyan    lipgloss.Color // Brand color, keys, user highlights
	Emerald lipgloss.Color // Success states, export done
	Rose    lipgloss.Color // Errors, failed exports
	Amber   lipgloss.Color // Advisories, caution states

	// Surfaces
	Surface       lipgloss.Color // Main background
	SurfaceDim    lipgloss.Color // Headers and footers
	SurfaceBright lipgloss.Color // Highlights
	Overlay       lipgloss.Color // Borders, separators
	OverlayDim    lipgloss.Color // Less prominent borders

	// Text
	TextPrimary   lipgloss.Color // Main body text
	TextSecondary lipgloss.Color // Labels, less prominent text
	TextMuted     lipgloss.Color // Hints, word counts, subtle text
	TextInverse   lipgloss.Color // Text on colored backgrounds

	// Message bubbles
	UserBubbleBg          lipgloss.Color
	UserBubbleFg          lipgloss.Color
	UserBubbleBorder      lipgloss.Color
	AssistantBubbleBg     lipgloss.Color
	AssistantBubbleFg     lipgloss.Color
	AssistantBubbleBorder lipgloss.Color
	SystemBubbleBg        lipgloss.Color
	SystemBubbleFg        lipgloss.Color
	SystemBubbleBorder    lipgloss.Color

	// Editor selection highlight
	SelectionBg lipgloss.Color
}

// DarkPalette returns the palette for dark terminals.
func DarkPalette() Palette {
	return Palette{
		Purple:  lipgloss.Color("#A78BFA"),
		Cyan:    lipgloss.Color("#22D3EE"),
		Emerald: lipgloss.Color("#34D399"),
		Rose:    lipgloss.Color("#FB7185"),
		Amber:   lipgloss.Color("#FBBF24"),

		Surface:       lipgloss.Color("#1E1E2E"),
		SurfaceDim:    lipgloss.Color("#181825"),
		SurfaceBright: lipgloss.Color("#313244"),
		Overlay:       lipgloss.Color("#313244"),
		OverlayDim:    lipgloss.Color("#45475A"),

		TextPrimary:   lipgloss.Color("#CDD6F4"),
		TextSecondary: lipgloss.Color("#A6ADC8"),
		TextMuted:     lipgloss.Color("#6C7086"),
		TextInverse:   lipgloss.Color("#1E1E2E"),

		UserBubbleBg:          lipgloss.Color("#1D4ED8"),
		UserBubbleFg:          lipgloss.Color("#E0F2FE"),
		UserBubbleBorder:      lipgloss.Color("#3B82F6"),
		AssistantBubbleBg:     lipgloss.Color("#3B3655"),
		AssistantBubbleFg:     lipgloss.Color("#E9E4F5"),
		AssistantBubbleBorder: lipgloss.Color("#A78BFA"),
		SystemBubbleBg:        lipgloss.Color("#78350F"),
		SystemBubbleFg:        lipgloss.Color("#FEF3C7"),
		SystemBubbleBorder:    lipgloss.Color("#F59E0B"),

		SelectionBg: lipgloss.Color("#1E3A5F"),
	}
}

// LightPalette returns the palette for light terminals.
func LightPalette() Palette {
	return Palette{
		Purple:  lipgloss.Color("#7C3AED"),
		Cyan:    lipgloss.Color("#0891B2"),
		Emerald: lipgloss.Color("#059669"),
		Rose:    lipgloss.Color("#E11D48"),
		Amber:   lipgloss.Color("#D97706"),

		Surface:       lipgloss.Color("#FFFFFF"),
		SurfaceDim:    lipgloss.Color("#F5F5F5"),
		SurfaceBright: lipgloss.Color("#FAFAFA"),
		Overlay:       lipgloss.Color("#E5E5E5"),
		OverlayDim:    lipgloss.Color("#D4D4D4"),

		TextPrimary:   lipgloss.Color("#1F2937"),
		TextSecondary: lipgloss.Color("#6B7280"),
		TextMuted:     lipgloss.Color("#9CA3AF"),
		TextInverse:   lipgloss.Color("#FFFFFF"),

		UserBubbleBg:          lipgloss.Color("#DBEAFE"),
		UserBubbleFg:          lipgloss.Color("#1E40AF"),
		UserBubbleBorder:      lipgloss.Color("#3B82F6"),
		AssistantBubbleBg:     lipgloss.Color("#F5F3FF"),
		AssistantBubbleFg:     lipgloss.Color("#5B4B8A"),
		AssistantBubbleBorder: lipgloss.Color("#C4B5FD"),
		SystemBubbleBg:        lipgloss.Color("#FEF3C7"),
		SystemBubbleFg:        lipgloss.Color("#92400E"),
		SystemBubbleBorder:    lipgloss.Color("#F59E0B"),

		SelectionBg: lipgloss.Color("#BFDBFE"),
	}
}

// PaletteFor returns the palette for the given mode.
func PaletteFor(mode Mode) Palette {
	if mode == ModeLight {
		return LightPalette()
	}
	return DarkPalette()
}
