// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the storyweaver TUI.

This package defines the color palettes, the theme, and the spinner
configurations used throughout the application. Unlike terminal-detected
color schemes, the palette here is chosen by the persisted theme
preference: the user picks dark or light, the choice survives restarts,
and the whole UI re-derives its styles when the preference flips.

# Color System (colors.go)

Mode names the preference ("dark" or "light", defaulting to dark) and
Palette carries every concrete color one mode needs:

  - Accents: Purple, Cyan, Emerald, Rose, Amber
  - Surfaces: Surface, SurfaceDim, SurfaceBright, Overlay, OverlayDim
  - Text: TextPrimary, TextSecondary, TextMuted, TextInverse
  - Bubbles: per-role background, foreground, and border colors

# Theme System (theme.go)

The Theme struct holds one ready-to-render lipgloss style per UI element,
grouped by surface (header, panes, bubbles, input, status bar, overlays).

	theme := styles.NewTheme(styles.ParseMode(cfg.UI.Theme))
	theme.SetSize(width, height)

	// Toggling re-derives every style from the other palette.
	theme.SetMode(theme.Mode.Toggle())

# Animation System (animations.go)

Pre-defined ASCII spinner configurations, convertible to bubbles spinners:

	sp := spinner.New()
	sp.Spinner = styles.LineSpinner.Bubbles()
*/
package styles
