// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the storyweaver TUI.

This package contains a collection of styled view builders on top of the
Bubble Tea and Lip Gloss libraries. Components hold presentation state only;
the ui package owns the application model and feeds each component what it
needs before rendering.

# Components

Header (header.go) - Title bar with the storyweaver brand and assistant name.
StatusBar (statusbar.go) - Bottom bar with busy indicator, export state,
word count, and keyboard shortcut hints. Adapts its layout to narrow,
medium, and wide terminals.
TurnBubble (bubble.go) - A single conversation turn rendered as a styled
bubble. User turns sit on the right, assistant turns on the left, system
turns centered.
ListOverlay (overlay.go) - Centered modal list with keyboard navigation,
used for the actions menu and the translation language picker.

# Helpers

helpers.go holds shared formatting utilities: display-width aware word
wrapping and truncation (go-runewidth), and number formatting with
thousand separators for the word counter.
*/
package components
