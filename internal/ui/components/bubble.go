// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for storyweaver.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/storyweaver-tui/internal/ledger"
	"github.com/jeranaias/storyweaver-tui/internal/ui/styles"
)

// =============================================================================
// TURN BUBBLE COMPONENT - A single conversation turn
// =============================================================================

// TurnBubble renders one ledger turn as a styled bubble. User turns sit on
// the right edge, assistant turns on the left, system turns centered.
type TurnBubble struct {
	Turn          ledger.TurnView
	Width         int    // Available width for the whole row
	Rendered      string // Pre-rendered markdown body; raw content when empty
	IsError       bool   // Style the body as an error advisory
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewTurnBubble creates a bubble for the given turn.
func NewTurnBubble(turn ledger.TurnView, theme *styles.Theme) *TurnBubble {
	return &TurnBubble{
		Turn:          turn,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the available row width.
func (b *TurnBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the bubble for the turn's role.
func (b *TurnBubble) View() string {
	switch b.Turn.Role {
	case ledger.RoleUser:
		return b.renderUser()
	case ledger.RoleAssistant:
		return b.renderAssistant()
	default:
		return b.renderSystem()
	}
}

// ==========================================================================
// USER BUBBLE - right-aligned
// ==========================================================================

func (b *TurnBubble) renderUser() string {
	content := b.Turn.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(contentWidth).Render(wrapped)

	header := b.renderHeader()

	leftMargin := b.Width - lipgloss.Width(bubble) - 2
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(
		lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - left-aligned
// ==========================================================================

func (b *TurnBubble) renderAssistant() string {
	body := b.Rendered
	plain := body == ""
	if plain {
		body = b.Turn.Content
	}
	if body == "" {
		body = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	if plain {
		body = wordWrap(body, maxContentWidth)
	}
	body = strings.TrimRight(body, "\n")

	if b.Turn.Provisional {
		body = b.theme.ProvisionalText.Render(body)
	} else if b.IsError {
		body = b.theme.ErrorText.Render(body)
	}

	contentWidth := minInt(maxLineWidth(body)+4, b.Width-8)

	bubble := b.theme.AssistantBubble.Width(contentWidth).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, b.renderHeader(), bubble)
}

// ==========================================================================
// SYSTEM BUBBLE - centered
// ==========================================================================

func (b *TurnBubble) renderSystem() string {
	content := b.Turn.Content
	if content == "" {
		return ""
	}

	maxContentWidth := b.Width - 20
	if maxContentWidth < 30 {
		maxContentWidth = 30
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-16)

	bubble := b.theme.SystemBubble.
		Width(contentWidth).
		Align(lipgloss.Center).
		Render(wrapped)

	centerStyle := lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Center)

	return centerStyle.Render(bubble)
}

// ==========================================================================
// SHARED PIECES
// ==========================================================================

// renderHeader renders the role label plus an optional timestamp.
func (b *TurnBubble) renderHeader() string {
	p := b.theme.Palette

	labelStyle := lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)
	parts := []string{labelStyle.Render(b.Turn.Role.DisplayName())}

	if b.ShowTimestamp && !b.Turn.CreatedAt.IsZero() {
		tsStyle := lipgloss.NewStyle().Foreground(p.Overlay)
		parts = append(parts, tsStyle.Render(b.Turn.CreatedAt.Format("15:04")))
	}

	return strings.Join(parts, " ")
}
