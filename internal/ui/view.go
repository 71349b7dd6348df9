// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/storyweaver-tui/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete interface.
// Layout: header (1 line) + body (editor and chat panes) + status bar.
// Pane dimensions come from paneSizes(); the widget sizes were set to match
// in setSize(), so the stack fills the terminal exactly.
func (m *Model) View() string {
	if !m.ready || m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// A visible overlay is a full-screen modal; it replaces the base view
	// until dismissed.
	if m.actionsOverlay.IsVisible() {
		return m.actionsOverlay.View()
	}
	if m.languageOverlay.IsVisible() {
		return m.languageOverlay.View()
	}

	header := m.header.View()
	status := m.renderStatusBar()

	editorW, chatW, editorH, chatH := m.paneSizes()
	editorPane := m.renderEditorPane(editorW, editorH)
	chatPane := m.renderChatPane(chatW, chatH)

	var body string
	if editorW == m.width && chatW == m.width {
		// Narrow layout: panes stack vertically.
		body = lipgloss.JoinVertical(lipgloss.Left, editorPane, chatPane)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, editorPane, chatPane)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		status,
	)
}

// =============================================================================
// PANES
// =============================================================================

// renderEditorPane renders the bordered manuscript pane at the given outer
// dimensions: a title line above the textarea.
func (m *Model) renderEditorPane(width, height int) string {
	focused := m.focus == FocusEditor

	title := m.renderPaneTitle("Manuscript", focused)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.editor.View(),
	)

	// The border adds one row and one column on each side.
	style := m.theme.PaneBlurred
	if focused {
		style = m.theme.PaneFocused
	}
	return style.
		Width(width - 2).
		Height(height - 2).
		Render(content)
}

// renderChatPane renders the bordered chat pane: a title line, the
// transcript viewport, and the input line under its separator.
func (m *Model) renderChatPane(width, height int) string {
	focused := m.focus == FocusChat

	title := m.renderPaneTitle("Muse", focused)

	input := m.theme.InputContainer.
		Width(width - 4).
		Render(m.chatInput.View())

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.transcript.View(),
		input,
	)

	style := m.theme.PaneBlurred
	if focused {
		style = m.theme.PaneFocused
	}
	return style.
		Width(width - 2).
		Height(height - 2).
		Render(content)
}

// renderPaneTitle renders a pane's title line, marking the focused pane.
func (m *Model) renderPaneTitle(title string, focused bool) string {
	if focused {
		return m.theme.PaneTitleFocused.Render("* " + title)
	}
	return m.theme.PaneTitle.Render("  " + title)
}

// =============================================================================
// STATUS BAR
// =============================================================================

// renderStatusBar feeds the status bar component the current activity,
// export, and word-count state and renders it.
func (m *Model) renderStatusBar() string {
	m.statusBar.SetBusy(m.busy)
	m.statusBar.SetSpinnerFrame(m.spin.View())
	m.statusBar.SetExportState(m.exportState)
	m.statusBar.SetNote(m.statusNote)
	m.statusBar.SetWords(util.WordCount(m.editor.Value()))
	return m.statusBar.View()
}
