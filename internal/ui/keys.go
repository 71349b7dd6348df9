// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea application model for storyweaver.
//
// This file defines keyboard bindings for the writing interface.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the writing interface. Each
// binding supports multiple keys and carries help text.
type KeyMap struct {
	SwitchFocus key.Binding
	Send        key.Binding
	Continue    key.Binding
	Export      key.Binding
	Theme       key.Binding
	Actions     key.Binding
	InsertReply key.Binding
	NewSession  key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Dismiss     key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch pane"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send to Muse"),
		),
		Continue: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("C-j", "continue the story"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export PDF"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "toggle theme"),
		),
		Actions: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("C-a", "actions menu"),
		),
		InsertReply: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "insert Muse's reply"),
		),
		NewSession: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new conversation"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll transcript up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll transcript down"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "dismiss / back to editor"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the status bar hint line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Actions, k.Export, k.Theme, k.Quit}
}

// FullHelp returns all bindings grouped for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Writing
		{k.SwitchFocus, k.Send, k.Continue, k.InsertReply},
		// Story actions
		{k.Actions, k.Export, k.NewSession},
		// Navigation
		{k.ScrollUp, k.ScrollDown, k.Dismiss},
		// App
		{k.Theme, k.Quit},
	}
}
