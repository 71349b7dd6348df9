// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea application model for storyweaver.
//
// This file defines the message types flowing through the update loop.
// Bus-bridged messages mirror the engine's published events one-to-one;
// the bridge decodes each bus payload into the matching type and hands it
// to the program. Internal messages carry command results and timers that
// never leave the ui package.
package ui

import (
	"github.com/jeranaias/storyweaver-tui/internal/config"
	"github.com/jeranaias/storyweaver-tui/internal/engine"
	"github.com/jeranaias/storyweaver-tui/internal/export"
	"github.com/jeranaias/storyweaver-tui/internal/ledger"
)

// =============================================================================
// BUS-BRIDGED MESSAGES
// =============================================================================

// TurnsMsg delivers the full conversation snapshot published on the turns
// topic. The transcript re-renders from it wholesale.
type TurnsMsg struct {
	Turns []ledger.TurnView
}

// DocumentMsg delivers a document change published on the document topic.
// Origin tells the editor whether the change is an echo of its own typing
// or an engine-side write it must display.
type DocumentMsg engine.DocumentEvent

// ResponderMsg delivers responder gate transitions; it drives the busy
// spinner and nothing else.
type ResponderMsg engine.ResponderEvent

// ExportMsg delivers export pipeline state changes for the status bar.
type ExportMsg export.Event

// ConfigReloadedMsg announces that the config file changed on disk and the
// global configuration has been reloaded.
type ConfigReloadedMsg config.ChangedEvent

// =============================================================================
// INTERNAL MESSAGES
// =============================================================================

// actionDoneMsg reports that an engine entry point returned. admitted is
// false when the responder gate silently dropped the request.
type actionDoneMsg struct {
	action   actionID
	admitted bool
}

// draftSavedMsg reports the outcome of an autosave write.
type draftSavedMsg struct {
	id  string
	err error
}

// autosaveTickMsg fires after the autosave debounce delay. seq matches it
// to the edit burst that scheduled it; a stale tick is ignored.
type autosaveTickMsg struct {
	seq int
}

// statusExpireMsg clears a transient status note. seq guards against
// clearing a note that was replaced in the meantime.
type statusExpireMsg struct {
	seq int
}

// themeSavedMsg reports whether persisting a theme toggle to the config
// file succeeded.
type themeSavedMsg struct {
	err error
}
