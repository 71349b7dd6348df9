// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea application model for storyweaver.
//
// This file defines the actions menu: the named operations a writer can
// trigger from the Ctrl+A overlay. Each entry maps to one engine entry
// point or to the export pipeline.
package ui

import (
	"github.com/jeranaias/storyweaver-tui/internal/ui/components"
)

// =============================================================================
// ACTION DEFINITIONS
// =============================================================================

// actionID identifies one entry in the actions menu.
type actionID string

const (
	actionContinue   actionID = "continue"
	actionTitles     actionID = "titles"
	actionCharacters actionID = "characters"
	actionPlotTwist  actionID = "plot-twist"
	actionImprove    actionID = "improve"
	actionTranslate  actionID = "translate"
	actionInsert     actionID = "insert-reply"
	actionExport     actionID = "export"
	actionNewSession actionID = "new-session"

	// Not menu entries, but reported through actionDoneMsg
	actionChat actionID = "chat"
)

// actionEntry describes one row of the actions menu.
type actionEntry struct {
	id    actionID
	title string
	desc  string
}

// actionMenu returns the actions overlay rows in display order.
func actionMenu() []actionEntry {
	return []actionEntry{
		{actionContinue, "Continue the story", "Muse writes onward from the end"},
		{actionTitles, "Suggest titles", "Five title ideas for the draft"},
		{actionCharacters, "Character ideas", "Three characters who fit the story"},
		{actionPlotTwist, "Plot twist", "A surprising turn from here"},
		{actionImprove, "Improve selection", "Rework the paragraph under the cursor"},
		{actionTranslate, "Translate selection", "Render the paragraph in another language"},
		{actionInsert, "Insert Muse's reply", "Paste the latest reply at the cursor"},
		{actionExport, "Export PDF", "Save the manuscript as story.pdf"},
		{actionNewSession, "New conversation", "Clear the transcript and start fresh"},
	}
}

// actionOverlayItems converts the menu to overlay rows.
func actionOverlayItems() []components.OverlayItem {
	entries := actionMenu()
	items := make([]components.OverlayItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, components.OverlayItem{
			ID:    string(e.id),
			Title: e.title,
			Desc:  e.desc,
		})
	}
	return items
}
