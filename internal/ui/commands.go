// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea application model for storyweaver.
//
// This file defines the command creators: factory functions that wrap
// engine calls in tea.Cmd closures. Bubble Tea runs commands on their own
// goroutines, so every call that publishes bus events happens off the
// update loop and the loop can never block on its own event pipeline.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/storyweaver-tui/internal/config"
	"github.com/jeranaias/storyweaver-tui/internal/drafts"
	"github.com/jeranaias/storyweaver-tui/internal/engine"
	"github.com/jeranaias/storyweaver-tui/internal/export"
)

const (
	// autosaveDelay is the quiet period after the last keystroke before a
	// draft snapshot is written.
	autosaveDelay = 2 * time.Second

	// statusNoteTTL is how long a transient status note stays visible.
	statusNoteTTL = 5 * time.Second
)

// =============================================================================
// COMMAND CREATORS - Engine entry points
// =============================================================================

// chatCmd sends a free-form prompt through the turn orchestrator.
func chatCmd(eng *engine.Engine, prompt string) tea.Cmd {
	return func() tea.Msg {
		admitted := eng.Chat(context.Background(), prompt)
		return actionDoneMsg{action: actionChat, admitted: admitted}
	}
}

// continueStoryCmd starts the streaming continuation.
func continueStoryCmd(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		admitted := eng.ContinueStory(context.Background())
		return actionDoneMsg{action: actionContinue, admitted: admitted}
	}
}

// suggestTitlesCmd asks for title ideas for the current draft.
func suggestTitlesCmd(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		admitted := eng.SuggestTitles(context.Background())
		return actionDoneMsg{action: actionTitles, admitted: admitted}
	}
}

// characterIdeasCmd asks for character ideas for the current draft.
func characterIdeasCmd(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		admitted := eng.CharacterIdeas(context.Background())
		return actionDoneMsg{action: actionCharacters, admitted: admitted}
	}
}

// plotTwistCmd asks for a plot twist from the current story position.
func plotTwistCmd(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		admitted := eng.PlotTwist(context.Background())
		return actionDoneMsg{action: actionPlotTwist, admitted: admitted}
	}
}

// improveSelectionCmd reworks the captured selection.
func improveSelectionCmd(eng *engine.Engine, sel engine.SelectionSnapshot) tea.Cmd {
	return func() tea.Msg {
		admitted := eng.ImproveSelection(context.Background(), sel)
		return actionDoneMsg{action: actionImprove, admitted: admitted}
	}
}

// translateSelectionCmd runs the first translation phase: it appends the
// language picker turn (or an advisory for a blank selection) without
// taking the responder gate.
func translateSelectionCmd(eng *engine.Engine, sel engine.SelectionSnapshot) tea.Cmd {
	return func() tea.Msg {
		ok := eng.TranslateSelection(sel)
		return actionDoneMsg{action: actionTranslate, admitted: ok}
	}
}

// translateIntoCmd runs the second translation phase with the language the
// writer picked.
func translateIntoCmd(eng *engine.Engine, sel engine.SelectionSnapshot, languageName string) tea.Cmd {
	return func() tea.Msg {
		admitted := eng.TranslateSelectionInto(context.Background(), sel, languageName)
		return actionDoneMsg{action: actionTranslate, admitted: admitted}
	}
}

// newConversationCmd clears the assistant session and the transcript.
func newConversationCmd(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		eng.NewConversation()
		return actionDoneMsg{action: actionNewSession, admitted: true}
	}
}

// insertReplyCmd splices an assistant reply into the shared document. The
// resulting insert-origin event flows back through the bus and updates the
// editor.
func insertReplyCmd(doc *engine.DocumentContent, pos int, text string) tea.Cmd {
	return func() tea.Msg {
		doc.InsertAt(pos, text)
		return actionDoneMsg{action: actionInsert, admitted: true}
	}
}

// syncDocumentCmd pushes the editor's text into the shared document. It
// publishes a user-origin event the update loop will recognize as its own
// echo and skip.
func syncDocumentCmd(doc *engine.DocumentContent, text string) tea.Cmd {
	return func() tea.Msg {
		doc.Set(text)
		return nil
	}
}

// =============================================================================
// COMMAND CREATORS - Export and persistence
// =============================================================================

// requestExportCmd asks the export pipeline for a run. The pipeline's own
// single-flight gate decides admission; progress arrives via ExportMsg.
func requestExportCmd(p *export.Pipeline) tea.Cmd {
	return func() tea.Msg {
		admitted := p.Request()
		return actionDoneMsg{action: actionExport, admitted: admitted}
	}
}

// saveDraftCmd writes a draft snapshot to the local store.
func saveDraftCmd(store *drafts.Store, content string) tea.Cmd {
	return func() tea.Msg {
		id, err := store.Save(content)
		return draftSavedMsg{id: id, err: err}
	}
}

// persistThemeCmd writes the config (with its new theme) back to disk.
// cfg is a snapshot so a toggle during the write cannot race it.
func persistThemeCmd(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		return themeSavedMsg{err: config.Save(&cfg)}
	}
}

// =============================================================================
// COMMAND CREATORS - Timers
// =============================================================================

// autosaveTickCmd fires the autosave debounce timer for an edit burst.
func autosaveTickCmd(seq int) tea.Cmd {
	return tea.Tick(autosaveDelay, func(time.Time) tea.Msg {
		return autosaveTickMsg{seq: seq}
	})
}

// statusExpireCmd schedules a transient status note to clear.
func statusExpireCmd(seq int) tea.Cmd {
	return tea.Tick(statusNoteTTL, func(time.Time) tea.Msg {
		return statusExpireMsg{seq: seq}
	})
}
