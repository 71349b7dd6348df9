// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/storyweaver-tui/internal/config"
	"github.com/jeranaias/storyweaver-tui/internal/engine"
	"github.com/jeranaias/storyweaver-tui/internal/export"
	"github.com/jeranaias/storyweaver-tui/internal/ledger"
	"github.com/jeranaias/storyweaver-tui/internal/ui/components"
	"github.com/jeranaias/storyweaver-tui/internal/ui/styles"
	"github.com/jeranaias/storyweaver-tui/internal/util"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.busy && !m.exporting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case TurnsMsg:
		return m.handleTurns(msg)

	case DocumentMsg:
		return m.handleDocument(msg)

	case ResponderMsg:
		m.busy = msg.Busy
		if msg.Busy {
			return m, m.spin.Tick
		}
		return m, nil

	case ExportMsg:
		return m.handleExport(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case components.ItemChosenMsg:
		return m.handleItemChosen(msg)

	case components.OverlayDismissedMsg:
		if msg.OverlayID == overlayLanguages {
			// The writer backed out of the picker; drop the held selection.
			m.pendingSelection = engine.SelectionSnapshot{}
		}
		return m, nil

	case actionDoneMsg:
		if !msg.admitted {
			m.log.Debug("request dropped while responder busy",
				zap.String("action", string(msg.action)))
		}
		return m, nil

	case draftSavedMsg:
		return m.handleDraftSaved(msg)

	case autosaveTickMsg:
		return m.handleAutosaveTick(msg)

	case statusExpireMsg:
		if msg.seq == m.statusSeq {
			m.statusNote = ""
		}
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.log.Warn("theme change not persisted", zap.Error(msg.err))
			return m, m.setStatusNote("Theme change not saved")
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// A visible overlay captures everything else.
	if m.actionsOverlay.IsVisible() {
		var cmd tea.Cmd
		m.actionsOverlay, cmd = m.actionsOverlay.Update(msg)
		return m, cmd
	}
	if m.languageOverlay.IsVisible() {
		var cmd tea.Cmd
		m.languageOverlay, cmd = m.languageOverlay.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.SwitchFocus):
		return m.toggleFocus()

	case key.Matches(msg, m.keys.Actions):
		m.actionsOverlay.Show()
		return m, nil

	case key.Matches(msg, m.keys.Continue):
		return m, continueStoryCmd(m.engine)

	case key.Matches(msg, m.keys.InsertReply):
		return m.insertLastReply()

	case key.Matches(msg, m.keys.Export):
		return m, requestExportCmd(m.exporter)

	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()

	case key.Matches(msg, m.keys.NewSession):
		return m, newConversationCmd(m.engine)

	case key.Matches(msg, m.keys.ScrollUp):
		m.transcript.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.transcript.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		if m.focus == FocusChat {
			return m.toggleFocus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Send) && m.focus == FocusChat:
		return m.submitChat()
	}

	return m.updateFocused(msg)
}

// toggleFocus moves keyboard focus between the editor and the chat input.
func (m *Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == FocusEditor {
		m.focus = FocusChat
		m.editor.Blur()
		return m, m.chatInput.Focus()
	}
	m.focus = FocusEditor
	m.chatInput.Blur()
	return m, m.editor.Focus()
}

// toggleTheme flips dark/light, restyles the widgets, and persists the
// choice to the config file.
func (m *Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.theme.SetMode(m.theme.Mode.Toggle())
	m.cfg.UI.Theme = m.theme.Mode.String()

	m.header.SetThemeName(m.theme.Mode.String())
	m.chatInput.PromptStyle = m.theme.InputPrompt
	m.chatInput.PlaceholderStyle = m.theme.InputPlaceholder
	m.spin.Style = m.theme.Spinner

	m.rebuildRenderer()
	m.renderTranscript()

	return m, tea.Batch(
		persistThemeCmd(*m.cfg),
		m.setStatusNote("Theme: "+m.theme.Mode.String()),
	)
}

// submitChat sends the chat input through the orchestrator. Blank input is
// ignored outright.
func (m *Model) submitChat() (tea.Model, tea.Cmd) {
	prompt := strings.TrimSpace(m.chatInput.Value())
	if prompt == "" {
		return m, nil
	}
	m.chatInput.Reset()
	return m, chatCmd(m.engine, prompt)
}

// updateFocused forwards a message to the focused input widget. Editor
// changes are pushed to the shared document and schedule an autosave.
func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.focus == FocusEditor {
		before := m.editor.Value()
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
		if after := m.editor.Value(); after != before {
			cmds = append(cmds, m.onDocumentEdited(after))
		}
	} else {
		m.chatInput, cmd = m.chatInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// onDocumentEdited syncs an editor change into the engine's document and
// restarts the autosave debounce.
func (m *Model) onDocumentEdited(text string) tea.Cmd {
	m.autosaveSeq++
	cmds := []tea.Cmd{syncDocumentCmd(m.engine.Document(), text)}
	if m.autosaveEnabled() {
		cmds = append(cmds, autosaveTickCmd(m.autosaveSeq))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// BUS EVENT HANDLERS
// =============================================================================

// handleTurns replaces the transcript and pops the language picker when a
// fresh picker turn arrives.
func (m *Model) handleTurns(msg TurnsMsg) (tea.Model, tea.Cmd) {
	m.turns = msg.Turns
	m.renderTranscript()

	if last, ok := lastTurn(msg.Turns); ok &&
		last.Kind == ledger.KindLanguagePicker && last.ID != m.lastPickerID {
		m.lastPickerID = last.ID
		m.languageOverlay.Show()
	}
	return m, nil
}

// handleDocument applies engine-side document writes to the editor. Events
// with a user origin are echoes of the editor's own sync and are skipped;
// replaying them would fight the cursor mid-keystroke.
func (m *Model) handleDocument(msg DocumentMsg) (tea.Model, tea.Cmd) {
	if msg.Origin == engine.OriginUser {
		return m, nil
	}

	m.editor.SetValue(msg.Text)
	m.autosaveSeq++
	if m.autosaveEnabled() {
		return m, autosaveTickCmd(m.autosaveSeq)
	}
	return m, nil
}

// handleExport tracks pipeline progress and surfaces the outcome.
func (m *Model) handleExport(msg ExportMsg) (tea.Model, tea.Cmd) {
	m.exportState = msg.State

	switch msg.State {
	case export.StateRequested.String():
		return m, m.spin.Tick
	case export.StateDone.String():
		return m, m.setStatusNote("Exported to " + msg.Path)
	case export.StateFailed.String():
		return m, m.setStatusNote("Export failed: " + msg.Error)
	}
	return m, nil
}

// handleConfigReloaded applies a config file change from disk. Only the
// theme is live-applied; other fields take effect on restart.
func (m *Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	m.cfg = config.Global()

	mode := styles.ParseMode(msg.Theme)
	if mode == m.theme.Mode {
		return m, nil
	}

	m.theme.SetMode(mode)
	m.header.SetThemeName(m.theme.Mode.String())
	m.chatInput.PromptStyle = m.theme.InputPrompt
	m.chatInput.PlaceholderStyle = m.theme.InputPlaceholder
	m.spin.Style = m.theme.Spinner
	m.rebuildRenderer()
	m.renderTranscript()

	return m, m.setStatusNote("Theme: " + m.theme.Mode.String())
}

// =============================================================================
// OVERLAY SELECTION
// =============================================================================

// handleItemChosen routes an overlay choice to the matching operation.
func (m *Model) handleItemChosen(msg components.ItemChosenMsg) (tea.Model, tea.Cmd) {
	switch msg.OverlayID {
	case overlayActions:
		return m.runAction(actionID(msg.ItemID))

	case overlayLanguages:
		name := languageNameForTag(msg.ItemID)
		if name == "" {
			return m, nil
		}
		sel := m.pendingSelection
		m.pendingSelection = engine.SelectionSnapshot{}
		return m, translateIntoCmd(m.engine, sel, name)
	}
	return m, nil
}

// runAction dispatches one actions-menu entry.
func (m *Model) runAction(id actionID) (tea.Model, tea.Cmd) {
	switch id {
	case actionContinue:
		return m, continueStoryCmd(m.engine)
	case actionTitles:
		return m, suggestTitlesCmd(m.engine)
	case actionCharacters:
		return m, characterIdeasCmd(m.engine)
	case actionPlotTwist:
		return m, plotTwistCmd(m.engine)
	case actionImprove:
		return m, improveSelectionCmd(m.engine, m.selectionSnapshot())
	case actionTranslate:
		sel := m.selectionSnapshot()
		m.pendingSelection = sel
		return m, translateSelectionCmd(m.engine, sel)
	case actionInsert:
		return m.insertLastReply()
	case actionExport:
		return m, requestExportCmd(m.exporter)
	case actionNewSession:
		return m, newConversationCmd(m.engine)
	}
	return m, nil
}

// insertLastReply pastes Muse's newest reply into the manuscript at the end
// of the cursor's line. With no usable reply it just notes that.
func (m *Model) insertLastReply() (tea.Model, tea.Cmd) {
	reply, ok := lastAssistantReply(m.turns)
	if !ok {
		return m, m.setStatusNote("No reply to insert yet")
	}

	pos := m.caretOffset()
	text := reply.Content
	before := util.SafeSubstring(m.editor.Value(), 0, pos)
	if prev, _ := utf8.DecodeLastRuneInString(before); prev != utf8.RuneError && !unicode.IsSpace(prev) {
		text = " " + text
	}
	return m, insertReplyCmd(m.engine.Document(), pos, text)
}

// =============================================================================
// AUTOSAVE
// =============================================================================

// handleAutosaveTick writes a snapshot if this tick is still the newest
// and the text actually changed.
func (m *Model) handleAutosaveTick(msg autosaveTickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.autosaveSeq {
		return m, nil // superseded by a later edit
	}
	if !m.autosaveEnabled() {
		return m, nil
	}

	text := m.editor.Value()
	if text == m.lastSavedText || strings.TrimSpace(text) == "" {
		return m, nil
	}

	m.lastSavedText = text
	return m, saveDraftCmd(m.drafts, text)
}

// handleDraftSaved logs the outcome; a failure re-arms the save for the
// next tick.
func (m *Model) handleDraftSaved(msg draftSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.lastSavedText = ""
		m.log.Warn("draft autosave failed", zap.Error(msg.err))
		return m, m.setStatusNote("Draft save failed")
	}
	m.log.Debug("draft saved", zap.String("snapshot_id", msg.id))
	return m, nil
}

// =============================================================================
// SMALL HELPERS
// =============================================================================

// exporting reports whether an export run is in flight.
func (m *Model) exporting() bool {
	return m.exportState == export.StateRequested.String() ||
		m.exportState == export.StateCapturing.String()
}

// autosaveEnabled reports whether draft snapshots should be written.
func (m *Model) autosaveEnabled() bool {
	return m.drafts != nil && m.cfg.Document.Autosave
}

// lastTurn returns the newest turn, if any.
func lastTurn(turns []ledger.TurnView) (ledger.TurnView, bool) {
	if len(turns) == 0 {
		return ledger.TurnView{}, false
	}
	return turns[len(turns)-1], true
}

// lastAssistantReply returns the newest resolved assistant text turn that
// is not an error notice. Provisional placeholders, pickers, and system
// advisories are never insertable.
func lastAssistantReply(turns []ledger.TurnView) (ledger.TurnView, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		if t.Role != ledger.RoleAssistant || t.Provisional || t.Kind != ledger.KindText {
			continue
		}
		if isErrorTurn(t) {
			continue
		}
		return t, true
	}
	return ledger.TurnView{}, false
}
