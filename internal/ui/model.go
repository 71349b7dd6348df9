// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea application model for storyweaver.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/jeranaias/storyweaver-tui/internal/config"
	"github.com/jeranaias/storyweaver-tui/internal/drafts"
	"github.com/jeranaias/storyweaver-tui/internal/engine"
	"github.com/jeranaias/storyweaver-tui/internal/export"
	"github.com/jeranaias/storyweaver-tui/internal/ledger"
	"github.com/jeranaias/storyweaver-tui/internal/ui/components"
	"github.com/jeranaias/storyweaver-tui/internal/ui/styles"
	"github.com/jeranaias/storyweaver-tui/internal/util"
)

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Focus identifies which pane receives keystrokes.
type Focus int

const (
	FocusEditor Focus = iota // Manuscript editor pane
	FocusChat                // Chat input
)

// Overlay identifiers for the list overlays.
const (
	overlayActions   = "actions"
	overlayLanguages = "languages"
)

// Config carries the wired application into the UI model.
type Config struct {
	Engine   *engine.Engine
	Exporter *export.Pipeline
	Drafts   *drafts.Store // nil disables autosave
	App      *config.Config
	Logger   *zap.Logger

	// InitialDocument seeds the editor (restored draft or empty).
	InitialDocument string
}

// Model is the main Bubble Tea model for the writing interface.
type Model struct {
	// Wiring
	engine   *engine.Engine
	exporter *export.Pipeline
	drafts   *drafts.Store
	cfg      *config.Config
	log      *zap.Logger

	// Theme and keys
	theme *styles.Theme
	keys  KeyMap

	// Dimensions
	width  int
	height int
	ready  bool

	// Focus
	focus Focus

	// Widgets
	editor     textarea.Model
	transcript viewport.Model
	chatInput  textinput.Model
	spin       spinner.Model

	// Components
	header          *components.Header
	statusBar       *components.StatusBar
	actionsOverlay  *components.ListOverlay
	languageOverlay *components.ListOverlay

	// Conversation state
	turns        []ledger.TurnView
	lastPickerID string
	busy         bool

	// Markdown rendering for resolved assistant turns
	mdRenderer      *glamour.TermRenderer
	transcriptWidth int

	// Export and transient status
	exportState string
	statusNote  string
	statusSeq   int

	// Selection captured when translation phase one ran; phase two sends it
	// together with the picked language.
	pendingSelection engine.SelectionSnapshot

	// Autosave
	autosaveSeq   int
	lastSavedText string
}

// New creates the application model from wired dependencies.
func New(cfg Config) *Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	theme := styles.NewTheme(styles.ParseMode(cfg.App.UI.Theme))

	editor := textarea.New()
	editor.Placeholder = "Start writing your story..."
	editor.Prompt = ""
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	if cfg.InitialDocument != "" {
		editor.SetValue(cfg.InitialDocument)
	}
	editor.Focus()

	chatInput := textinput.New()
	chatInput.Prompt = "> "
	chatInput.Placeholder = "Ask Muse anything..."
	chatInput.CharLimit = 4096
	chatInput.PromptStyle = theme.InputPrompt
	chatInput.PlaceholderStyle = theme.InputPlaceholder

	spin := spinner.New()
	spin.Spinner = styles.LineSpinner.Bubbles()
	spin.Style = theme.Spinner

	actionsOverlay := components.NewListOverlay(overlayActions, "Story Actions", theme)
	actionsOverlay.SetItems(actionOverlayItems())

	languageOverlay := components.NewListOverlay(overlayLanguages, "Translate Into", theme)
	languageOverlay.SetItems(languageOverlayItems())

	header := components.NewHeader(theme)
	header.SetAssistant(ledger.RoleAssistant.DisplayName())
	header.SetThemeName(theme.Mode.String())

	statusBar := components.NewStatusBar(theme)

	m := &Model{
		engine:          cfg.Engine,
		exporter:        cfg.Exporter,
		drafts:          cfg.Drafts,
		cfg:             cfg.App,
		log:             logger,
		theme:           theme,
		keys:            DefaultKeyMap(),
		focus:           FocusEditor,
		editor:          editor,
		transcript:      viewport.New(0, 0),
		chatInput:       chatInput,
		spin:            spin,
		header:          header,
		statusBar:       statusBar,
		actionsOverlay:  actionsOverlay,
		languageOverlay: languageOverlay,
		exportState:     export.StateIdle.String(),
		lastSavedText:   cfg.InitialDocument,
	}

	m.turns = cfg.Engine.Ledger().List()
	m.rebuildRenderer()

	return m
}

// Init starts the cursor blink and the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spin.Tick)
}

// =============================================================================
// LAYOUT
// =============================================================================

// setSize recomputes the layout for new terminal dimensions.
func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.actionsOverlay.SetSize(width, height)
	m.languageOverlay.SetSize(width, height)

	editorW, chatW, editorH, chatH := m.paneSizes()

	// Pane border eats 2 columns and 2 rows; the title line eats 1 row.
	m.editor.SetWidth(editorW - 4)
	m.editor.SetHeight(editorH - 3)

	// Chat pane stacks title, transcript, and the bordered input line.
	m.transcriptWidth = chatW - 4
	m.transcript.Width = m.transcriptWidth
	m.transcript.Height = chatH - 5
	if m.transcript.Height < 1 {
		m.transcript.Height = 1
	}
	m.chatInput.Width = chatW - 8

	m.rebuildRenderer()
	m.renderTranscript()
}

// paneSizes returns the outer dimensions of the editor and chat panes.
func (m *Model) paneSizes() (editorW, chatW, editorH, chatH int) {
	headerH := 1
	statusH := 1
	if m.width >= 100 {
		statusH = 2
	}
	bodyH := m.height - headerH - statusH
	if bodyH < 6 {
		bodyH = 6
	}

	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		// Stacked panes: the manuscript gets the larger share.
		editorW = m.width
		chatW = m.width
		editorH = bodyH * 3 / 5
		chatH = bodyH - editorH
		return editorW, chatW, editorH, chatH
	}

	editorW = m.width / 2
	chatW = m.width - editorW
	editorH = bodyH
	chatH = bodyH
	return editorW, chatW, editorH, chatH
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// rebuildRenderer recreates the markdown renderer for the current theme
// and transcript width.
func (m *Model) rebuildRenderer() {
	style := "dark"
	if m.theme.Mode == styles.ModeLight {
		style = "light"
	}

	wrap := m.transcriptWidth - 8
	if wrap < 20 {
		wrap = 60
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.log.Warn("markdown renderer unavailable, falling back to plain text", zap.Error(err))
		m.mdRenderer = nil
		return
	}
	m.mdRenderer = renderer
}

// renderTranscript rebuilds the viewport content from the current turns
// and keeps the view pinned to the newest turn.
func (m *Model) renderTranscript() {
	width := m.transcriptWidth
	if width < 20 {
		width = 20
	}

	blocks := make([]string, 0, len(m.turns))
	for _, turn := range m.turns {
		bubble := components.NewTurnBubble(turn, m.theme)
		bubble.SetWidth(width)
		bubble.Rendered = m.renderMarkdown(turn)
		bubble.IsError = isErrorTurn(turn)
		blocks = append(blocks, bubble.View())
	}

	m.transcript.SetContent(strings.Join(blocks, "\n\n"))
	m.transcript.GotoBottom()
}

// renderMarkdown renders a resolved assistant text turn through glamour.
// Provisional, system, and error turns stay plain.
func (m *Model) renderMarkdown(turn ledger.TurnView) string {
	if m.mdRenderer == nil {
		return ""
	}
	if turn.Role != ledger.RoleAssistant || turn.Provisional {
		return ""
	}
	if turn.Kind != ledger.KindText || isErrorTurn(turn) {
		return ""
	}

	rendered, err := m.mdRenderer.Render(turn.Content)
	if err != nil {
		return ""
	}
	return strings.Trim(rendered, "\n")
}

// isErrorTurn reports whether a turn carries a converse failure notice.
func isErrorTurn(turn ledger.TurnView) bool {
	return strings.HasPrefix(turn.Content, engine.ErrorPrefix)
}

// =============================================================================
// SELECTION
// =============================================================================

// selectionSnapshot captures the paragraph under the editor cursor: the
// contiguous non-blank lines around the cursor row. A cursor resting on a
// blank line yields a blank snapshot, which the engine answers with an
// advisory turn.
func (m *Model) selectionSnapshot() engine.SelectionSnapshot {
	lines := strings.Split(m.editor.Value(), "\n")
	row := m.editor.Line()
	if row < 0 || row >= len(lines) {
		return engine.SelectionSnapshot{}
	}
	if strings.TrimSpace(lines[row]) == "" {
		return engine.SelectionSnapshot{}
	}

	start := row
	for start > 0 && strings.TrimSpace(lines[start-1]) != "" {
		start--
	}
	end := row
	for end < len(lines)-1 && strings.TrimSpace(lines[end+1]) != "" {
		end++
	}

	return engine.SelectionSnapshot{
		Text: strings.Join(lines[start:end+1], "\n"),
	}
}

// caretOffset returns the rune offset of the end of the cursor's logical
// line. The textarea only exposes the cursor row reliably, so document
// inserts land at line end rather than mid-word.
func (m *Model) caretOffset() int {
	lines := strings.Split(m.editor.Value(), "\n")
	row := m.editor.Line()
	if row < 0 {
		return 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}

	offset := 0
	for i := 0; i < row; i++ {
		offset += util.RuneLen(lines[i]) + 1 // +1 for the newline
	}
	return offset + util.RuneLen(lines[row])
}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// setStatusNote replaces the transient note and returns the expiry timer.
func (m *Model) setStatusNote(note string) tea.Cmd {
	m.statusNote = note
	m.statusSeq++
	return statusExpireCmd(m.statusSeq)
}
