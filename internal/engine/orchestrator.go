// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine drives AI orchestrations for the writing assistant: discrete
// request/response turns, the streaming continuation of the manuscript, and
// the shared state both mutate. It owns the admission gate that keeps at most
// one orchestration in flight.
package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/storyweaver-tui/internal/ledger"
)

// Placeholder texts for provisional assistant turns.
const (
	thinkingPlaceholder   = "Thinking…"
	continuingPlaceholder = "Continuing the story…"
)

// Advisory texts appended as system turns when an action's precondition
// fails. No orchestration starts in those cases.
const (
	adviseSelectImprove   = "Select the passage you would like improved, then try again."
	adviseSelectTranslate = "Select the passage you would like translated, then try again."
)

// languagePickerText is the content of the system turn that asks the
// presentation layer to offer a language picker.
const languagePickerText = "Which language should the selection be translated into?"

// Hidden instruction prompts. They reach the backend but never the visible
// transcript.
const (
	promptTitles = "Suggest five evocative titles for the story below. " +
		"Reply with only the titles, one per line.\n\nStory:\n%s"

	promptCharacters = "Suggest three characters who could enter the story below. " +
		"For each, give a name, a one-line description, and what they might want.\n\nStory:\n%s"

	promptPlotTwist = "Propose one unexpected but plausible plot twist for the story below. " +
		"Describe it in a short paragraph without spoiling how it must resolve.\n\nStory:\n%s"

	promptImprove = "Improve the following passage: tighten the prose, strengthen the verbs, " +
		"and keep the original meaning and point of view. Reply with only the improved passage.\n\nPassage:\n%s"

	promptTranslate = "Translate the following passage into %s. " +
		"Reply with only the translation.\n\nPassage:\n%s"
)

// Conversationalist is the backend surface for request/response turns. The
// implementation accumulates conversational context behind this call.
type Conversationalist interface {
	Converse(ctx context.Context, prompt string) (string, error)
}

// Continuer is the backend surface for streaming continuation.
type Continuer interface {
	StreamContinue(ctx context.Context, documentText string) (<-chan string, <-chan error)
}

// resettable is implemented by sessions that can drop accumulated context.
type resettable interface {
	Reset()
}

// =============================================================================
// ENGINE
// =============================================================================

// Config collects the collaborators an Engine needs.
type Config struct {
	Session   Conversationalist
	Continuer Continuer
	Ledger    *ledger.Ledger
	Document  *DocumentContent
	Responder *ResponderState
	Logger    *zap.Logger
}

// Engine coordinates orchestrations against the shared ledger, document, and
// responder gate. Entry points are synchronous; callers that need them off
// the UI thread run them in their own goroutine.
type Engine struct {
	session   Conversationalist
	continuer Continuer
	ledger    *ledger.Ledger
	doc       *DocumentContent
	responder *ResponderState
	log       *zap.Logger
}

// New creates an Engine. A nil Logger is replaced with a no-op logger.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		session:   cfg.Session,
		continuer: cfg.Continuer,
		ledger:    cfg.Ledger,
		doc:       cfg.Document,
		responder: cfg.Responder,
		log:       logger,
	}
}

// Document returns the shared manuscript buffer.
func (e *Engine) Document() *DocumentContent {
	return e.doc
}

// Ledger returns the conversation transcript.
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}

// Responder returns the admission gate.
func (e *Engine) Responder() *ResponderState {
	return e.responder
}

// =============================================================================
// TURN CONTRACT
// =============================================================================

// runTurn drives one request/response orchestration end to end:
//
//  1. take the admission gate, or drop the request silently
//  2. echo the visible prompt as a user turn when non-empty
//  3. append a provisional assistant turn and hold its id
//  4. converse with the effective prompt (visible or hidden)
//  5. resolve the provisional turn to the answer, or
//  6. resolve it to error text prefixed with the fixed marker
//  7. release the gate on every exit path
//
// Returns false when the gate was held and nothing happened.
func (e *Engine) runTurn(ctx context.Context, action, visiblePrompt, effectivePrompt string) bool {
	if !e.responder.TryAcquire() {
		e.log.Debug("turn dropped, responder busy", zap.String("action", action))
		return false
	}
	defer e.responder.Release()

	if strings.TrimSpace(visiblePrompt) != "" {
		e.ledger.Append(ledger.RoleUser, ledger.KindText, visiblePrompt)
	}

	id := e.ledger.AppendProvisional(ledger.RoleAssistant, thinkingPlaceholder)

	text, err := e.session.Converse(ctx, effectivePrompt)
	if err != nil {
		e.log.Warn("turn failed",
			zap.String("action", action),
			zap.Error(err))
		e.ledger.Resolve(id, errorTurnText(err))
		return true
	}

	e.log.Info("turn resolved",
		zap.String("action", action),
		zap.Int("reply_chars", len(text)))
	e.ledger.Resolve(id, text)
	return true
}

// =============================================================================
// ACTION ENTRY POINTS
// =============================================================================

// Chat sends a free-form message. The prompt is echoed into the transcript
// and sent to the backend as-is.
func (e *Engine) Chat(ctx context.Context, prompt string) bool {
	if strings.TrimSpace(prompt) == "" {
		return false
	}
	return e.runTurn(ctx, "chat", prompt, prompt)
}

// SuggestTitles asks for title ideas based on the current manuscript. The
// instruction prompt stays hidden from the transcript.
func (e *Engine) SuggestTitles(ctx context.Context) bool {
	hidden := fmt.Sprintf(promptTitles, e.doc.Text())
	return e.runTurn(ctx, "suggest-titles", "", hidden)
}

// CharacterIdeas asks for character ideas based on the current manuscript.
func (e *Engine) CharacterIdeas(ctx context.Context) bool {
	hidden := fmt.Sprintf(promptCharacters, e.doc.Text())
	return e.runTurn(ctx, "character-ideas", "", hidden)
}

// PlotTwist asks for a plot twist based on the current manuscript.
func (e *Engine) PlotTwist(ctx context.Context) bool {
	hidden := fmt.Sprintf(promptPlotTwist, e.doc.Text())
	return e.runTurn(ctx, "plot-twist", "", hidden)
}

// ImproveSelection asks for an improved rendition of the selected passage.
// With a blank selection no orchestration starts; a system advisory turn is
// appended instead.
func (e *Engine) ImproveSelection(ctx context.Context, sel SelectionSnapshot) bool {
	if sel.IsBlank() {
		e.ledger.Append(ledger.RoleSystem, ledger.KindText, adviseSelectImprove)
		return false
	}
	hidden := fmt.Sprintf(promptImprove, sel.Text)
	return e.runTurn(ctx, "improve-selection", "", hidden)
}

// TranslateSelection starts the two-phase translate flow. With a valid
// selection it appends the system turn that tells the presentation layer to
// offer a language picker; the actual orchestration happens when the choice
// comes back through TranslateSelectionInto. No gate is taken here because
// no backend call is made.
func (e *Engine) TranslateSelection(sel SelectionSnapshot) bool {
	if sel.IsBlank() {
		e.ledger.Append(ledger.RoleSystem, ledger.KindText, adviseSelectTranslate)
		return false
	}
	e.ledger.Append(ledger.RoleSystem, ledger.KindLanguagePicker, languagePickerText)
	return true
}

// TranslateSelectionInto runs the second phase of the translate flow with
// the chosen language.
func (e *Engine) TranslateSelectionInto(ctx context.Context, sel SelectionSnapshot, language string) bool {
	if sel.IsBlank() {
		e.ledger.Append(ledger.RoleSystem, ledger.KindText, adviseSelectTranslate)
		return false
	}
	if strings.TrimSpace(language) == "" {
		return false
	}
	hidden := fmt.Sprintf(promptTranslate, language, sel.Text)
	return e.runTurn(ctx, "translate-selection", "", hidden)
}

// NewConversation clears the transcript and drops the backend session
// context. The manuscript is untouched. Safe to call while an orchestration
// is in flight: a later resolve against the cleared transcript is a silent
// no-op.
func (e *Engine) NewConversation() {
	if r, ok := e.session.(resettable); ok {
		r.Reset()
	}
	e.ledger.Clear()
	e.log.Info("conversation cleared")
}
