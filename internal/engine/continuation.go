// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jeranaias/storyweaver-tui/internal/ledger"
)

// =============================================================================
// STREAMING CONTINUATION
// =============================================================================

// ContinueStory streams a continuation of the manuscript into the document.
//
// The flow moves Idle -> Requesting -> Streaming -> Settled. Entry is gated:
// if any orchestration is in flight the request is dropped silently. While
// streaming, every increment is appended to the document, and therefore
// observable, before the next increment is taken from the backend. On
// success the provisional placeholder is discarded, since the streamed prose
// lives in the document itself. On failure the placeholder resolves to error
// text and whatever was already appended stays in the manuscript;
// continuation is best-effort and can simply be invoked again.
//
// Returns false when the gate was held and nothing happened.
func (e *Engine) ContinueStory(ctx context.Context) bool {
	if !e.responder.TryAcquire() {
		e.log.Debug("continuation dropped, responder busy")
		return false
	}
	defer e.responder.Release()

	id := e.ledger.AppendProvisional(ledger.RoleAssistant, continuingPlaceholder)

	docText := e.doc.Text()
	increments, errs := e.continuer.StreamContinue(ctx, docText)

	count := 0
	first := true
	for inc := range increments {
		if first {
			first = false
			if needsSeparator(docText, inc) {
				inc = " " + inc
			}
		}
		e.doc.Append(inc)
		count++
	}

	if err := <-errs; err != nil {
		e.log.Warn("continuation failed",
			zap.Int("increments", count),
			zap.Error(err))
		e.ledger.Resolve(id, errorTurnText(err))
		return true
	}

	e.log.Info("continuation settled", zap.Int("increments", count))
	e.ledger.Discard(id)
	return true
}

// needsSeparator decides whether a single space must be inserted between the
// existing manuscript and the first streamed increment. A separator is
// needed only when two word characters would otherwise fuse: punctuation or
// whitespace on either side of the boundary already separates.
func needsSeparator(doc, increment string) bool {
	if doc == "" || increment == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(doc)
	if unicode.IsSpace(last) {
		return false
	}
	firstRune, _ := utf8.DecodeRuneInString(increment)
	return unicode.IsLetter(firstRune) || unicode.IsDigit(firstRune)
}
