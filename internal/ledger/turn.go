// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger holds the ordered conversation transcript shared by the
// orchestration engine and the UI.
package ledger

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// =============================================================================
// ROLES
// =============================================================================

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Muse"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN KINDS
// =============================================================================

// Kind selects how a turn's content is rendered. Almost every turn is plain
// text; KindLanguagePicker is the structured payload the translate flow uses
// to ask the presentation layer for a language choice.
type Kind string

const (
	KindText           Kind = "text"
	KindLanguagePicker Kind = "language_picker"
)

// =============================================================================
// TURN
// =============================================================================

// turnState is the provisional/resolved variant tag. A turn is born either
// resolved (plain append) or provisional (placeholder), and moves to
// resolved at most once. Keeping the tag and the content together in one
// unexported pair means a resolved-but-still-thinking turn cannot be
// constructed from outside the package.
type turnState int

const (
	stateResolved turnState = iota
	stateProvisional
)

// turn is the ledger's internal record. Only the Ledger mutates it.
type turn struct {
	id        string
	role      Role
	kind      Kind
	state     turnState
	content   string
	createdAt time.Time
}

// resolveOnce transitions provisional -> resolved with the given content.
// Returns false if the turn was already resolved.
func (t *turn) resolveOnce(final string) bool {
	if t.state != stateProvisional {
		return false
	}
	t.state = stateResolved
	t.content = final
	return true
}

// view produces the immutable snapshot handed to consumers.
func (t *turn) view() TurnView {
	return TurnView{
		ID:          t.id,
		Role:        t.role,
		Kind:        t.kind,
		Content:     t.content,
		Provisional: t.state == stateProvisional,
		CreatedAt:   t.createdAt,
	}
}

// TurnView is a value snapshot of one transcript entry. Views are what
// List() returns and what travels on the event bus; holding one never
// grants access to ledger internals.
type TurnView struct {
	ID          string    `json:"id"`
	Role        Role      `json:"role"`
	Kind        Kind      `json:"kind"`
	Content     string    `json:"content"`
	Provisional bool      `json:"provisional"`
	CreatedAt   time.Time `json:"created_at"`
}

// =============================================================================
// ID GENERATION
// =============================================================================

// generateTurnID creates a unique turn identifier of the form turn_a1b2c3d4.
func generateTurnID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Extremely unlikely; fall back to a timestamp-based ID.
		return fmt.Sprintf("turn_%d", time.Now().UnixNano())
	}
	return "turn_" + hex.EncodeToString(b)
}
