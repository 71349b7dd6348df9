// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger holds the ordered conversation transcript shared by the
// orchestration engine and the UI.
package ledger

import (
	"sync"
	"time"

	"github.com/jeranaias/storyweaver-tui/internal/bus"
)

// =============================================================================
// EVENTS
// =============================================================================

// TurnsEvent is published on bus.TopicTurns after every ledger mutation.
// It carries the complete transcript so subscribers never need to replay
// history.
type TurnsEvent struct {
	Turns []TurnView `json:"turns"`
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger is an append/update log of conversation turns. Ordering is
// insertion order and is significant: List() is the rendered transcript.
// The ledger holds no backend state and is never persisted.
//
// All methods are safe for concurrent use; orchestrations run on their own
// goroutines while the UI reads from its event subscription.
type Ledger struct {
	mu    sync.Mutex
	turns []*turn
	bus   *bus.Bus
}

// New creates an empty ledger publishing on b. A nil bus is allowed for
// callers that only want the log (tests of other packages).
func New(b *bus.Bus) *Ledger {
	return &Ledger{bus: b}
}

// Append adds a resolved turn to the end of the transcript and returns its
// snapshot.
func (l *Ledger) Append(role Role, kind Kind, content string) TurnView {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := &turn{
		id:        generateTurnID(),
		role:      role,
		kind:      kind,
		state:     stateResolved,
		content:   content,
		createdAt: time.Now(),
	}
	l.turns = append(l.turns, t)
	l.publishLocked()
	return t.view()
}

// AppendProvisional adds a placeholder turn and returns its id. The id is
// private to the orchestration that created it until Resolve or Discard is
// called with it.
func (l *Ledger) AppendProvisional(role Role, placeholder string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := &turn{
		id:        generateTurnID(),
		role:      role,
		kind:      KindText,
		state:     stateProvisional,
		content:   placeholder,
		createdAt: time.Now(),
	}
	l.turns = append(l.turns, t)
	l.publishLocked()
	return t.id
}

// Resolve replaces a provisional turn's placeholder with its final content.
// Unknown ids and already-resolved turns are silent no-ops so overlapping
// or torn-down flows stay harmless.
func (l *Ledger) Resolve(id, final string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range l.turns {
		if t.id == id {
			if t.resolveOnce(final) {
				l.publishLocked()
			}
			return
		}
	}
}

// Discard removes a provisional turn from the transcript. Unknown ids are
// silent no-ops. Resolved turns are never removed.
func (l *Ledger) Discard(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, t := range l.turns {
		if t.id == id {
			if t.state != stateProvisional {
				return
			}
			l.turns = append(l.turns[:i], l.turns[i+1:]...)
			l.publishLocked()
			return
		}
	}
}

// List returns the transcript as value snapshots in insertion order.
func (l *Ledger) List() []TurnView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Len returns the number of turns in the transcript.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}

// Clear empties the transcript. Used when the user starts a fresh
// conversation; the gateway session is reset by the same action.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = nil
	l.publishLocked()
}

// snapshotLocked copies the transcript. Caller must hold the lock.
func (l *Ledger) snapshotLocked() []TurnView {
	out := make([]TurnView, len(l.turns))
	for i, t := range l.turns {
		out[i] = t.view()
	}
	return out
}

// publishLocked emits the transcript event. Publishing while holding the
// lock keeps event order identical to mutation order; the bus blocks until
// subscribers ack, so no later mutation can overtake this event.
func (l *Ledger) publishLocked() {
	if l.bus == nil {
		return
	}
	_ = l.bus.Publish(bus.TopicTurns, TurnsEvent{Turns: l.snapshotLocked()})
}
