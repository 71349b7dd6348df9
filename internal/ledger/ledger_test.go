// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger holds the ordered conversation transcript shared by the
// orchestration engine and the UI.
package ledger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jeranaias/storyweaver-tui/internal/bus"
)

// =============================================================================
// APPEND TESTS
// =============================================================================

func TestLedger_AppendPreservesInsertionOrder(t *testing.T) {
	l := New(nil)

	l.Append(RoleUser, KindText, "first")
	l.Append(RoleAssistant, KindText, "second")
	l.Append(RoleSystem, KindText, "third")

	turns := l.List()
	if len(turns) != 3 {
		t.Fatalf("List() returned %d turns, want 3", len(turns))
	}

	wantContent := []string{"first", "second", "third"}
	wantRoles := []Role{RoleUser, RoleAssistant, RoleSystem}
	for i, turn := range turns {
		if turn.Content != wantContent[i] {
			t.Errorf("turn[%d].Content = %q, want %q", i, turn.Content, wantContent[i])
		}
		if turn.Role != wantRoles[i] {
			t.Errorf("turn[%d].Role = %q, want %q", i, turn.Role, wantRoles[i])
		}
		if turn.Provisional {
			t.Errorf("turn[%d] should not be provisional", i)
		}
	}
}

func TestLedger_UniqueIDs(t *testing.T) {
	l := New(nil)

	for i := 0; i < 100; i++ {
		l.Append(RoleUser, KindText, "x")
	}
	l.AppendProvisional(RoleAssistant, "Thinking…")

	seen := make(map[string]bool)
	for _, turn := range l.List() {
		if seen[turn.ID] {
			t.Fatalf("duplicate turn id %q", turn.ID)
		}
		seen[turn.ID] = true
	}
}

func TestLedger_ListReturnsSnapshots(t *testing.T) {
	l := New(nil)
	l.Append(RoleUser, KindText, "original")

	turns := l.List()
	turns[0].Content = "mutated"

	if got := l.List()[0].Content; got != "original" {
		t.Errorf("ledger content changed through a snapshot: got %q", got)
	}
}

// =============================================================================
// PROVISIONAL LIFECYCLE TESTS
// =============================================================================

func TestLedger_ProvisionalResolve(t *testing.T) {
	l := New(nil)

	id := l.AppendProvisional(RoleAssistant, "Thinking…")

	turns := l.List()
	if len(turns) != 1 || !turns[0].Provisional || turns[0].Content != "Thinking…" {
		t.Fatalf("provisional turn not appended correctly: %+v", turns)
	}

	l.Resolve(id, "Here are three titles.")

	turns = l.List()
	if turns[0].Provisional {
		t.Error("turn still provisional after Resolve")
	}
	if turns[0].Content != "Here are three titles." {
		t.Errorf("resolved content = %q", turns[0].Content)
	}
	if turns[0].ID != id {
		t.Error("turn identity changed across Resolve")
	}
}

func TestLedger_ResolveTwiceKeepsFirstResolution(t *testing.T) {
	l := New(nil)

	id := l.AppendProvisional(RoleAssistant, "Thinking…")
	l.Resolve(id, "final")
	l.Resolve(id, "overwritten")

	if got := l.List()[0].Content; got != "final" {
		t.Errorf("second Resolve mutated a resolved turn: got %q", got)
	}
}

func TestLedger_DiscardRemovesProvisional(t *testing.T) {
	l := New(nil)

	l.Append(RoleUser, KindText, "keep me")
	id := l.AppendProvisional(RoleAssistant, "Continuing the story…")
	l.Discard(id)

	turns := l.List()
	if len(turns) != 1 {
		t.Fatalf("List() has %d turns after Discard, want 1", len(turns))
	}
	if turns[0].Content != "keep me" {
		t.Errorf("wrong turn removed: remaining content %q", turns[0].Content)
	}
}

func TestLedger_DiscardIgnoresResolvedTurns(t *testing.T) {
	l := New(nil)

	view := l.Append(RoleAssistant, KindText, "resolved content")
	l.Discard(view.ID)

	if l.Len() != 1 {
		t.Error("Discard removed a resolved turn")
	}
}

func TestLedger_UnknownIDsAreNoOps(t *testing.T) {
	l := New(nil)
	l.Append(RoleUser, KindText, "only")

	// Must not panic or mutate anything.
	l.Resolve("turn_doesnotexist", "x")
	l.Discard("turn_doesnotexist")

	turns := l.List()
	if len(turns) != 1 || turns[0].Content != "only" {
		t.Errorf("no-op calls mutated the ledger: %+v", turns)
	}
}

// =============================================================================
// CLEAR TESTS
// =============================================================================

func TestLedger_Clear(t *testing.T) {
	l := New(nil)
	l.Append(RoleUser, KindText, "a")
	l.AppendProvisional(RoleAssistant, "Thinking…")

	l.Clear()

	if l.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", l.Len())
	}
}

// =============================================================================
// EVENT TESTS
// =============================================================================

func TestLedger_PublishesTranscriptEvents(t *testing.T) {
	b := bus.New()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := b.Subscribe(ctx, bus.TopicTurns)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// Mutations block until the subscriber acks each event, so they run
	// alongside the receive loop below.
	l := New(b)
	go func() {
		id := l.AppendProvisional(RoleAssistant, "Thinking…")
		l.Resolve(id, "done")
	}()

	// Two mutations -> two events; the second carries the resolved state.
	var last TurnsEvent
	for i := 0; i < 2; i++ {
		select {
		case msg := <-msgs:
			if err := json.Unmarshal(msg.Payload, &last); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			msg.Ack()
		case <-time.After(2 * time.Second):
			t.Fatalf("Timed out waiting for event %d", i)
		}
	}

	if len(last.Turns) != 1 {
		t.Fatalf("final event has %d turns, want 1", len(last.Turns))
	}
	if last.Turns[0].Provisional || last.Turns[0].Content != "done" {
		t.Errorf("final event turn = %+v, want resolved %q", last.Turns[0], "done")
	}
}

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Muse"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}

	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}
