// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jeranaias/storyweaver-tui/internal/bus"
)

// =============================================================================
// DOCUMENT TESTS
// =============================================================================

func TestDocumentContent_SetAndText(t *testing.T) {
	d := NewDocumentContent(nil)

	if d.Text() != "" {
		t.Errorf("new document Text() = %q, want empty", d.Text())
	}

	d.Set("Once upon a time")
	if d.Text() != "Once upon a time" {
		t.Errorf("Text() = %q after Set", d.Text())
	}

	d.Set("")
	if d.Text() != "" {
		t.Errorf("Text() = %q after clearing Set", d.Text())
	}
}

func TestDocumentContent_Append(t *testing.T) {
	d := NewDocumentContent(nil)
	d.Set("Hello")

	d.Append(" world")
	if d.Text() != "Hello world" {
		t.Errorf("Text() = %q, want %q", d.Text(), "Hello world")
	}

	// Empty appends are no-ops so the stream path never publishes
	// contentless events.
	d.Append("")
	if d.Text() != "Hello world" {
		t.Errorf("Text() = %q after empty Append", d.Text())
	}
}

func TestDocumentContent_InsertAt(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		pos    int
		insert string
		want   string
	}{
		{"middle", "Helloworld", 5, " ", "Hello world"},
		{"at start", "world", 0, "Hello ", "Hello world"},
		{"at end", "Hello", 5, " world", "Hello world"},
		{"negative clamps to start", "world", -3, "Hello ", "Hello world"},
		{"beyond end clamps to end", "Hello", 99, " world", "Hello world"},
		{"rune offset not byte offset", "héllo", 2, "X", "héXllo"},
		{"empty insert no-op", "Hello", 2, "", "Hello"},
		{"into empty document", "", 0, "text", "text"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDocumentContent(nil)
			d.Set(tc.start)
			d.InsertAt(tc.pos, tc.insert)
			if got := d.Text(); got != tc.want {
				t.Errorf("InsertAt(%d, %q) on %q = %q, want %q",
					tc.pos, tc.insert, tc.start, got, tc.want)
			}
		})
	}
}

func TestDocumentContent_LenAndIsBlank(t *testing.T) {
	d := NewDocumentContent(nil)

	if !d.IsBlank() {
		t.Error("empty document should be blank")
	}

	d.Set("   \n\t")
	if !d.IsBlank() {
		t.Error("whitespace-only document should be blank")
	}

	d.Set("café")
	if d.IsBlank() {
		t.Error("document with text should not be blank")
	}
	if d.Len() != 4 {
		t.Errorf("Len() = %d for %q, want 4 runes", d.Len(), "café")
	}
}

// =============================================================================
// EVENT TESTS
// =============================================================================

func TestDocumentContent_PublishesEvents(t *testing.T) {
	b := bus.New()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := b.Subscribe(ctx, bus.TopicDocument)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// Mutations block until the subscriber acks each event, so they run
	// alongside the receive loop below.
	d := NewDocumentContent(b)
	go func() {
		d.Set("Hello")
		d.Append(" world")
	}()

	// Two mutations -> two events, in mutation order, each carrying the
	// full text and its origin.
	want := []DocumentEvent{
		{Text: "Hello", Origin: OriginUser},
		{Text: "Hello world", Origin: OriginStream},
	}

	for i, w := range want {
		select {
		case msg := <-msgs:
			var ev DocumentEvent
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			msg.Ack()
			if ev != w {
				t.Errorf("event %d = %+v, want %+v", i, ev, w)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("Timed out waiting for event %d", i)
		}
	}
}

// =============================================================================
// SELECTION TESTS
// =============================================================================

func TestSelectionSnapshot_IsBlank(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\n\t ", true},
		{"word", false},
		{"  word  ", false},
	}

	for _, tc := range tests {
		sel := SelectionSnapshot{Text: tc.text}
		if got := sel.IsBlank(); got != tc.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
