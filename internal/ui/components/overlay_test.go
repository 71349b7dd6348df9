// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for storyweaver.
package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/storyweaver-tui/internal/ui/styles"
)

// =============================================================================
// LIST OVERLAY TESTS
// =============================================================================

func testOverlay() *ListOverlay {
	o := NewListOverlay("actions", "Actions", styles.NewTheme(styles.ModeDark))
	o.SetItems([]OverlayItem{
		{ID: "continue", Title: "Continue story", Desc: "Stream a continuation"},
		{ID: "titles", Title: "Suggest titles", Desc: "Five title ideas"},
		{ID: "export", Title: "Export PDF", Desc: "Save story.pdf"},
	})
	o.SetSize(100, 40)
	return o
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestOverlayHiddenByDefault(t *testing.T) {
	o := testOverlay()

	if o.IsVisible() {
		t.Error("overlay should start hidden")
	}
	if o.View() != "" {
		t.Error("hidden overlay should render nothing")
	}
}

func TestOverlayShowHide(t *testing.T) {
	o := testOverlay()

	o.Show()
	if !o.IsVisible() {
		t.Error("Show should make the overlay visible")
	}
	if o.View() == "" {
		t.Error("visible overlay should render content")
	}

	o.Hide()
	if o.IsVisible() {
		t.Error("Hide should hide the overlay")
	}
}

func TestOverlayIgnoresInputWhileHidden(t *testing.T) {
	o := testOverlay()

	_, cmd := o.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("hidden overlay should not emit commands")
	}
}

func TestOverlayNavigationWraps(t *testing.T) {
	o := testOverlay()
	o.Show()

	// Down through all items wraps back to the first.
	for i := 0; i < 3; i++ {
		o, _ = o.Update(keyMsg("down"))
	}
	item, ok := o.Selected()
	if !ok {
		t.Fatal("Selected should return an item")
	}
	if item.ID != "continue" {
		t.Errorf("selection should wrap to first item, got %q", item.ID)
	}

	// Up from the first wraps to the last.
	o, _ = o.Update(keyMsg("up"))
	item, _ = o.Selected()
	if item.ID != "export" {
		t.Errorf("selection should wrap to last item, got %q", item.ID)
	}
}

func TestOverlayVimKeys(t *testing.T) {
	o := testOverlay()
	o.Show()

	o, _ = o.Update(keyMsg("j"))
	item, _ := o.Selected()
	if item.ID != "titles" {
		t.Errorf("j should move down, got %q", item.ID)
	}

	o, _ = o.Update(keyMsg("k"))
	item, _ = o.Selected()
	if item.ID != "continue" {
		t.Errorf("k should move up, got %q", item.ID)
	}
}

func TestOverlayEnterChoosesItem(t *testing.T) {
	o := testOverlay()
	o.Show()

	o, _ = o.Update(keyMsg("down"))
	o, cmd := o.Update(keyMsg("enter"))

	if o.IsVisible() {
		t.Error("enter should close the overlay")
	}
	if cmd == nil {
		t.Fatal("enter should emit a command")
	}

	msg, ok := cmd().(ItemChosenMsg)
	if !ok {
		t.Fatalf("expected ItemChosenMsg, got %T", cmd())
	}
	if msg.OverlayID != "actions" {
		t.Errorf("OverlayID = %q, want actions", msg.OverlayID)
	}
	if msg.ItemID != "titles" {
		t.Errorf("ItemID = %q, want titles", msg.ItemID)
	}
}

func TestOverlayEscDismisses(t *testing.T) {
	o := testOverlay()
	o.Show()

	o, cmd := o.Update(keyMsg("esc"))

	if o.IsVisible() {
		t.Error("esc should close the overlay")
	}
	if cmd == nil {
		t.Fatal("esc should emit a dismissal")
	}
	msg, ok := cmd().(OverlayDismissedMsg)
	if !ok {
		t.Fatalf("expected OverlayDismissedMsg, got %T", cmd())
	}
	if msg.OverlayID != "actions" {
		t.Errorf("OverlayID = %q, want actions", msg.OverlayID)
	}
}

func TestOverlayShowResetsSelection(t *testing.T) {
	o := testOverlay()
	o.Show()
	o, _ = o.Update(keyMsg("down"))
	o.Hide()

	o.Show()
	item, _ := o.Selected()
	if item.ID != "continue" {
		t.Errorf("Show should reset selection to first item, got %q", item.ID)
	}
}

func TestOverlayViewListsItems(t *testing.T) {
	o := testOverlay()
	o.Show()

	view := o.View()
	for _, want := range []string{"Actions", "Continue story", "Suggest titles", "Export PDF"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestOverlayEmptyList(t *testing.T) {
	o := NewListOverlay("empty", "Empty", styles.NewTheme(styles.ModeDark))
	o.Show()

	if _, ok := o.Selected(); ok {
		t.Error("Selected should report false for an empty list")
	}

	_, cmd := o.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
	if !strings.Contains(o.View(), "Nothing here") {
		t.Error("empty overlay should render its placeholder")
	}
}
