// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for storyweaver.
package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/storyweaver-tui/internal/ui/styles"
)

// =============================================================================
// LIST OVERLAY
// =============================================================================

// OverlayItem is a single selectable row in a ListOverlay.
type OverlayItem struct {
	ID    string // Stable identifier reported on selection
	Title string // Display name
	Desc  string // Short description shown after the name
}

// ItemChosenMsg is sent when an item is selected from an overlay.
type ItemChosenMsg struct {
	OverlayID string
	ItemID    string
}

// OverlayDismissedMsg is sent when an overlay is closed without a choice.
type OverlayDismissedMsg struct {
	OverlayID string
}

// ListOverlay is a centered modal list with keyboard navigation. The actions
// menu and the translation language picker are both instances of it.
type ListOverlay struct {
	id    string
	title string
	help  string

	items    []OverlayItem
	selected int

	// Dimensions of the surrounding screen, for centering
	width  int
	height int

	visible  bool
	maxItems int

	theme *styles.Theme
}

// NewListOverlay creates a new overlay with the given identity and title.
func NewListOverlay(id, title string, theme *styles.Theme) *ListOverlay {
	return &ListOverlay{
		id:       id,
		title:    title,
		help:     "Up/Down navigate | Enter select | Esc close",
		theme:    theme,
		maxItems: 10,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update handles keyboard input while the overlay is visible.
func (o *ListOverlay) Update(msg tea.Msg) (*ListOverlay, tea.Cmd) {
	if !o.visible {
		return o, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch keyMsg.String() {
	case "esc":
		o.Hide()
		return o, o.dismissed()

	case "enter":
		if o.selected >= 0 && o.selected < len(o.items) {
			item := o.items[o.selected]
			o.Hide()
			return o, o.chosen(item)
		}
		return o, nil

	case "up", "k":
		if len(o.items) == 0 {
			return o, nil
		}
		o.selected--
		if o.selected < 0 {
			o.selected = len(o.items) - 1
		}
		return o, nil

	case "down", "j", "tab":
		if len(o.items) == 0 {
			return o, nil
		}
		o.selected++
		if o.selected >= len(o.items) {
			o.selected = 0
		}
		return o, nil
	}

	return o, nil
}

// View renders the overlay centered in the available space.
func (o *ListOverlay) View() string {
	if !o.visible {
		return ""
	}

	p := o.theme.Palette

	boxWidth := 56
	if o.width > 0 && o.width < boxWidth+10 {
		boxWidth = o.width - 10
	}
	if boxWidth < 36 {
		boxWidth = 36
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(p.Purple).
		Bold(true).
		Padding(0, 1)
	header := headerStyle.Render(o.title)

	sepStyle := lipgloss.NewStyle().
		Foreground(p.Overlay)
	separator := sepStyle.Render(strings.Repeat("-", boxWidth-4))

	var listItems []string
	for i, item := range o.items {
		if i >= o.maxItems {
			remaining := len(o.items) - o.maxItems
			if remaining > 0 {
				moreStyle := lipgloss.NewStyle().
					Foreground(p.TextMuted).
					Italic(true)
				listItems = append(listItems, moreStyle.Render("  ... "+toStr(remaining)+" more"))
			}
			break
		}
		listItems = append(listItems, o.renderItem(item, i == o.selected, boxWidth-6))
	}

	list := strings.Join(listItems, "\n")
	if len(o.items) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Italic(true).
			Padding(1, 0)
		list = emptyStyle.Render("Nothing here")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Padding(1, 0, 0, 0)
	help := helpStyle.Render(o.help)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		separator,
		list,
		help,
	)

	boxStyle := lipgloss.NewStyle().
		Background(p.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Purple).
		Padding(1, 2).
		Width(boxWidth)

	box := boxStyle.Render(content)

	if o.width > 0 && o.height > 0 {
		return lipgloss.Place(
			o.width, o.height,
			lipgloss.Center, lipgloss.Center,
			box,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return box
}

// =============================================================================
// INTERNAL METHODS
// =============================================================================

// renderItem renders a single row with a selection indicator.
func (o *ListOverlay) renderItem(item OverlayItem, selected bool, width int) string {
	p := o.theme.Palette

	indicator := "  "
	if selected {
		indicator = "> "
	}

	nameStyle := lipgloss.NewStyle().
		Foreground(p.Cyan).
		Bold(true)
	name := nameStyle.Render(item.Title)

	descStyle := lipgloss.NewStyle().
		Foreground(p.TextMuted)

	usedWidth := lipgloss.Width(indicator) + lipgloss.Width(name) + 2
	descWidth := width - usedWidth
	if descWidth < 8 {
		descWidth = 8
	}
	desc := ""
	if item.Desc != "" {
		desc = "  " + descStyle.Render(truncate(item.Desc, descWidth))
	}

	row := indicator + name + desc

	if selected {
		selectedStyle := lipgloss.NewStyle().
			Background(p.Purple).
			Foreground(p.TextInverse).
			Width(width).
			Padding(0, 1)
		return selectedStyle.Render(row)
	}

	return row
}

// chosen returns a command that reports the selected item.
func (o *ListOverlay) chosen(item OverlayItem) tea.Cmd {
	id := o.id
	return func() tea.Msg {
		return ItemChosenMsg{OverlayID: id, ItemID: item.ID}
	}
}

// dismissed returns a command that reports the overlay was closed.
func (o *ListOverlay) dismissed() tea.Cmd {
	id := o.id
	return func() tea.Msg {
		return OverlayDismissedMsg{OverlayID: id}
	}
}

// =============================================================================
// PUBLIC METHODS
// =============================================================================

// SetItems replaces the overlay's rows and resets the selection.
func (o *ListOverlay) SetItems(items []OverlayItem) {
	o.items = items
	o.selected = 0
}

// SetHelp replaces the help line shown under the list.
func (o *ListOverlay) SetHelp(help string) {
	o.help = help
}

// Show makes the overlay visible with the selection reset.
func (o *ListOverlay) Show() {
	o.visible = true
	o.selected = 0
}

// Hide hides the overlay.
func (o *ListOverlay) Hide() {
	o.visible = false
}

// IsVisible returns true while the overlay is shown.
func (o *ListOverlay) IsVisible() bool {
	return o.visible
}

// SetSize sets the screen dimensions used for centering.
func (o *ListOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// Selected returns the currently highlighted item and true, or false when
// the list is empty.
func (o *ListOverlay) Selected() (OverlayItem, bool) {
	if o.selected < 0 || o.selected >= len(o.items) {
		return OverlayItem{}, false
	}
	return o.items[o.selected], true
}

// ID returns the overlay's stable identifier.
func (o *ListOverlay) ID() string {
	return o.id
}
