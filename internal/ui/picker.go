// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea application model for storyweaver.
//
// This file defines the translation language picker. The list is fixed;
// names come from the BCP 47 registry so the picker and the prompt sent to
// the model always agree on spelling.
package ui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/jeranaias/storyweaver-tui/internal/ui/components"
)

// =============================================================================
// LANGUAGE PICKER
// =============================================================================

// languageOption is one selectable translation target.
type languageOption struct {
	tag  language.Tag
	name string
}

// pickerLanguages returns the fixed translation targets in display order.
func pickerLanguages() []languageOption {
	tags := []language.Tag{
		language.French,
		language.Spanish,
		language.German,
		language.Italian,
		language.Portuguese,
		language.Japanese,
	}

	namer := display.English.Languages()
	options := make([]languageOption, 0, len(tags))
	for _, tag := range tags {
		options = append(options, languageOption{
			tag:  tag,
			name: namer.Name(tag),
		})
	}
	return options
}

// languageOverlayItems converts the picker languages to overlay rows. The
// item ID is the BCP 47 tag; the title is the English display name passed
// to the engine.
func languageOverlayItems() []components.OverlayItem {
	options := pickerLanguages()
	items := make([]components.OverlayItem, 0, len(options))
	for _, opt := range options {
		items = append(items, components.OverlayItem{
			ID:    opt.tag.String(),
			Title: opt.name,
		})
	}
	return items
}

// languageNameForTag returns the display name for a picker item ID, or ""
// when the tag is not one of the fixed options.
func languageNameForTag(tag string) string {
	for _, opt := range pickerLanguages() {
		if opt.tag.String() == tag {
			return opt.name
		}
	}
	return ""
}
