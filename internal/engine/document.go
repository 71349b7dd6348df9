// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"sync"

	"github.com/jeranaias/storyweaver-tui/internal/bus"
	"github.com/jeranaias/storyweaver-tui/internal/util"
)

// =============================================================================
// DOCUMENT CONTENT
// =============================================================================

// Origin labels for document mutations.
const (
	OriginUser   = "user"   // direct edits from the editor surface
	OriginStream = "stream" // streaming continuation appends
	OriginInsert = "insert" // accepted suggestion spliced at the caret
)

// DocumentEvent is published on the document topic after every mutation.
type DocumentEvent struct {
	Text   string `json:"text"`
	Origin string `json:"origin"`
}

// DocumentContent is the shared manuscript buffer. It is written from three
// places only: direct user edits, suggestion insertion at a caret position,
// and streaming continuation appends. Every mutation publishes the full new
// text so observers need no diffing.
type DocumentContent struct {
	mu   sync.Mutex
	text string
	bus  *bus.Bus
}

// NewDocumentContent creates an empty document. A nil bus disables event
// publication, which tests use.
func NewDocumentContent(b *bus.Bus) *DocumentContent {
	return &DocumentContent{bus: b}
}

// Text returns the current manuscript text.
func (d *DocumentContent) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// Len returns the manuscript length in runes.
func (d *DocumentContent) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return util.RuneLen(d.text)
}

// IsBlank reports whether the manuscript is empty or whitespace-only.
func (d *DocumentContent) IsBlank() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return util.IsBlank(d.text)
}

// Set replaces the whole manuscript. Used for direct user edits, where the
// editor surface owns the authoritative text.
func (d *DocumentContent) Set(text string) {
	d.mu.Lock()
	d.text = text
	d.publishLocked(OriginUser)
	d.mu.Unlock()
}

// Append adds text at the end of the manuscript. This is the streaming
// continuation path: appends are monotonic and published one per increment,
// in order.
func (d *DocumentContent) Append(text string) {
	if text == "" {
		return
	}
	d.mu.Lock()
	d.text += text
	d.publishLocked(OriginStream)
	d.mu.Unlock()
}

// InsertAt splices text into the manuscript at a rune offset, clamped to the
// document bounds. This is the suggestion-insertion path.
func (d *DocumentContent) InsertAt(pos int, text string) {
	if text == "" {
		return
	}
	d.mu.Lock()
	runes := []rune(d.text)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	d.text = string(runes[:pos]) + text + string(runes[pos:])
	d.publishLocked(OriginInsert)
	d.mu.Unlock()
}

// publishLocked emits the document event while still holding the lock so
// event order matches mutation order.
func (d *DocumentContent) publishLocked(origin string) {
	if d.bus == nil {
		return
	}
	_ = d.bus.Publish(bus.TopicDocument, DocumentEvent{Text: d.text, Origin: origin})
}

// =============================================================================
// SELECTION SNAPSHOT
// =============================================================================

// SelectionSnapshot is the highlighted substring of the manuscript, captured
// by value at action invocation time. It goes stale the moment the user
// changes selection, which orchestrations tolerate: they work with what was
// captured, never re-reading the live selection at resolution time.
type SelectionSnapshot struct {
	Text string
}

// IsBlank reports whether the selection is empty or whitespace-only.
func (s SelectionSnapshot) IsBlank() bool {
	return util.IsBlank(s.Text)
}
