// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"sync/atomic"

	"github.com/jeranaias/storyweaver-tui/internal/bus"
)

// =============================================================================
// RESPONDER STATE
// =============================================================================

// ResponderEvent is published on the responder topic whenever the busy flag
// flips. It drives loading indicators.
type ResponderEvent struct {
	Busy bool `json:"busy"`
}

// ResponderState is the process-wide admission gate: true while any
// orchestration is in flight. It is a mutex with no queueing; a request
// rejected because the gate is held is dropped silently, never deferred.
type ResponderState struct {
	busy atomic.Bool
	bus  *bus.Bus
}

// NewResponderState creates an idle gate. A nil bus disables event
// publication, which tests use.
func NewResponderState(b *bus.Bus) *ResponderState {
	return &ResponderState{bus: b}
}

// TryAcquire attempts to take the gate. Returns false without side effects
// when an orchestration is already in flight.
func (r *ResponderState) TryAcquire() bool {
	if !r.busy.CompareAndSwap(false, true) {
		return false
	}
	r.publish(true)
	return true
}

// Release clears the gate. Callers pair it with TryAcquire in a defer so the
// gate clears on every exit path.
func (r *ResponderState) Release() {
	r.busy.Store(false)
	r.publish(false)
}

// Busy reports whether an orchestration is in flight.
func (r *ResponderState) Busy() bool {
	return r.busy.Load()
}

func (r *ResponderState) publish(busy bool) {
	if r.bus == nil {
		return
	}
	_ = r.bus.Publish(bus.TopicResponder, ResponderEvent{Busy: busy})
}
