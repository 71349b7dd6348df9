// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine drives the AI orchestrations of the writing assistant.
//
// An orchestration is one backend interaction from trigger to settlement:
// either a discrete request/response turn (chat and the story actions) or
// the streaming continuation of the manuscript. The engine owns the shared
// state both kinds mutate and the admission gate that keeps at most one
// orchestration in flight.
//
// # Key Types
//
//   - Engine: action entry points (Chat, ContinueStory, SuggestTitles,
//     CharacterIdeas, PlotTwist, ImproveSelection, TranslateSelection,
//     TranslateSelectionInto, NewConversation)
//   - DocumentContent: the shared manuscript buffer, mutation-ordered events
//   - ResponderState: the busy/idle admission gate, silent drop on conflict
//   - SelectionSnapshot: by-value capture of the highlighted passage
//
// # The Turn Contract
//
// Every request/response orchestration follows the same shape: take the
// gate or drop silently, echo the visible prompt if any, append a
// provisional "Thinking…" turn, converse, resolve the placeholder to the
// reply or to "An error occurred: …", release the gate. Failures become
// transcript content; they never propagate to callers.
//
// # Usage
//
//	eng := engine.New(engine.Config{
//	    Session:   session,
//	    Continuer: client,
//	    Ledger:    led,
//	    Document:  doc,
//	    Responder: gate,
//	})
//	admitted := eng.Chat(ctx, "What should happen next?")
//
// Entry points are synchronous and report only admission; outcomes arrive
// through the ledger and document events on the bus.
package engine
