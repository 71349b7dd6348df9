// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

// Fixed system instructions for the two backend modes. They are supplied at
// session or stream creation time, are not user-editable, and never appear
// in the visible transcript.
const (
	// conversationInstruction shapes every conversational exchange.
	conversationInstruction = "You are a thoughtful co-author collaborating on a story. " +
		"Give concrete, vivid suggestions grounded in the writer's own material, " +
		"keep replies brief enough to read at a glance, and answer in plain prose " +
		"unless a list is asked for. Stay in the collaborator role at all times."

	// continuationInstruction shapes streaming continuation. The backend
	// receives the manuscript as the sole user content and must return
	// prose that can be appended verbatim.
	continuationInstruction = "You are continuing a story in progress. Write the next " +
		"passage in the same tense, voice, and style as the text you are given. " +
		"Return only story prose: no preamble, no headings, no commentary, and do " +
		"not repeat the existing text."

	// genericOpeningPrompt replaces an empty manuscript so the backend never
	// receives an empty prompt.
	genericOpeningPrompt = "Write the opening paragraph of a brand-new story. Pick an " +
		"evocative setting, introduce a protagonist, and hint at the conflict to come."
)
