// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

// ErrorPrefix is the fixed marker that opens every failure surfaced as
// transcript content. The UI styles turns carrying it as errors.
const ErrorPrefix = "An error occurred: "

// errorTurnText converts a backend failure into the text a resolved turn
// shows in place of the answer. Failures never propagate past the
// orchestration boundary; they all become ledger content.
func errorTurnText(err error) string {
	if err == nil {
		return ErrorPrefix + "unknown failure"
	}
	return ErrorPrefix + err.Error()
}
