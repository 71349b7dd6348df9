// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger holds the ordered conversation transcript shared by the
// orchestration engine and the UI.
//
// The ledger is a pure in-memory record: an append/update log of turns with
// stable identities and insertion ordering. Orchestrations insert a
// provisional placeholder turn, then later resolve it in place to the final
// assistant text (or an error description) or discard it entirely. Resolve
// and Discard tolerate unknown ids as silent no-ops so overlapping or
// cancelled flows never fault.
//
// # Key Types
//
//   - Ledger: the transcript log (Append, AppendProvisional, Resolve, Discard, List)
//   - TurnView: immutable snapshot of one transcript entry
//   - Role: turn author (user, assistant, system)
//   - Kind: render hint (plain text or the translate language picker)
//
// # Usage
//
// Drive one placeholder lifecycle:
//
//	id := led.AppendProvisional(ledger.RoleAssistant, "Thinking…")
//	reply, err := client.Converse(ctx, session, prompt)
//	if err != nil {
//	    led.Resolve(id, "An error occurred: "+err.Error())
//	} else {
//	    led.Resolve(id, reply)
//	}
//
// Every mutation publishes a ledger.TurnsEvent on bus.TopicTurns.
package ledger
