// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package drafts provides manuscript snapshot persistence for storyweaver.
//
// The store keeps whole-text snapshots in a local SQLite database so the
// story survives exits and crashes. Writes are append-only with retention
// pruning in the same transaction; the newest snapshot is restored into the
// editor at startup.
//
// # Key Types
//
//   - Store: the snapshot database (Save, Latest, History, Count, Clear)
//   - Snapshot: one persisted manuscript state with id and timestamp
//
// # Usage
//
// Open a store and save the manuscript:
//
//	store, err := drafts.Open(dbPath, 50)
//	defer store.Close()
//	id, err := store.Save(documentText)
//
// Restore the latest draft:
//
//	snap, err := store.Latest()
//	if errors.Is(err, drafts.ErrNoDraft) {
//	    // first run, nothing to restore
//	}
//
// # Storage Location
//
// The database lives at ~/.storyweaver/drafts.db (WAL mode, single writer).
package drafts
