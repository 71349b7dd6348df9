// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bus provides the in-process event bus connecting the engine to
// the presentation layer.
//
// State owners (ledger, document, responder gate, export pipeline, config
// watcher) publish JSON events on fixed topics without knowing who listens.
// The UI subscribes and mutates nothing it did not send a command for. The
// bus is a thin wrapper over a Watermill gochannel Pub/Sub with buffered
// output so publishers never block on a slow consumer.
//
// # Topics
//
//   - TopicTurns: full transcript snapshots after every ledger mutation
//   - TopicDocument: full manuscript text after every document mutation
//   - TopicResponder: busy-flag transitions of the admission gate
//   - TopicExport: export pipeline state changes
//   - TopicConfig: config file changes observed on disk
//
// # Usage
//
// Publish and subscribe:
//
//	b := bus.New()
//	defer b.Close()
//
//	msgs, err := b.Subscribe(ctx, bus.TopicTurns)
//	_ = b.Publish(bus.TopicTurns, ledger.TurnsEvent{Turns: turns})
//
// Payloads are JSON; subscribers decode into the owning package's event
// type and must Ack every message.
package bus
