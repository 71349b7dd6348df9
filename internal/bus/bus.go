// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bus provides the in-process event bus that decouples the
// orchestration engine from the rendering layer.
//
// State holders (ledger, document buffer, responder gate, export pipeline)
// publish JSON events on named topics; the UI subscribes and converts them
// into its own message types. Nothing in the engine knows what framework,
// if any, is listening.
package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// =============================================================================
// TOPICS
// =============================================================================

// Topic names. Each carries exactly one event type, defined next to its
// publisher.
const (
	// TopicTurns carries the full conversation transcript after every
	// ledger mutation (ledger.TurnsEvent).
	TopicTurns = "turns"

	// TopicDocument carries the full manuscript text after every document
	// mutation (engine.DocumentEvent).
	TopicDocument = "document"

	// TopicResponder carries responder-gate transitions (engine.ResponderEvent).
	TopicResponder = "responder"

	// TopicExport carries export-pipeline state transitions (export.Event).
	TopicExport = "export"

	// TopicConfig carries configuration reloads picked up by the file
	// watcher (config.ChangedEvent).
	TopicConfig = "config"
)

// =============================================================================
// BUS
// =============================================================================

// Bus wraps an in-memory watermill pub/sub. Publish blocks until every
// current subscriber has acked the message, so events reach subscribers in
// the exact order they were published. With no subscribers Publish returns
// immediately.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// New creates an event bus ready for use.
func New() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{
				OutputChannelBuffer: 64,
				// Without ack-blocking the gochannel pub/sub hands each
				// message to a fresh goroutine and delivery order is lost.
				BlockPublishUntilSubscriberAck: true,
			},
			watermill.NopLogger{},
		),
	}
}

// Publish marshals v to JSON and publishes it on topic, blocking until all
// subscribers ack. Events are delivered in publish order per topic.
func (b *Bus) Publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}
	return b.pubsub.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
}

// Subscribe returns a channel of raw messages for topic. The channel closes
// when ctx is cancelled or the bus is closed. Consumers unmarshal the
// payload and must Ack each message.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
