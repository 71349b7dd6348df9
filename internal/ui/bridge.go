// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea application model for storyweaver.
//
// This file defines the bridge from the event bus into the program's
// message loop. The engine publishes state changes without knowing who
// renders them; the bridge subscribes to each topic, decodes the payload
// into the matching message type, and hands it to the running program.
package ui

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/storyweaver-tui/internal/bus"
	"github.com/jeranaias/storyweaver-tui/internal/config"
	"github.com/jeranaias/storyweaver-tui/internal/engine"
	"github.com/jeranaias/storyweaver-tui/internal/export"
	"github.com/jeranaias/storyweaver-tui/internal/ledger"
)

// =============================================================================
// EVENT BRIDGE
// =============================================================================

// Sender is the slice of tea.Program the bridge needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge forwards bus events into a running program. One goroutine per
// topic decodes payloads and sends typed messages. After Stop, decoded
// events are dropped on the floor: orchestrations cannot be cancelled, so
// their late completions must never reach a torn-down UI.
type Bridge struct {
	bus *bus.Bus
	log *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	stopped atomic.Bool
	wg      sync.WaitGroup
}

// NewBridge creates a bridge over the given bus. A nil logger is replaced
// with a no-op logger.
func NewBridge(b *bus.Bus, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Bridge{
		bus:    b,
		log:    logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start subscribes to every engine topic and begins forwarding into target.
func (br *Bridge) Start(target Sender) error {
	if err := br.forward(bus.TopicTurns, target, decodeTurns); err != nil {
		return err
	}
	if err := br.forward(bus.TopicDocument, target, decodeDocument); err != nil {
		return err
	}
	if err := br.forward(bus.TopicResponder, target, decodeResponder); err != nil {
		return err
	}
	if err := br.forward(bus.TopicExport, target, decodeExport); err != nil {
		return err
	}
	return br.forward(bus.TopicConfig, target, decodeConfig)
}

// Stop tears the bridge down. In-flight deliveries finish or are dropped;
// no message is sent after Stop returns.
func (br *Bridge) Stop() {
	br.stopped.Store(true)
	br.cancel()
	br.wg.Wait()
}

// forward subscribes to one topic and pumps decoded messages into target
// until the subscription channel closes.
func (br *Bridge) forward(topic string, target Sender, decode func([]byte) (tea.Msg, error)) error {
	msgs, err := br.bus.Subscribe(br.ctx, topic)
	if err != nil {
		return err
	}

	br.wg.Add(1)
	go func() {
		defer br.wg.Done()
		for msg := range msgs {
			decoded, err := decode(msg.Payload)
			if err != nil {
				br.log.Warn("dropping undecodable event",
					zap.String("topic", topic),
					zap.Error(err))
				msg.Ack()
				continue
			}
			if !br.stopped.Load() {
				target.Send(decoded)
			}
			msg.Ack()
		}
	}()

	return nil
}

// =============================================================================
// PAYLOAD DECODERS
// =============================================================================

func decodeTurns(payload []byte) (tea.Msg, error) {
	var ev ledger.TurnsEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, err
	}
	return TurnsMsg{Turns: ev.Turns}, nil
}

func decodeDocument(payload []byte) (tea.Msg, error) {
	var ev engine.DocumentEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, err
	}
	return DocumentMsg(ev), nil
}

func decodeResponder(payload []byte) (tea.Msg, error) {
	var ev engine.ResponderEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, err
	}
	return ResponderMsg(ev), nil
}

func decodeExport(payload []byte) (tea.Msg, error) {
	var ev export.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, err
	}
	return ExportMsg(ev), nil
}

func decodeConfig(payload []byte) (tea.Msg, error) {
	var ev config.ChangedEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, err
	}
	return ConfigReloadedMsg(ev), nil
}
