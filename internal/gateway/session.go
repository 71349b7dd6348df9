// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// =============================================================================
// CHAT SESSION
// =============================================================================

// ChatSession is an opaque conversational handle. It accumulates the
// exchange history so the backend sees prior turns as context; callers hold
// the session and never touch the history directly.
//
// A session is safe for concurrent use, though the orchestrator serializes
// access through its admission gate in practice.
type ChatSession struct {
	client  *Client
	mu      sync.Mutex
	history []Content
}

// NewSession creates a fresh conversational session with the co-author
// system instruction. Backend context starts empty.
func (c *Client) NewSession() *ChatSession {
	return &ChatSession{client: c}
}

// Converse sends one prompt within the session and returns the backend's
// text. The exchange is added to the session history only on success, so a
// failed call does not poison later context.
func (s *ChatSession) Converse(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("empty prompt")
	}

	s.mu.Lock()
	contents := make([]Content, 0, len(s.history)+1)
	contents = append(contents, s.history...)
	contents = append(contents, NewUserContent(prompt))
	s.mu.Unlock()

	req := &GenerateRequest{
		Contents:          contents,
		SystemInstruction: &Content{Parts: []Part{{Text: conversationInstruction}}},
	}

	resp, err := s.client.generate(ctx, req)
	if err != nil {
		return "", err
	}

	text := resp.Text()

	s.mu.Lock()
	s.history = append(s.history, NewUserContent(prompt), NewModelContent(text))
	s.mu.Unlock()

	return text, nil
}

// Reset drops the accumulated history. Used when the user starts a new
// conversation.
func (s *ChatSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// Len returns the number of stored history entries (user and model contents
// both count).
func (s *ChatSession) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}
