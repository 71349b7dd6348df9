// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// sessionTestServer records every generate request and answers each with the
// next queued reply.
func sessionTestServer(t *testing.T, replies []string) (*httptest.Server, func() []GenerateRequest) {
	t.Helper()

	var mu sync.Mutex
	var requests []GenerateRequest
	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		mu.Lock()
		requests = append(requests, req)
		reply := ""
		if calls < len(replies) {
			reply = replies[calls]
		}
		calls++
		mu.Unlock()

		resp := GenerateResponse{
			Candidates: []Candidate{
				{Content: NewModelContent(reply), FinishReason: "STOP"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))

	snapshot := func() []GenerateRequest {
		mu.Lock()
		defer mu.Unlock()
		out := make([]GenerateRequest, len(requests))
		copy(out, requests)
		return out
	}

	return server, snapshot
}

// TestConverse_AccumulatesHistory verifies that each successful exchange is
// sent as backend context on the next call.
func TestConverse_AccumulatesHistory(t *testing.T) {
	server, requests := sessionTestServer(t, []string{"first reply", "second reply"})
	defer server.Close()

	client := NewClient("test-api-key-abcdefghij").WithBaseURL(server.URL)
	session := client.NewSession()

	text, err := session.Converse(context.Background(), "suggest a title")
	if err != nil {
		t.Fatalf("Converse() error = %v", err)
	}
	if text != "first reply" {
		t.Errorf("first text = %q, want 'first reply'", text)
	}

	text, err = session.Converse(context.Background(), "another one")
	if err != nil {
		t.Fatalf("Converse() error = %v", err)
	}
	if text != "second reply" {
		t.Errorf("second text = %q, want 'second reply'", text)
	}

	reqs := requests()
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want 2", len(reqs))
	}

	// First request carries only the new prompt
	if len(reqs[0].Contents) != 1 {
		t.Fatalf("first request has %d contents, want 1", len(reqs[0].Contents))
	}
	if reqs[0].Contents[0].Role != RoleUser {
		t.Errorf("first content role = %s, want user", reqs[0].Contents[0].Role)
	}

	// Second request carries user, model, user
	if len(reqs[1].Contents) != 3 {
		t.Fatalf("second request has %d contents, want 3", len(reqs[1].Contents))
	}
	wantRoles := []string{RoleUser, RoleModel, RoleUser}
	for i, want := range wantRoles {
		if reqs[1].Contents[i].Role != want {
			t.Errorf("second request content[%d] role = %s, want %s", i, reqs[1].Contents[i].Role, want)
		}
	}
	if reqs[1].Contents[1].Parts[0].Text != "first reply" {
		t.Errorf("model context = %q, want 'first reply'", reqs[1].Contents[1].Parts[0].Text)
	}

	if session.Len() != 4 {
		t.Errorf("session.Len() = %d, want 4", session.Len())
	}
}

// TestConverse_SystemInstructionSeparate verifies the persona instruction
// rides in the dedicated field, never in the conversational contents.
func TestConverse_SystemInstructionSeparate(t *testing.T) {
	server, requests := sessionTestServer(t, []string{"ok"})
	defer server.Close()

	client := NewClient("test-api-key-abcdefghij").WithBaseURL(server.URL)
	session := client.NewSession()

	if _, err := session.Converse(context.Background(), "hello"); err != nil {
		t.Fatalf("Converse() error = %v", err)
	}

	reqs := requests()
	if reqs[0].SystemInstruction == nil {
		t.Fatal("request has no system instruction")
	}
	if got := reqs[0].SystemInstruction.Parts[0].Text; got != conversationInstruction {
		t.Errorf("system instruction = %q, want the fixed co-author instruction", got)
	}
	for _, content := range reqs[0].Contents {
		for _, part := range content.Parts {
			if part.Text == conversationInstruction {
				t.Error("system instruction leaked into contents")
			}
		}
	}
}

// TestConverse_EmptyPrompt verifies empty prompts are rejected locally.
func TestConverse_EmptyPrompt(t *testing.T) {
	client := NewClient("test-api-key-abcdefghij")
	session := client.NewSession()

	if _, err := session.Converse(context.Background(), "   "); err == nil {
		t.Error("Converse() with blank prompt should fail")
	}
	if session.Len() != 0 {
		t.Errorf("session.Len() = %d after rejected prompt, want 0", session.Len())
	}
}

// TestConverse_FailureKeepsHistoryClean verifies a failed exchange is not
// recorded as context for later calls.
func TestConverse_FailureKeepsHistoryClean(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key-abcdefghij").WithBaseURL(server.URL)
	session := client.NewSession()

	_, err := session.Converse(context.Background(), "hello")
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("error = %v, want ErrAuthFailed", err)
	}
	if session.Len() != 0 {
		t.Errorf("session.Len() = %d after failure, want 0", session.Len())
	}
}

// TestSessionReset verifies Reset drops accumulated context.
func TestSessionReset(t *testing.T) {
	server, _ := sessionTestServer(t, []string{"reply"})
	defer server.Close()

	client := NewClient("test-api-key-abcdefghij").WithBaseURL(server.URL)
	session := client.NewSession()

	if _, err := session.Converse(context.Background(), "hello"); err != nil {
		t.Fatalf("Converse() error = %v", err)
	}
	if session.Len() == 0 {
		t.Fatal("expected non-empty history before reset")
	}

	session.Reset()
	if session.Len() != 0 {
		t.Errorf("session.Len() = %d after Reset, want 0", session.Len())
	}
}

// TestConverse_NotConfigured verifies the missing-credential sentinel.
func TestConverse_NotConfigured(t *testing.T) {
	client := NewClient("")
	session := client.NewSession()

	_, err := session.Converse(context.Background(), "hello")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}
