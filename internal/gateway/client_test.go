// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// CLIENT CONFIGURATION TESTS
// =============================================================================

// TestNewClient verifies client initialization.
func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key-abcdefghij")

	if !client.IsConfigured() {
		t.Error("Client should be configured with valid API key")
	}

	if client.Model() != DefaultModel {
		t.Errorf("Default model should be %q, got %s", DefaultModel, client.Model())
	}

	// Test empty API key
	emptyClient := NewClient("")
	if emptyClient.IsConfigured() {
		t.Error("Client with empty API key should not be configured")
	}

	// Whitespace-only keys are trimmed away
	blankClient := NewClient("   ")
	if blankClient.IsConfigured() {
		t.Error("Client with whitespace API key should not be configured")
	}
}

// TestClientMethodChaining verifies the fluent API for client configuration.
func TestClientMethodChaining(t *testing.T) {
	client := NewClient("test-api-key-abcdefghij").
		WithBaseURL("https://custom.api.com/").
		WithModel("gemini-1.5-pro").
		WithTimeout(30 * time.Second).
		WithMaxRetries(5).
		WithRequestsPerMinute(30)

	if client == nil {
		t.Fatal("Method chaining should return non-nil client")
	}

	if client.Model() != "gemini-1.5-pro" {
		t.Errorf("Model = %s, expected gemini-1.5-pro", client.Model())
	}

	// Trailing slash is trimmed so endpoint URLs stay well-formed
	if got := client.endpointURL("generateContent"); got != "https://custom.api.com/models/gemini-1.5-pro:generateContent" {
		t.Errorf("endpointURL = %s", got)
	}
}

// TestAPIKeyMasked verifies API key masking for display using fingerprints.
func TestAPIKeyMasked(t *testing.T) {
	tests := []struct {
		name              string
		apiKey            string
		expectedFormat    string // Expected format of the masked key
		shouldContainHash bool   // Should contain a hash fingerprint
	}{
		{
			name:              "empty key",
			apiKey:            "",
			expectedFormat:    "[not set]",
			shouldContainHash: false,
		},
		{
			name:              "short key",
			apiKey:            "abc",
			expectedFormat:    "[REDACTED, length=3, fingerprint=",
			shouldContainHash: true,
		},
		{
			name:              "normal key",
			apiKey:            "test-gemini-key-12345",
			expectedFormat:    "[REDACTED, length=21, fingerprint=",
			shouldContainHash: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := NewClient(tc.apiKey)
			masked := client.APIKeyMasked()

			if !strings.HasPrefix(masked, tc.expectedFormat) {
				t.Errorf("Expected masked key to start with %q, got %q", tc.expectedFormat, masked)
			}

			if tc.shouldContainHash {
				if strings.Contains(masked, tc.apiKey) {
					t.Errorf("Masked key should not contain the original key, got %q", masked)
				}
				if !strings.Contains(masked, "fingerprint=") {
					t.Errorf("Masked key should contain fingerprint, got %q", masked)
				}
			}
		})
	}
}

// =============================================================================
// ERROR HANDLING TESTS
// =============================================================================

// TestBackendError verifies error formatting.
func TestBackendError(t *testing.T) {
	// Error with status string
	errWithCode := &BackendError{
		Code:    "RESOURCE_EXHAUSTED",
		Message: "Quota exceeded",
		Status:  429,
	}
	expected := "Gemini error [RESOURCE_EXHAUSTED] (HTTP 429): Quota exceeded"
	if errWithCode.Error() != expected {
		t.Errorf("Error() = %q, expected %q", errWithCode.Error(), expected)
	}

	// Error without status string
	errNoCode := &BackendError{
		Message: "Server error",
		Status:  500,
	}
	expected = "Gemini error (HTTP 500): Server error"
	if errNoCode.Error() != expected {
		t.Errorf("Error() = %q, expected %q", errNoCode.Error(), expected)
	}
}

// TestHandleErrorResponse verifies status-code-to-error mapping.
func TestHandleErrorResponse(t *testing.T) {
	client := NewClient("test-api-key-abcdefghij")

	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  error
		wantText string
	}{
		{
			name:    "invalid key surfaces as 400",
			status:  400,
			body:    `{"error": {"code": 400, "message": "API key not valid. Please pass a valid API key.", "status": "INVALID_ARGUMENT"}}`,
			wantErr: ErrAuthFailed,
		},
		{
			name:    "permission denied",
			status:  403,
			body:    `{"error": {"code": 403, "message": "The caller does not have permission", "status": "PERMISSION_DENIED"}}`,
			wantErr: ErrAuthFailed,
		},
		{
			name:    "model not found",
			status:  404,
			body:    `{"error": {"code": 404, "message": "models/nope is not found", "status": "NOT_FOUND"}}`,
			wantErr: ErrModelNotFound,
		},
		{
			name:    "rate limited",
			status:  429,
			body:    `{"error": {"code": 429, "message": "Resource has been exhausted (e.g. check rate limits).", "status": "RESOURCE_EXHAUSTED"}}`,
			wantErr: ErrRateLimited,
		},
		{
			name:    "quota exhausted",
			status:  429,
			body:    `{"error": {"code": 429, "message": "You exceeded your current quota.", "status": "RESOURCE_EXHAUSTED"}}`,
			wantErr: ErrQuotaExhausted,
		},
		{
			name:     "server error keeps status string",
			status:   500,
			body:     `{"error": {"code": 500, "message": "Internal error", "status": "INTERNAL"}}`,
			wantText: "Gemini error [INTERNAL] (HTTP 500): Internal error",
		},
		{
			name:    "unparseable auth body",
			status:  401,
			body:    `not json`,
			wantErr: ErrAuthFailed,
		},
		{
			name:     "unparseable server body",
			status:   502,
			body:     `bad gateway`,
			wantText: "Gemini error (HTTP 502): bad gateway",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := client.handleErrorResponse(tc.status, []byte(tc.body))
			if err == nil {
				t.Fatal("handleErrorResponse returned nil")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want errors.Is %v", err, tc.wantErr)
			}
			if tc.wantText != "" && err.Error() != tc.wantText {
				t.Errorf("error text = %q, want %q", err.Error(), tc.wantText)
			}
		})
	}
}

// =============================================================================
// RETRY LOGIC TESTS
// =============================================================================

// TestIsRetryable verifies retry decision logic.
func TestIsRetryable(t *testing.T) {
	client := NewClient("test-api-key-abcdefghij")

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{
			name:      "rate limited",
			err:       ErrRateLimited,
			retryable: true,
		},
		{
			name:      "server error 500",
			err:       &BackendError{Status: 500, Message: "Internal Server Error"},
			retryable: true,
		},
		{
			name:      "server error 503",
			err:       &BackendError{Status: 503, Message: "Service Unavailable"},
			retryable: true,
		},
		{
			name:      "client error 400",
			err:       &BackendError{Status: 400, Message: "Bad Request"},
			retryable: false,
		},
		{
			name:      "auth failed",
			err:       ErrAuthFailed,
			retryable: false,
		},
		{
			name:      "quota exhausted",
			err:       ErrQuotaExhausted,
			retryable: false,
		},
		{
			name:      "context canceled",
			err:       context.Canceled,
			retryable: false,
		},
		{
			name:      "context deadline",
			err:       context.DeadlineExceeded,
			retryable: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := client.isRetryable(tc.err)
			if result != tc.retryable {
				t.Errorf("isRetryable(%v) = %v, expected %v", tc.err, result, tc.retryable)
			}
		})
	}
}

// TestCalculateBackoff verifies exponential backoff calculation.
func TestCalculateBackoff(t *testing.T) {
	client := NewClient("test-api-key-abcdefghij")

	// Attempt 0 should give base delay
	delay0 := client.calculateBackoff(0)
	if delay0 != 500*time.Millisecond {
		t.Errorf("Backoff for attempt 0 = %v, expected 500ms", delay0)
	}

	// Attempt 1 should double
	delay1 := client.calculateBackoff(1)
	if delay1 != 1000*time.Millisecond {
		t.Errorf("Backoff for attempt 1 = %v, expected 1000ms", delay1)
	}

	// Attempt 2 should double again
	delay2 := client.calculateBackoff(2)
	if delay2 != 2000*time.Millisecond {
		t.Errorf("Backoff for attempt 2 = %v, expected 2000ms", delay2)
	}

	// High attempts should cap at max delay
	delayHigh := client.calculateBackoff(10)
	if delayHigh != 10*time.Second {
		t.Errorf("Backoff for attempt 10 = %v, expected 10s (max)", delayHigh)
	}
}

// TestGenerateRetriesServerErrors verifies that transient 5xx responses are
// retried and the request eventually succeeds.
func TestGenerateRetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": {"code": 500, "message": "transient", "status": "INTERNAL"}}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"candidates": [{"content": {"role": "model", "parts": [{"text": "recovered"}]}, "finishReason": "STOP"}]}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key-abcdefghij").
		WithBaseURL(server.URL).
		WithMaxRetries(3)

	session := client.NewSession()
	text, err := session.Converse(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Converse() error = %v", err)
	}
	if text != "recovered" {
		t.Errorf("text = %q, want 'recovered'", text)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

// =============================================================================
// RESPONSE HELPER TESTS
// =============================================================================

// TestResponseText verifies response text extraction.
func TestResponseText(t *testing.T) {
	resp := &GenerateResponse{
		Candidates: []Candidate{
			{
				Content: Content{
					Role:  RoleModel,
					Parts: []Part{{Text: "part one"}, {Text: " part two"}},
				},
				FinishReason: "STOP",
			},
		},
	}
	if resp.Text() != "part one part two" {
		t.Errorf("Text() = %q, expected parts concatenated", resp.Text())
	}

	// Empty candidates
	emptyResp := &GenerateResponse{}
	if emptyResp.Text() != "" {
		t.Errorf("Text() on empty response = %q, expected empty string", emptyResp.Text())
	}
}
