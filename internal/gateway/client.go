// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides Gemini integration for the writing assistant.
//
// The Gemini API exposes single-turn content generation and server-sent
// streaming over plain HTTPS. This package implements the client for both,
// plus the opaque chat session that accumulates conversational context.
package gateway

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the Gemini API.
const (
	// DefaultBaseURL is the base URL for the Gemini API.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-1.5-flash"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for transient errors.
	DefaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay is the maximum delay for exponential backoff.
	retryMaxDelay = 10 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion attacks.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

var (
	// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
	// Shared HTTP client with connection pooling for all Gemini requests.
	sharedHTTPClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		Timeout: DefaultTimeout,
	}

	// sharedStreamingClient is used for streaming requests (no timeout, context-controlled).
	sharedStreamingClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		// No timeout for streaming - controlled via context
	}
)

// Error variables for common Gemini errors.
var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("Gemini API key not configured")

	// ErrAuthFailed indicates authentication failed (invalid or expired API key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrQuotaExhausted indicates the account quota is used up.
	ErrQuotaExhausted = errors.New("quota exhausted")

	// ErrModelNotFound indicates the requested model does not exist.
	ErrModelNotFound = errors.New("model not found")

	// ErrContentBlocked indicates the backend refused to answer the prompt.
	ErrContentBlocked = errors.New("content blocked by backend")

	// ErrStreamInterrupted indicates a streaming response ended before completion.
	ErrStreamInterrupted = errors.New("stream interrupted")
)

// BackendError represents an error returned by the Gemini API.
type BackendError struct {
	Code    string // Gemini status string, e.g. "RESOURCE_EXHAUSTED"
	Message string
	Status  int // HTTP status code
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("Gemini error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("Gemini error (HTTP %d): %s", e.Status, e.Message)
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// Part is one fragment of content. Only text parts are used.
type Part struct {
	Text string `json:"text"`
}

// Content is a role-attributed sequence of parts. The Gemini API knows two
// conversational roles, "user" and "model".
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Role constants for Content.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// NewUserContent creates a user-role content with a single text part.
func NewUserContent(text string) Content {
	return Content{Role: RoleUser, Parts: []Part{{Text: text}}}
}

// NewModelContent creates a model-role content with a single text part.
func NewModelContent(text string) Content {
	return Content{Role: RoleModel, Parts: []Part{{Text: text}}}
}

// GenerationConfig tunes a generation request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateRequest is the request body for generateContent and
// streamGenerateContent.
type GenerateRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one generated answer.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// PromptFeedback reports why a prompt produced no candidates.
type PromptFeedback struct {
	BlockReason string `json:"blockReason"`
}

// GenerateResponse is the response body for generateContent and each SSE
// chunk of streamGenerateContent.
type GenerateResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
}

// Text returns the concatenated text parts of the first candidate, or empty
// string if there are none.
func (r *GenerateResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// apiErrorResponse represents an error response from the API.
type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for communicating with the Gemini API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries int
	timeout    time.Duration
	limiter    *rate.Limiter
}

// NewClient creates a new Gemini client with the given API key.
//
// If the API key is empty, the client is still created but every request
// fails with ErrNotConfigured. Callers that require a working backend check
// IsConfigured at startup instead.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		maxRetries: DefaultMaxRetries,
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithModel sets the model to use for generation requests.
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

// WithMaxRetries sets the maximum number of retry attempts.
func (c *Client) WithMaxRetries(maxRetries int) *Client {
	c.maxRetries = maxRetries
	return c
}

// WithRequestsPerMinute throttles outgoing requests client-side. Zero or
// negative disables throttling.
func (c *Client) WithRequestsPerMinute(rpm int) *Client {
	if rpm > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
	} else {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return c
}

// Model returns the configured model id.
func (c *Client) Model() string {
	return c.model
}

// IsConfigured returns true if the client has an API key configured.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// APIKeyMasked returns a masked version of the API key for display.
// SECURITY: Never exposes API key fragments - use fingerprint instead.
func (c *Client) APIKeyMasked() string {
	if c.apiKey == "" {
		return "[not set]"
	}
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(c.apiKey), c.keyFingerprint())
}

// keyFingerprint returns a secure fingerprint of the API key for logging.
// SECURITY: Uses SHA-256 hash to create a unique identifier without exposing the key.
func (c *Client) keyFingerprint() string {
	if c.apiKey == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(h[:4]) // First 8 hex chars (4 bytes)
}

// endpointURL builds the URL for a model action such as "generateContent".
func (c *Client) endpointURL(action string) string {
	return fmt.Sprintf("%s/models/%s:%s", c.baseURL, c.model, action)
}

// setHeaders sets the required headers for Gemini API requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "storyweaver/0.1.0")
}

// =============================================================================
// SINGLE-TURN GENERATION
// =============================================================================

// generate performs a content generation request with retry and backoff.
// Conversational callers go through ChatSession.Converse, which maintains
// history around this call.
func (c *Client) generate(ctx context.Context, reqBody *GenerateRequest) (*GenerateResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := c.endpointURL("generateContent")

	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		// Apply backoff delay after first attempt
		if attempt > 0 {
			delay := c.calculateBackoff(attempt)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		response, err := c.doRequest(ctx, url, reqBody)
		if err != nil {
			if c.isRetryable(err) {
				lastErr = err
				continue
			}
			return nil, err
		}

		return response, nil
	}

	// All retries exhausted
	if lastErr != nil {
		return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return nil, errors.New("max retries exceeded")
}

// doRequest performs a single HTTP request to the generateContent endpoint.
// SECURITY: Clears the API key header after the request to prevent logging.
func (c *Client) doRequest(ctx context.Context, requestURL string, reqBody *GenerateRequest) (*GenerateResponse, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, requestURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := sharedHTTPClient.Do(req)

	// SECURITY: Clear the key header immediately after the request to prevent logging
	req.Header.Del("x-goog-api-key")

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// SECURITY: Read response with size limit to prevent memory exhaustion
	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	// Handle error responses
	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp.StatusCode, body)
	}

	// Parse successful response
	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// A 200 with no candidates means the prompt was refused.
	if len(genResp.Candidates) == 0 {
		if genResp.PromptFeedback != nil && genResp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w: %s", ErrContentBlocked, genResp.PromptFeedback.BlockReason)
		}
		return nil, errors.New("empty response from backend")
	}

	return &genResp, nil
}

// readResponse reads the response body with size limits to prevent memory exhaustion.
//
// SECURITY: Response size limit prevents memory exhaustion attacks.
func readResponse(resp *http.Response) ([]byte, error) {
	// SECURITY: Limit response size to prevent memory exhaustion
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Check if we hit the limit (response was truncated)
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}

	return body, nil
}

// handleErrorResponse converts HTTP error responses to appropriate Go errors.
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	// Try to parse error response
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		backendErr := &BackendError{
			Code:    apiErr.Error.Status,
			Message: apiErr.Error.Message,
			Status:  statusCode,
		}

		// Map to specific error types
		switch statusCode {
		case http.StatusBadRequest:
			// An invalid key surfaces as INVALID_ARGUMENT, not 401.
			if strings.Contains(apiErr.Error.Message, "API key") {
				return fmt.Errorf("%w: %s", ErrAuthFailed, backendErr.Message)
			}
			return backendErr
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrAuthFailed, backendErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrModelNotFound, backendErr.Message)
		case http.StatusTooManyRequests:
			if strings.Contains(strings.ToLower(apiErr.Error.Message), "quota") {
				return fmt.Errorf("%w: %s", ErrQuotaExhausted, backendErr.Message)
			}
			return fmt.Errorf("%w: %s", ErrRateLimited, backendErr.Message)
		default:
			return backendErr
		}
	}

	// Fallback for unparseable error responses
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthFailed
	case http.StatusNotFound:
		return ErrModelNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &BackendError{
			Message: string(body),
			Status:  statusCode,
		}
	}
}

// isRetryable determines if an error should trigger a retry.
func (c *Client) isRetryable(err error) bool {
	// Rate limiting is retryable
	if errors.Is(err, ErrRateLimited) {
		return true
	}

	// Check for BackendError with 5xx status
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Status >= 500 && backendErr.Status < 600
	}

	// Network errors might be retryable (connection issues, timeouts)
	// but we don't retry context cancellation
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return false
}

// calculateBackoff returns the delay to wait before the next retry.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	// Exponential backoff: 500ms, 1000ms, 2000ms, etc.
	delay := retryBaseDelay * time.Duration(1<<uint(attempt))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
