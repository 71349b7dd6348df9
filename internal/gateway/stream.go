// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// =============================================================================
// STREAMING TYPES
// =============================================================================

// MaxEventSize is the maximum allowed size for a single SSE event (64KB).
const MaxEventSize = 64 * 1024

// StreamError represents an error that occurred during streaming,
// preserving any partial content received before the error.
type StreamError struct {
	Partial string // Content received before error
	Err     error
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	if e.Partial != "" {
		return fmt.Sprintf("stream error (partial content received: %d chars): %v", len(e.Partial), e.Err)
	}
	return fmt.Sprintf("stream error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *StreamError) Unwrap() error {
	return e.Err
}

// =============================================================================
// SSE READER
// =============================================================================

// SSEReader parses Server-Sent Events from a stream.
type SSEReader struct {
	reader *bufio.Reader
}

// NewSSEReader creates a new SSE reader from an io.Reader.
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{
		reader: bufio.NewReader(r),
	}
}

// ReadEvent reads the next SSE event from the stream.
// Returns the event type, data, and any error.
// The event type is typically empty for Gemini responses.
// Returns io.EOF when the stream ends.
func (s *SSEReader) ReadEvent() (string, []byte, error) {
	var eventType string
	var dataLines [][]byte
	var total int

	for {
		line, err := s.reader.ReadBytes('\n')
		// A stream may end mid-line; the partial line is still a field and
		// must be parsed before EOF is reported.
		atEOF := err == io.EOF
		if err != nil && !atEOF {
			return "", nil, err
		}

		// Trim trailing newline and carriage return
		line = bytes.TrimRight(line, "\r\n")

		// Empty line signals end of event
		if len(line) == 0 {
			if len(dataLines) > 0 {
				return eventType, bytes.Join(dataLines, []byte("\n")), nil
			}
			if atEOF {
				return "", nil, io.EOF
			}
			continue
		}

		// Parse field
		if bytes.HasPrefix(line, []byte("event:")) {
			eventType = string(bytes.TrimSpace(line[6:]))
		} else if bytes.HasPrefix(line, []byte("data:")) {
			data := bytes.TrimSpace(line[5:])
			total += len(data)
			if total > MaxEventSize {
				return "", nil, fmt.Errorf("event too large: %d bytes", total)
			}
			dataLines = append(dataLines, data)
		}
		// Ignore other fields (id:, retry:, comments starting with :)

		if atEOF {
			if len(dataLines) > 0 {
				return eventType, bytes.Join(dataLines, []byte("\n")), nil
			}
			return "", nil, io.EOF
		}
	}
}

// =============================================================================
// STREAMING CONTINUATION
// =============================================================================

// StreamContinue opens a streaming continuation of the given manuscript and
// returns a channel of text increments plus an error channel.
//
// The sequence is lazy, finite, and non-restartable. The increments channel
// is unbuffered: the producer hands over each increment only after the
// consumer has taken the previous one, so increments are applied strictly
// in order with no batching. Both channels are closed when the stream ends;
// the error channel yields at most one error, a *StreamError when partial
// content had already been delivered.
//
// If documentText is empty or whitespace, a generic story-opening prompt is
// substituted so the backend never receives an empty request.
func (c *Client) StreamContinue(ctx context.Context, documentText string) (<-chan string, <-chan error) {
	increments := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(increments)
		defer close(errs)

		if !c.IsConfigured() {
			errs <- ErrNotConfigured
			return
		}

		if err := c.limiter.Wait(ctx); err != nil {
			errs <- err
			return
		}

		resp, err := c.openStream(ctx, documentText)
		if err != nil {
			errs <- err
			return
		}
		defer resp.Body.Close()

		reader := NewSSEReader(resp.Body)
		var accumulated strings.Builder

		for {
			select {
			case <-ctx.Done():
				errs <- &StreamError{Partial: accumulated.String(), Err: ctx.Err()}
				return
			default:
			}

			_, data, err := reader.ReadEvent()
			if err != nil {
				if err == io.EOF {
					return
				}
				errs <- &StreamError{
					Partial: accumulated.String(),
					Err:     fmt.Errorf("%w: %v", ErrStreamInterrupted, err),
				}
				return
			}

			// Check for [DONE] signal
			if bytes.Equal(data, []byte("[DONE]")) {
				return
			}

			// Each event is a full response object carrying one delta.
			var chunk GenerateResponse
			if err := json.Unmarshal(data, &chunk); err != nil {
				// Skip malformed chunks
				continue
			}

			text := chunk.Text()
			if text == "" {
				continue
			}

			accumulated.WriteString(text)

			select {
			case increments <- text:
			case <-ctx.Done():
				errs <- &StreamError{Partial: accumulated.String(), Err: ctx.Err()}
				return
			}
		}
	}()

	return increments, errs
}

// openStream issues the streaming request and returns the live response.
func (c *Client) openStream(ctx context.Context, documentText string) (*http.Response, error) {
	prompt := documentText
	if strings.TrimSpace(prompt) == "" {
		prompt = genericOpeningPrompt
	}

	reqBody := &GenerateRequest{
		Contents:          []Content{NewUserContent(prompt)},
		SystemInstruction: &Content{Parts: []Part{{Text: continuationInstruction}}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpointURL("streamGenerateContent") + "?alt=sse"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// Streaming uses the shared client without a timeout; lifetime is
	// controlled by the caller's context.
	resp, err := sharedStreamingClient.Do(req)

	// SECURITY: Clear the key header immediately after the request to prevent logging
	req.Header.Del("x-goog-api-key")

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	// Handle error responses
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
		resp.Body.Close()
		return nil, c.handleErrorResponse(resp.StatusCode, body)
	}

	return resp, nil
}
