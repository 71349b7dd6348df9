// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides Gemini integration for the writing assistant.
//
// It wraps the external generative backend behind two operations: a
// conversational exchange on an opaque session, and a streaming continuation
// of the manuscript. Each mode carries its own fixed system instruction.
//
// # Key Types
//
//   - Client: HTTP client for the Gemini API with retry and rate limiting
//   - ChatSession: opaque conversational handle accumulating backend context
//   - GenerateRequest: request structure for content generation
//   - SSEReader: streaming response reader for incremental output
//
// # Usage
//
// Create a client and converse within a session:
//
//	client := gateway.NewClient(apiKey).WithModel("gemini-1.5-flash")
//	session := client.NewSession()
//	text, err := session.Converse(ctx, "Suggest three titles for my story.")
//
// Stream a continuation of the manuscript:
//
//	increments, errs := client.StreamContinue(ctx, documentText)
//	for inc := range increments {
//	    // apply inc before the next one is produced
//	}
//	if err := <-errs; err != nil {
//	    // handle failure; partial content is preserved in StreamError
//	}
//
// # Security
//
// API keys are attached per-request and never logged; display paths use
// APIKeyMasked, which exposes only length and a hash fingerprint. All
// requests use TLS 1.2+.
package gateway
