// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the storyweaver application.
package util

import "strings"

// UNICODE: Rune-aware helpers prevent mid-character truncation that would
// corrupt UTF-8 strings. The manuscript buffer and selection handling index
// by rune, never by byte.

// TruncateRunes truncates a string to a maximum number of runes (characters).
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// SafeSubstring returns a substring using rune indices (not byte indices).
// Out-of-range indices are clamped rather than panicking.
func SafeSubstring(s string, start, end int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		return ""
	}
	if end < 0 || end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// RuneLen returns the number of runes (characters) in a string.
func RuneLen(s string) int {
	return len([]rune(s))
}

// WordCount returns the number of whitespace-separated words in a string.
// Used by the status bar to track manuscript length.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// IsBlank reports whether a string is empty or contains only whitespace.
// Several orchestration preconditions treat blank input as absent.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
