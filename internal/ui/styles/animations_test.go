// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the storyweaver TUI.
package styles

import (
	"testing"
	"time"
)

// =============================================================================
// SPINNER CONFIG TESTS
// =============================================================================

func TestSpinnerConfigs(t *testing.T) {
	spinners := []struct {
		name   string
		config SpinnerConfig
	}{
		{"LineSpinner", LineSpinner},
		{"DotsSpinner", DotsSpinner},
		{"PulseSpinner", PulseSpinner},
	}

	for _, s := range spinners {
		t.Run(s.name, func(t *testing.T) {
			if len(s.config.Frames) == 0 {
				t.Errorf("%s should have frames", s.name)
			}
			if s.config.FPS <= 0 {
				t.Errorf("%s FPS should be positive", s.name)
			}
		})
	}
}

func TestSpinnerConfigDuration(t *testing.T) {
	tests := []struct {
		name string
		fps  int
		want time.Duration
	}{
		{"10 FPS", 10, time.Second / 10},
		{"6 FPS", 6, time.Second / 6},
		{"8 FPS", 8, time.Second / 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := SpinnerConfig{FPS: tc.fps}
			got := config.Duration()
			if got != tc.want {
				t.Errorf("Duration() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLineSpinnerFrames(t *testing.T) {
	if len(LineSpinner.Frames) != 4 {
		t.Errorf("LineSpinner should have 4 frames, got %d", len(LineSpinner.Frames))
	}

	// Verify expected frames
	expected := []string{"|", "/", "-", "\\"}
	for i, want := range expected {
		if LineSpinner.Frames[i] != want {
			t.Errorf("LineSpinner frame %d = %q, want %q", i, LineSpinner.Frames[i], want)
		}
	}
}

func TestSpinnerConfigBubbles(t *testing.T) {
	b := LineSpinner.Bubbles()

	if len(b.Frames) != len(LineSpinner.Frames) {
		t.Errorf("Bubbles() frames = %d, want %d", len(b.Frames), len(LineSpinner.Frames))
	}
	if b.FPS != time.Second/10 {
		t.Errorf("Bubbles() FPS = %v, want %v", b.FPS, time.Second/10)
	}
}

// =============================================================================
// TYPING CURSOR TESTS
// =============================================================================

func TestTypingCursor(t *testing.T) {
	if len(TypingCursor) != 2 {
		t.Errorf("TypingCursor should have 2 states, got %d", len(TypingCursor))
	}
	if CursorBlinkRate <= 0 {
		t.Error("CursorBlinkRate should be positive")
	}
}
