// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package ui provides the Bubble Tea application for storyweaver.

The interface is a two-pane writing studio: the manuscript editor on the
left, the Muse chat on the right, with a header above and a status bar
below. The package follows the Elm architecture; all state lives in the
Model and every change flows through Update.

# Files

Model (model.go) - Application state: widgets, theme, transcript snapshot,
busy flag, export state, autosave bookkeeping. Layout math for the pane
grid lives here too.

Update Loop (update.go) - Keyboard handling, bus event application, overlay
selection routing, the autosave debounce, and theme toggling.

View Rendering (view.go) - Composes header, panes, and status bar into the
final frame. A visible overlay replaces the base view entirely.

Commands (commands.go) - tea.Cmd factories wrapping engine entry points,
the export pipeline, draft saves, and debounce timers. Commands run on
their own goroutines so the update loop never blocks on orchestrations.

Messages (messages.go) - Typed messages: bus-bridged events mirrored
one-to-one from the engine's published payloads, plus internal timer and
result messages.

Bridge (bridge.go) - Subscribes to every bus topic and forwards decoded
events into the running program. Stopped before teardown so late
orchestration completions never reach a dead UI.

Actions (actions.go) - The Ctrl+A actions menu: continue, titles,
characters, plot twist, improve, translate, export, new conversation.

Language Picker (picker.go) - Fixed translation targets named through the
BCP 47 display tables.

Key Bindings (keys.go) - All shortcuts with help text.

# Flow

User input becomes engine commands; engine state changes come back as bus
events, not return values. The transcript, manuscript echo, spinner, and
export indicator all re-render from those events, so the UI shows exactly
what the engine published and nothing it invented.
*/
package ui
