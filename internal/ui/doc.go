// Package ui implements the interactive player interface using bubbletea's Elm architecture.
//
// The TUI runs a single-screen player with three focusable areas:
//  1. Search: query the catalog provider (Spotify when connected, the built-in catalog otherwise)
//  2. Results: browse matched tracks and playlists, play or enqueue
//  3. Queue: inspect and edit the pending-track list
//
// A persistent player bar at the bottom renders the current track, transport
// state, playback clock and volume. The playback clock itself lives in the
// controller; the UI re-reads a state snapshot once per second and never
// mutates playback state directly.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
