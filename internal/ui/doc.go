// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view catalog browser with a persistent player bar:
//  1. [BrowseView] : Browse and search the song catalog
//  2. [QueueView] : Inspect and reorder the playback queue
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Store subscriptions (queue, search, sidebar, theme) are bridged into the
// event loop through a buffered channel, so mutations made anywhere in the
// process repaint the TUI without polling.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
