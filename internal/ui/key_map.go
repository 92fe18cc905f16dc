package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	search   key.Binding
	queue    key.Binding
	enqueue  key.Binding
	remove   key.Binding
	toggle   key.Binding
	next     key.Binding
	previous key.Binding
	collapse key.Binding
	theme    key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play now")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		queue:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "queue")),
		enqueue:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "enqueue")),
		remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:     key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next")),
		previous: key.NewBinding(key.WithKeys("b", "left"), key.WithHelp("b", "previous")),
		collapse: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse player")),
		theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle theme")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.queue, k.toggle, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.enqueue},
		{k.search, k.queue, k.back, k.remove},
		{k.toggle, k.next, k.previous, k.collapse},
		{k.theme, k.quit},
	}
}
