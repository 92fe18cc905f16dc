// Package theme holds the active color palette and makes values addressable
// by dotted path (e.g. "primary.500", "background.sidebar").
//
// A fixed set of named palettes exists; switching to anything else is a
// logged no-op. Changing the theme rebuilds the derived lipgloss style set
// and persists the selection before subscribers are notified, so every
// subscriber observes a fully applied environment.
package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Palette is a nested mapping from semantic path segments to color values.
// Leaves are lipgloss.Color; interior nodes are nested Palettes.
type Palette map[string]any

// Persister saves and restores the theme selection across sessions.
// Implemented by the settings store.
type Persister interface {
	Theme() string
	SetTheme(name string) error
}

// Store holds the active palette and its derived styles.
type Store struct {
	mu      sync.Mutex
	name    string
	styles  Styles
	persist Persister
	logger  *log.Logger

	nextSubID int
	subs      map[int]func(name string)
}

// New creates a theme store, restoring any persisted selection. An unknown or
// missing persisted name falls back to the default theme.
func New(persist Persister, logger *log.Logger) *Store {
	s := &Store{
		name:    DefaultTheme,
		persist: persist,
		logger:  logger,
		subs:    make(map[int]func(string)),
	}

	if persist != nil {
		if saved := persist.Theme(); saved != "" {
			if _, ok := palettes[saved]; ok {
				s.name = saved
			} else {
				logger.Warn("ignoring unknown persisted theme", "name", saved)
			}
		}
	}

	s.styles = buildStyles(s.name)
	return s
}

// Name returns the active theme name.
func (s *Store) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Names returns the fixed set of available theme names.
func Names() []string {
	return []string{ThemeLight, ThemeDark, ThemeOcean}
}

// Color walks the active palette along the dotted path. The second return is
// false when any segment is missing; callers fall through to their default
// style rather than treating that as an error.
func (s *Store) Color(path string) (lipgloss.Color, bool) {
	s.mu.Lock()
	palette := palettes[s.name]
	s.mu.Unlock()

	return lookup(palette, path)
}

// ChangeTheme swaps the active palette. Unknown names are a logged no-op.
//
// The swap persists the choice and rebuilds the derived styles before any
// subscriber runs, so subscribers always observe a consistent environment.
func (s *Store) ChangeTheme(name string) {
	if _, ok := palettes[name]; !ok {
		s.logger.Warn("unknown theme", "name", name)
		return
	}

	s.mu.Lock()
	s.name = name
	if s.persist != nil {
		if err := s.persist.SetTheme(name); err != nil {
			s.logger.Warn("failed to persist theme", "name", name, "err", err)
		}
	}
	s.styles = buildStyles(name)

	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(name)
	}
}

// IsDark reports whether the active palette is dark-backed.
func (s *Store) IsDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name != ThemeLight
}

// Subscribe registers fn to run synchronously after every theme change.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func(name string)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Styles returns the derived style set for the active theme.
func (s *Store) Styles() Styles {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.styles
}
