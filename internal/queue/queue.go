// Package queue implements the play queue store: an ordered, duplicate-free
// list of playable items plus a pointer to the current selection.
//
// A single Store instance is constructed at startup and passed by reference to
// every consumer (TUI panels, sidebar controller, CLI actions). Mutations are
// synchronous and atomic; subscribers observe the queue only after a mutation
// has fully settled, never mid-change.
//
// Malformed operations (empty URL, unknown URL, navigation past either end)
// degrade to no-ops by design. Nothing in this package returns an error.
package queue

import (
	"sync"

	"github.com/desertthunder/songbox/internal/models"
)

// Snapshot is an immutable view of the queue handed to subscribers and callers.
type Snapshot struct {
	Items       []models.QueueItem
	Current     int
	CurrentItem *models.QueueItem
}

// Store holds the ordered play list and the currently selected position.
//
// Invariants, upheld by every operation:
//   - no two items share a URL
//   - Current is -1 or a valid index into Items
type Store struct {
	mu      sync.Mutex
	items   []models.QueueItem
	current int

	nextSubID int
	subs      map[int]func(Snapshot)
}

// New creates an empty queue store (no items, nothing selected).
func New() *Store {
	return &Store{
		current: -1,
		subs:    make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn to run synchronously after every mutation.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
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

// Add appends an item to the end of the queue without changing the current
// selection. No-op when the URL is empty or already queued.
func (s *Store) Add(item models.QueueItem) {
	s.mu.Lock()
	if item.URL == "" || s.indexOf(item.URL) >= 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items, item)
	s.notifyLocked()
}

// PlayNow makes item the current selection at position 0.
//
// When an item with the same URL is already queued, its fields are merged with
// the incoming item (new non-empty fields win) and the merged entry moves to
// the front; the relative order of everything else is preserved. Otherwise the
// item is prepended. Either way the selection lands on index 0.
func (s *Store) PlayNow(item models.QueueItem) {
	s.mu.Lock()
	if item.URL == "" {
		s.mu.Unlock()
		return
	}

	if idx := s.indexOf(item.URL); idx >= 0 {
		merged := s.items[idx].Merge(item)
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		s.items = append([]models.QueueItem{merged}, s.items...)
	} else {
		s.items = append([]models.QueueItem{item}, s.items...)
	}
	s.current = 0
	s.notifyLocked()
}

// Remove deletes the entry with the given URL. No-op when absent.
//
// When the removed entry sits before the current one, the pointer shifts down
// so the playing item keeps its identity. When the current entry itself is
// removed, the pointer stays put and playback falls through to whichever item
// now occupies that slot, clamped to the new last index (-1 when the queue
// empties).
func (s *Store) Remove(url string) {
	s.mu.Lock()
	idx := s.indexOf(url)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)

	switch {
	case s.current > idx:
		s.current--
	case s.current == idx:
		if s.current >= len(s.items) {
			s.current = len(s.items) - 1
		}
	}
	s.notifyLocked()
}

// Clear empties the queue and resets the selection.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.current = -1
	s.notifyLocked()
}

// Next advances the selection by one. No-op at the last index (no wraparound).
func (s *Store) Next() {
	s.mu.Lock()
	if s.current < 0 || s.current >= len(s.items)-1 {
		s.mu.Unlock()
		return
	}
	s.current++
	s.notifyLocked()
}

// Previous moves the selection back by one. No-op at index 0 (no wraparound).
func (s *Store) Previous() {
	s.mu.Lock()
	if s.current <= 0 {
		s.mu.Unlock()
		return
	}
	s.current--
	s.notifyLocked()
}

// State returns a snapshot of the queue. Items is a copy; CurrentItem is nil
// when nothing is selected.
func (s *Store) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// HasNext reports whether Next would advance the selection.
func (s *Store) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current >= 0 && s.current < len(s.items)-1
}

// HasPrevious reports whether Previous would move the selection back.
func (s *Store) HasPrevious() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current > 0
}

// Len returns the number of queued items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// indexOf returns the position of the item with the given URL, or -1.
// Callers must hold s.mu.
func (s *Store) indexOf(url string) int {
	for i, item := range s.items {
		if item.URL == url {
			return i
		}
	}
	return -1
}

// snapshotLocked builds a Snapshot. Callers must hold s.mu.
func (s *Store) snapshotLocked() Snapshot {
	items := make([]models.QueueItem, len(s.items))
	copy(items, s.items)

	snap := Snapshot{Items: items, Current: s.current}
	if s.current >= 0 && s.current < len(items) {
		item := items[s.current]
		snap.CurrentItem = &item
	}
	return snap
}

// notifyLocked snapshots state and subscriber list, releases the lock, and
// fans out synchronously. Subscribers never observe a half-applied mutation
// and may call back into the store without deadlocking.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
