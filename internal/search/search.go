// Package search implements the search/filter store: it owns the search term,
// facet filters, debounced query execution, and suggestion/history management
// against the catalog service.
//
// Term changes are debounced: rapid-fire edits collapse into a single catalog
// query for the final term after a quiet period. Suggestion fetches are tagged
// with the generation of the term that started them; a fetch that completes
// after the term has moved on is discarded rather than clobbering newer state.
// A failed catalog call leaves previous results in place and records an error
// message instead of propagating.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songbox/internal/catalog"
	"github.com/desertthunder/songbox/internal/models"
)

const (
	// DefaultDebounce is the quiet period before a term change executes.
	DefaultDebounce = 300 * time.Millisecond

	// historyLimit caps the persisted search history.
	historyLimit = 10

	// defaultPageSize is the number of results surfaced per page.
	defaultPageSize = 20
)

// Catalog is the slice of the catalog service the store consumes.
type Catalog interface {
	SearchSongsFiltered(ctx context.Context, term string, filters catalog.Filters) ([]models.Song, error)
	Suggest(ctx context.Context, prefix string) ([]models.Suggestion, error)
}

// HistoryStore persists search terms across sessions. Implemented by the
// settings store.
type HistoryStore interface {
	SearchHistory() []string
	SetSearchHistory(history []string) error
}

// Snapshot is an immutable view of search state handed to subscribers.
type Snapshot struct {
	Term        string
	Filters     catalog.Filters
	Results     []models.Song
	TotalCount  int
	Page        int
	Limit       int
	HasMore     bool
	History     []string
	Suggestions []models.Suggestion
	Loading     bool
	ErrMsg      string
}

// Store owns search state. A single instance is constructed at startup and
// injected wherever search is rendered or driven.
type Store struct {
	mu         sync.Mutex
	catalog    Catalog
	history    HistoryStore
	logger     *log.Logger
	debounce   time.Duration
	timer      *time.Timer
	generation int

	term        string
	filters     catalog.Filters
	results     []models.Song
	page        int
	limit       int
	historyList []string
	suggestions []models.Suggestion
	loading     bool
	errMsg      string

	nextSubID int
	subs      map[int]func(Snapshot)
}

// Option configures a Store.
type Option func(*Store)

// WithDebounce overrides the debounce interval (tests use a short one).
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// New creates a search store, restoring persisted history.
func New(cat Catalog, history HistoryStore, logger *log.Logger, opts ...Option) *Store {
	s := &Store{
		catalog:  cat,
		history:  history,
		logger:   logger,
		debounce: DefaultDebounce,
		limit:    defaultPageSize,
		subs:     make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if history != nil {
		saved := history.SearchHistory()
		if len(saved) > historyLimit {
			saved = saved[:historyLimit]
		}
		s.historyList = saved
	}

	return s
}

// Subscribe registers fn to run after every state change. The returned
// function unsubscribes.
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

// State returns a snapshot of the current search state.
func (s *Store) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetTerm updates the search term. Query execution is debounced; the
// suggestion fetch starts immediately, tagged with the term's generation so a
// stale completion cannot overwrite newer suggestions.
func (s *Store) SetTerm(term string) {
	s.mu.Lock()
	s.term = term
	s.generation++
	gen := s.generation
	s.page = 0
	s.loading = true
	s.errMsg = ""

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.execute(term, gen)
	})
	s.notifyLocked()

	go s.fetchSuggestions(term, gen)
}

// SetFilters replaces the facet filters and re-runs the current query
// immediately (filter toggles are deliberate actions, not keystrokes).
func (s *Store) SetFilters(filters catalog.Filters) {
	s.mu.Lock()
	s.filters = filters
	s.generation++
	gen := s.generation
	term := s.term
	s.page = 0
	s.loading = true
	s.errMsg = ""
	s.notifyLocked()

	go s.execute(term, gen)
}

// NextPage surfaces one more page of already-fetched results.
func (s *Store) NextPage() {
	s.mu.Lock()
	if (s.page+1)*s.limit >= len(s.results) {
		s.mu.Unlock()
		return
	}
	s.page++
	s.notifyLocked()
}

// RecordHistory pushes a term to the front of the history (deduplicated,
// capped) and persists it.
func (s *Store) RecordHistory(term string) {
	if term == "" {
		return
	}

	s.mu.Lock()
	updated := []string{term}
	for _, existing := range s.historyList {
		if existing != term {
			updated = append(updated, existing)
		}
	}
	if len(updated) > historyLimit {
		updated = updated[:historyLimit]
	}
	s.historyList = updated

	if s.history != nil {
		if err := s.history.SetSearchHistory(updated); err != nil {
			s.logger.Warn("failed to persist search history", "err", err)
		}
	}
	s.notifyLocked()
}

// History returns the recorded terms, most recent first.
func (s *Store) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.historyList))
	copy(out, s.historyList)
	return out
}

// ClearHistory wipes recorded terms, in memory and persisted.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	s.historyList = nil
	if s.history != nil {
		if err := s.history.SetSearchHistory(nil); err != nil {
			s.logger.Warn("failed to persist search history", "err", err)
		}
	}
	s.notifyLocked()
}

// execute runs the debounced catalog query for a term generation. A stale
// generation (the term changed while waiting or in flight) is discarded.
func (s *Store) execute(term string, gen int) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	filters := s.filters
	s.mu.Unlock()

	results, err := s.catalog.SearchSongsFiltered(context.Background(), term, filters)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}

	s.loading = false
	if err != nil {
		// Previous results stay visible; only the error flag changes.
		s.errMsg = "search failed, showing previous results"
		s.logger.Error("catalog search failed", "term", term, "err", err)
		s.notifyLocked()
		return
	}

	s.results = results
	s.page = 0
	s.notifyLocked()
}

// fetchSuggestions loads completion candidates for a term generation.
func (s *Store) fetchSuggestions(term string, gen int) {
	if term == "" {
		s.mu.Lock()
		if gen == s.generation {
			s.suggestions = nil
			s.notifyLocked()
			return
		}
		s.mu.Unlock()
		return
	}

	suggestions, err := s.catalog.Suggest(context.Background(), term)

	s.mu.Lock()
	if gen != s.generation {
		// The input moved on while this fetch was in flight.
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.logger.Warn("suggestion fetch failed", "term", term, "err", err)
		s.mu.Unlock()
		return
	}

	s.suggestions = suggestions
	s.notifyLocked()
}

// snapshotLocked builds a Snapshot. Callers must hold s.mu.
func (s *Store) snapshotLocked() Snapshot {
	visible := len(s.results)
	if max := (s.page + 1) * s.limit; max < visible {
		visible = max
	}

	results := make([]models.Song, visible)
	copy(results, s.results[:visible])

	history := make([]string, len(s.historyList))
	copy(history, s.historyList)

	suggestions := make([]models.Suggestion, len(s.suggestions))
	copy(suggestions, s.suggestions)

	return Snapshot{
		Term:        s.term,
		Filters:     s.filters,
		Results:     results,
		TotalCount:  len(s.results),
		Page:        s.page,
		Limit:       s.limit,
		HasMore:     visible < len(s.results),
		History:     history,
		Suggestions: suggestions,
		Loading:     s.loading,
		ErrMsg:      s.errMsg,
	}
}

// notifyLocked snapshots state and subscribers, releases the lock, and fans
// out synchronously.
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
