package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/songbox/internal/catalog"
	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
)

const testDebounce = 20 * time.Millisecond

// mockCatalog records queries and lets tests gate suggestion completion.
type mockCatalog struct {
	mu           sync.Mutex
	searches     []string
	songs        []models.Song
	searchErr    error
	suggestGates map[string]chan struct{}
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{suggestGates: make(map[string]chan struct{})}
}

func (m *mockCatalog) SearchSongsFiltered(_ context.Context, term string, _ catalog.Filters) ([]models.Song, error) {
	m.mu.Lock()
	m.searches = append(m.searches, term)
	songs, err := m.songs, m.searchErr
	m.mu.Unlock()
	return songs, err
}

func (m *mockCatalog) Suggest(_ context.Context, prefix string) ([]models.Suggestion, error) {
	m.mu.Lock()
	gate := m.suggestGates[prefix]
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return []models.Suggestion{{Kind: models.SuggestionTag, Value: prefix + "-tag"}}, nil
}

func (m *mockCatalog) recordedSearches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.searches))
	copy(out, m.searches)
	return out
}

// memHistory is an in-memory HistoryStore.
type memHistory struct {
	mu    sync.Mutex
	terms []string
}

func (h *memHistory) SearchHistory() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.terms
}

func (h *memHistory) SetSearchHistory(terms []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.terms = terms
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDebounceCollapse(t *testing.T) {
	cat := newMockCatalog()
	s := New(cat, nil, shared.NewLogger(nil), WithDebounce(testDebounce))

	s.SetTerm("a")
	s.SetTerm("ab")
	s.SetTerm("abc")

	waitFor(t, func() bool { return len(cat.recordedSearches()) > 0 })
	time.Sleep(3 * testDebounce) // long enough for any stray timer to fire

	searches := cat.recordedSearches()
	if len(searches) != 1 {
		t.Fatalf("expected exactly one query, got %v", searches)
	}
	if searches[0] != "abc" {
		t.Errorf("expected query for final term abc, got %s", searches[0])
	}
}

func TestStaleSuggestionDiscard(t *testing.T) {
	cat := newMockCatalog()
	roGate := make(chan struct{})
	cat.suggestGates["ro"] = roGate

	s := New(cat, nil, shared.NewLogger(nil), WithDebounce(testDebounce))

	s.SetTerm("ro") // suggestion fetch blocks on the gate
	s.SetTerm("rock")

	waitFor(t, func() bool {
		snap := s.State()
		return len(snap.Suggestions) == 1 && snap.Suggestions[0].Value == "rock-tag"
	})

	// Let the stale "ro" fetch land late; it must be discarded.
	close(roGate)
	time.Sleep(3 * testDebounce)

	snap := s.State()
	if len(snap.Suggestions) != 1 || snap.Suggestions[0].Value != "rock-tag" {
		t.Errorf("stale suggestion overwrote newer state: %v", snap.Suggestions)
	}
}

func TestSearchFailureKeepsResults(t *testing.T) {
	cat := newMockCatalog()
	cat.songs = []models.Song{{ID: "1", Title: "Kept"}}

	s := New(cat, nil, shared.NewLogger(nil), WithDebounce(testDebounce))

	s.SetTerm("first")
	waitFor(t, func() bool { return len(s.State().Results) == 1 })

	cat.mu.Lock()
	cat.searchErr = errors.New("boom")
	cat.mu.Unlock()

	s.SetTerm("second")
	waitFor(t, func() bool { return s.State().ErrMsg != "" })

	snap := s.State()
	if len(snap.Results) != 1 || snap.Results[0].Title != "Kept" {
		t.Errorf("failed search must keep previous results, got %v", snap.Results)
	}
	if snap.Loading {
		t.Error("loading flag should clear after failure")
	}
}

func TestHistory(t *testing.T) {
	t.Run("MostRecentFirstDeduplicated", func(t *testing.T) {
		s := New(newMockCatalog(), nil, shared.NewLogger(nil), WithDebounce(testDebounce))

		s.RecordHistory("jazz")
		s.RecordHistory("rock")
		s.RecordHistory("jazz")

		got := s.History()
		if len(got) != 2 || got[0] != "jazz" || got[1] != "rock" {
			t.Errorf("expected [jazz rock], got %v", got)
		}
	})

	t.Run("CappedAtTen", func(t *testing.T) {
		s := New(newMockCatalog(), nil, shared.NewLogger(nil), WithDebounce(testDebounce))

		terms := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
		for _, term := range terms {
			s.RecordHistory(term)
		}

		got := s.History()
		if len(got) != 10 {
			t.Fatalf("expected history capped at 10, got %d", len(got))
		}
		if got[0] != "l" || got[9] != "c" {
			t.Errorf("expected most-recent-first window, got %v", got)
		}
	})

	t.Run("PersistsAndRestores", func(t *testing.T) {
		history := &memHistory{}
		s := New(newMockCatalog(), history, shared.NewLogger(nil), WithDebounce(testDebounce))
		s.RecordHistory("persisted")

		restored := New(newMockCatalog(), history, shared.NewLogger(nil), WithDebounce(testDebounce))
		got := restored.History()
		if len(got) != 1 || got[0] != "persisted" {
			t.Errorf("expected restored history, got %v", got)
		}
	})

	t.Run("ClearHistory", func(t *testing.T) {
		history := &memHistory{terms: []string{"old"}}
		s := New(newMockCatalog(), history, shared.NewLogger(nil), WithDebounce(testDebounce))

		s.ClearHistory()
		if got := s.History(); len(got) != 0 {
			t.Errorf("expected empty history, got %v", got)
		}
		if got := history.SearchHistory(); len(got) != 0 {
			t.Errorf("expected persisted history cleared, got %v", got)
		}
	})
}

func TestPagination(t *testing.T) {
	cat := newMockCatalog()
	for i := 0; i < 45; i++ {
		cat.songs = append(cat.songs, models.Song{ID: shared.GenerateID(), Title: "song"})
	}

	s := New(cat, nil, shared.NewLogger(nil), WithDebounce(testDebounce))
	s.SetTerm("song")
	waitFor(t, func() bool { return s.State().TotalCount == 45 })

	snap := s.State()
	if len(snap.Results) != 20 || !snap.HasMore {
		t.Fatalf("expected first page of 20 with more, got %d (hasMore=%v)", len(snap.Results), snap.HasMore)
	}

	s.NextPage()
	snap = s.State()
	if len(snap.Results) != 40 || !snap.HasMore {
		t.Fatalf("expected 40 visible with more, got %d (hasMore=%v)", len(snap.Results), snap.HasMore)
	}

	s.NextPage()
	snap = s.State()
	if len(snap.Results) != 45 || snap.HasMore {
		t.Fatalf("expected all 45 visible, got %d (hasMore=%v)", len(snap.Results), snap.HasMore)
	}

	// Past the end: no-op.
	s.NextPage()
	if got := s.State().Page; got != 2 {
		t.Errorf("expected page pinned at 2, got %d", got)
	}
}

func TestFilters(t *testing.T) {
	cat := newMockCatalog()
	s := New(cat, nil, shared.NewLogger(nil), WithDebounce(testDebounce))

	s.SetFilters(catalog.Filters{Tags: []string{"rock"}})
	waitFor(t, func() bool { return len(cat.recordedSearches()) == 1 })

	snap := s.State()
	if len(snap.Filters.Tags) != 1 || snap.Filters.Tags[0] != "rock" {
		t.Errorf("expected rock tag filter, got %v", snap.Filters)
	}
}
