package settings

import (
	"testing"

	"github.com/desertthunder/songbox/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return New(db, shared.NewLogger(nil))
}

func TestSettings(t *testing.T) {
	t.Run("MissingKeyFallsBack", func(t *testing.T) {
		s := newTestStore(t)
		if _, ok := s.Get("nope"); ok {
			t.Error("expected missing key to report not present")
		}
		if got := s.Theme(); got != "" {
			t.Errorf("expected empty theme, got %s", got)
		}
		if got := s.SearchHistory(); got != nil {
			t.Errorf("expected nil history, got %v", got)
		}
	})

	t.Run("SetAndGetRoundTrip", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.SetTheme("ocean"); err != nil {
			t.Fatalf("failed to set theme: %v", err)
		}
		if got := s.Theme(); got != "ocean" {
			t.Errorf("expected ocean, got %s", got)
		}

		if err := s.SetTheme("dark"); err != nil {
			t.Fatalf("failed to overwrite theme: %v", err)
		}
		if got := s.Theme(); got != "dark" {
			t.Errorf("expected dark after overwrite, got %s", got)
		}
	})

	t.Run("SearchHistoryRoundTrip", func(t *testing.T) {
		s := newTestStore(t)
		terms := []string{"rock", "jazz", "lofi"}
		if err := s.SetSearchHistory(terms); err != nil {
			t.Fatalf("failed to persist history: %v", err)
		}

		got := s.SearchHistory()
		if len(got) != 3 || got[0] != "rock" || got[2] != "lofi" {
			t.Errorf("history round trip mismatch: %v", got)
		}
	})

	t.Run("CorruptHistoryFallsBack", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.Set(KeySearchHistory, "{not json"); err != nil {
			t.Fatalf("failed to write corrupt value: %v", err)
		}
		if got := s.SearchHistory(); got != nil {
			t.Errorf("expected nil history for corrupt value, got %v", got)
		}
	})
}
