package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	svc := New(db, shared.NewLogger(nil))
	if err := svc.SeedPlatforms(context.Background()); err != nil {
		t.Fatalf("failed to seed platforms: %v", err)
	}
	return svc
}

func platformID(t *testing.T, svc *Service, name string) string {
	t.Helper()
	platforms, err := svc.GetPlatforms(context.Background())
	if err != nil {
		t.Fatalf("failed to list platforms: %v", err)
	}
	for _, p := range platforms {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("platform %s not seeded", name)
	return ""
}

func TestCreateSong(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesWithRelatedEntities", func(t *testing.T) {
		svc := newTestService(t)
		ytID := platformID(t, svc, "YouTube")

		song, err := svc.CreateSong(ctx, models.NewSong{
			Title:       "Resonance",
			Description: "synthwave staple",
			Artists:     []string{"Home"},
			Tags:        []string{"synthwave", "electronic"},
			Links: []models.NewLink{
				{URL: "https://www.youtube.com/watch?v=8GW6sLrK40k", PlatformID: ytID},
			},
		})
		if err != nil {
			t.Fatalf("failed to create song: %v", err)
		}

		if song.Title != "Resonance" {
			t.Errorf("expected title Resonance, got %s", song.Title)
		}
		if len(song.Artists) != 1 || song.Artists[0].Name != "Home" {
			t.Errorf("expected artist Home, got %v", song.Artists)
		}
		if len(song.Tags) != 2 {
			t.Errorf("expected 2 tags, got %d", len(song.Tags))
		}
		if len(song.Links) != 1 || song.Links[0].PlatformName != "YouTube" {
			t.Errorf("expected youtube link, got %v", song.Links)
		}
	})

	t.Run("ReusesArtistAndTagRowsByName", func(t *testing.T) {
		svc := newTestService(t)

		first, err := svc.CreateSong(ctx, models.NewSong{Title: "One", Artists: []string{"Shared"}, Tags: []string{"rock"}})
		if err != nil {
			t.Fatalf("failed to create first song: %v", err)
		}
		second, err := svc.CreateSong(ctx, models.NewSong{Title: "Two", Artists: []string{"Shared"}, Tags: []string{"rock"}})
		if err != nil {
			t.Fatalf("failed to create second song: %v", err)
		}

		if first.Artists[0].ID != second.Artists[0].ID {
			t.Error("expected artist row to be reused by name")
		}
		if first.Tags[0].ID != second.Tags[0].ID {
			t.Error("expected tag row to be reused by name")
		}
	})

	t.Run("RejectsMissingTitle", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.CreateSong(ctx, models.NewSong{Title: "  "})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("FailedLinkRollsBackEverything", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.CreateSong(ctx, models.NewSong{
			Title:   "Orphan",
			Artists: []string{"Nobody"},
			Links:   []models.NewLink{{URL: "https://x", PlatformID: "missing-platform"}},
		})
		if !errors.Is(err, shared.ErrPlatformNotFound) {
			t.Fatalf("expected ErrPlatformNotFound, got %v", err)
		}

		songs, err := svc.ListSongs(ctx)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected rollback to leave no songs, got %d", len(songs))
		}

		// The artist created mid-transaction must be gone too.
		suggestions, err := svc.Suggest(ctx, "Nobody")
		if err != nil {
			t.Fatalf("failed to query suggestions: %v", err)
		}
		if len(suggestions) != 0 {
			t.Errorf("expected no orphaned artist rows, got %v", suggestions)
		}
	})

	t.Run("NotifiesSubscribers", func(t *testing.T) {
		svc := newTestService(t)
		var changes []Change
		svc.SubscribeToChanges(func(c Change) { changes = append(changes, c) })

		song, err := svc.CreateSong(ctx, models.NewSong{Title: "Notify"})
		if err != nil {
			t.Fatalf("failed to create song: %v", err)
		}

		if len(changes) != 1 || changes[0].Op != ChangeCreated || changes[0].SongID != song.ID {
			t.Errorf("expected created change for %s, got %v", song.ID, changes)
		}
	})
}

func TestSearchSongs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	seed := []models.NewSong{
		{Title: "Midnight City", Description: "m83 classic", Artists: []string{"M83"}, Tags: []string{"electronic"}},
		{Title: "Holocene", Description: "quiet folk", Artists: []string{"Bon Iver"}, Tags: []string{"folk"}},
		{Title: "City Lights", Description: "night drive", Artists: []string{"M83"}, Tags: []string{"electronic", "night"}},
	}
	for _, s := range seed {
		if _, err := svc.CreateSong(ctx, s); err != nil {
			t.Fatalf("failed to seed song %s: %v", s.Title, err)
		}
	}

	t.Run("MatchesTitleSubstring", func(t *testing.T) {
		songs, err := svc.SearchSongs(ctx, "city")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected 2 matches for city, got %d", len(songs))
		}
	})

	t.Run("MatchesDescriptionSubstring", func(t *testing.T) {
		songs, err := svc.SearchSongs(ctx, "folk")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(songs) != 1 || songs[0].Title != "Holocene" {
			t.Errorf("expected Holocene, got %v", songs)
		}
	})

	t.Run("EmptyResultIsNotAnError", func(t *testing.T) {
		songs, err := svc.SearchSongs(ctx, "zzzzz")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected no matches, got %d", len(songs))
		}
	})

	t.Run("FiltersByTag", func(t *testing.T) {
		songs, err := svc.SearchSongsFiltered(ctx, "", Filters{Tags: []string{"electronic"}})
		if err != nil {
			t.Fatalf("filtered search failed: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected 2 electronic songs, got %d", len(songs))
		}
	})

	t.Run("FiltersByArtistAndTerm", func(t *testing.T) {
		songs, err := svc.SearchSongsFiltered(ctx, "midnight", Filters{Artists: []string{"M83"}})
		if err != nil {
			t.Fatalf("filtered search failed: %v", err)
		}
		if len(songs) != 1 || songs[0].Title != "Midnight City" {
			t.Errorf("expected Midnight City, got %v", songs)
		}
	})

	t.Run("FiltersByDateRange", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		songs, err := svc.SearchSongsFiltered(ctx, "", Filters{From: &future})
		if err != nil {
			t.Fatalf("filtered search failed: %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected no songs created in the future, got %d", len(songs))
		}
	})
}

func TestDeleteSong(t *testing.T) {
	ctx := context.Background()

	t.Run("CascadesDependentRows", func(t *testing.T) {
		svc := newTestService(t)
		ytID := platformID(t, svc, "YouTube")

		song, err := svc.CreateSong(ctx, models.NewSong{
			Title:   "Gone Soon",
			Artists: []string{"Ephemeral"},
			Tags:    []string{"temp"},
			Links:   []models.NewLink{{URL: "https://youtu.be/abc", PlatformID: ytID}},
		})
		if err != nil {
			t.Fatalf("failed to create song: %v", err)
		}

		if err := svc.DeleteSong(ctx, song.ID); err != nil {
			t.Fatalf("failed to delete song: %v", err)
		}

		songs, err := svc.ListSongs(ctx)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected empty catalog after delete, got %d songs", len(songs))
		}
	})

	t.Run("MissingIDReturnsNotFound", func(t *testing.T) {
		svc := newTestService(t)
		err := svc.DeleteSong(ctx, "no-such-id")
		if !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})
}

func TestSuggest(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.CreateSong(ctx, models.NewSong{
		Title:   "Seeded",
		Artists: []string{"Radiohead", "Rancid"},
		Tags:    []string{"rock", "raga"},
	}); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	t.Run("PrefixMatchesTagsAndArtists", func(t *testing.T) {
		suggestions, err := svc.Suggest(ctx, "ra")
		if err != nil {
			t.Fatalf("suggest failed: %v", err)
		}
		// raga (tag), Radiohead + Rancid (artists); "rock" does not match.
		if len(suggestions) != 3 {
			t.Fatalf("expected 3 suggestions, got %v", suggestions)
		}
		if suggestions[0].Kind != models.SuggestionTag {
			t.Errorf("expected tags ordered first, got %v", suggestions[0])
		}
	})

	t.Run("EmptyPrefixReturnsNothing", func(t *testing.T) {
		suggestions, err := svc.Suggest(ctx, "   ")
		if err != nil {
			t.Fatalf("suggest failed: %v", err)
		}
		if suggestions != nil {
			t.Errorf("expected nil for empty prefix, got %v", suggestions)
		}
	})
}
