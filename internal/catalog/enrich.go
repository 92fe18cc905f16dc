package catalog

import (
	"context"
	"fmt"
	"strings"
)

// ApplyEnrichment fills in resolved metadata for a song: a description when
// the stored one is empty, and artist rows attached by name. Runs in a single
// transaction like CreateSong.
func (s *Service) ApplyEnrichment(ctx context.Context, songID, description string, artistNames []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if description = strings.TrimSpace(description); description != "" {
		_, err = tx.ExecContext(ctx, `
			UPDATE songs SET description = ? WHERE id = ? AND description = ''
		`, description, songID)
		if err != nil {
			return fmt.Errorf("failed to update description: %w", err)
		}
	}

	for _, name := range artistNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		artistID, err := upsertNamed(ctx, tx, "artists", name)
		if err != nil {
			return fmt.Errorf("failed to resolve artist %s: %w", name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO song_artists (song_id, artist_id) VALUES (?, ?)
		`, songID, artistID)
		if err != nil {
			return fmt.Errorf("failed to link artist %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit enrichment: %w", err)
	}

	s.notify(Change{Op: ChangeUpdated, SongID: songID})
	return nil
}
