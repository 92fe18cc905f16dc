package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
)

// CreateSong inserts a song with its artists, tags, and links in a single
// transaction. Artist and tag rows are created-or-reused by name. Any failure
// rolls the whole submission back, so a partial create never leaves orphaned
// rows behind.
func (s *Service) CreateSong(ctx context.Context, input models.NewSong) (models.Song, error) {
	if err := input.Validate(); err != nil {
		return models.Song{}, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Song{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	songID := shared.GenerateID()
	createdAt := time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO songs (id, title, description, created_at)
		VALUES (?, ?, ?, ?)
	`, songID, strings.TrimSpace(input.Title), input.Description, createdAt)
	if err != nil {
		return models.Song{}, fmt.Errorf("failed to insert song: %w", err)
	}

	for _, name := range input.Artists {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		artistID, err := upsertNamed(ctx, tx, "artists", name)
		if err != nil {
			return models.Song{}, fmt.Errorf("failed to resolve artist %s: %w", name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO song_artists (song_id, artist_id) VALUES (?, ?)
		`, songID, artistID)
		if err != nil {
			return models.Song{}, fmt.Errorf("failed to link artist %s: %w", name, err)
		}
	}

	for _, name := range input.Tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tagID, err := upsertNamed(ctx, tx, "tags", name)
		if err != nil {
			return models.Song{}, fmt.Errorf("failed to resolve tag %s: %w", name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO song_tags (song_id, tag_id) VALUES (?, ?)
		`, songID, tagID)
		if err != nil {
			return models.Song{}, fmt.Errorf("failed to link tag %s: %w", name, err)
		}
	}

	for _, link := range input.Links {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM platforms WHERE id = ?)", link.PlatformID,
		).Scan(&exists)
		if err != nil {
			return models.Song{}, fmt.Errorf("failed to check platform: %w", err)
		}
		if !exists {
			return models.Song{}, fmt.Errorf("%w: %s", shared.ErrPlatformNotFound, link.PlatformID)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO links (id, song_id, url, platform_id) VALUES (?, ?, ?, ?)
		`, shared.GenerateID(), songID, strings.TrimSpace(link.URL), link.PlatformID)
		if err != nil {
			return models.Song{}, fmt.Errorf("failed to insert link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Song{}, fmt.Errorf("failed to commit song: %w", err)
	}

	song, err := s.GetSong(ctx, songID)
	if err != nil {
		return models.Song{}, err
	}

	s.notify(Change{Op: ChangeCreated, SongID: songID})
	return song, nil
}

// DeleteSong removes a song and its dependent join and link rows.
func (s *Service) DeleteSong(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM songs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	s.notify(Change{Op: ChangeDeleted, SongID: id})
	return nil
}

// upsertNamed returns the id for a name in a create-or-reuse table (artists,
// tags), inserting the row when absent.
func upsertNamed(ctx context.Context, tx *sql.Tx, table, name string) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id FROM %s WHERE name = ?", table), name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	id = shared.GenerateID()
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (id, name) VALUES (?, ?)", table), id, name,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}
