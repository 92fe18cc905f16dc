package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
)

// Filters narrows a search along facet dimensions. Empty slices and nil
// bounds mean "no constraint" for that dimension.
type Filters struct {
	Tags      []string
	Artists   []string
	Platforms []string
	From      *time.Time
	To        *time.Time
}

// ListSongs returns all songs, newest first, with related entities attached.
func (s *Service) ListSongs(ctx context.Context) ([]models.Song, error) {
	return s.querySongs(ctx, `
		SELECT id, title, description, created_at
		FROM songs
		ORDER BY created_at DESC
	`)
}

// SearchSongs returns songs whose title or description contains term
// (case-insensitive), newest first.
func (s *Service) SearchSongs(ctx context.Context, term string) ([]models.Song, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	return s.querySongs(ctx, `
		SELECT id, title, description, created_at
		FROM songs
		WHERE LOWER(title) LIKE ? OR LOWER(description) LIKE ?
		ORDER BY created_at DESC
	`, pattern, pattern)
}

// SearchSongsFiltered combines substring search with facet filters.
func (s *Service) SearchSongsFiltered(ctx context.Context, term string, filters Filters) ([]models.Song, error) {
	query := `
		SELECT DISTINCT s.id, s.title, s.description, s.created_at
		FROM songs s
	`
	var conds []string
	var args []any

	if len(filters.Tags) > 0 {
		query += `
		JOIN song_tags st ON st.song_id = s.id
		JOIN tags t ON t.id = st.tag_id
		`
		conds = append(conds, "t.name IN ("+placeholders(len(filters.Tags))+")")
		for _, tag := range filters.Tags {
			args = append(args, tag)
		}
	}

	if len(filters.Artists) > 0 {
		query += `
		JOIN song_artists sa ON sa.song_id = s.id
		JOIN artists a ON a.id = sa.artist_id
		`
		conds = append(conds, "a.name IN ("+placeholders(len(filters.Artists))+")")
		for _, artist := range filters.Artists {
			args = append(args, artist)
		}
	}

	if len(filters.Platforms) > 0 {
		query += `
		JOIN links l ON l.song_id = s.id
		JOIN platforms p ON p.id = l.platform_id
		`
		conds = append(conds, "p.name IN ("+placeholders(len(filters.Platforms))+")")
		for _, platform := range filters.Platforms {
			args = append(args, platform)
		}
	}

	if term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		conds = append(conds, "(LOWER(s.title) LIKE ? OR LOWER(s.description) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	if filters.From != nil {
		conds = append(conds, "s.created_at >= ?")
		args = append(args, *filters.From)
	}
	if filters.To != nil {
		conds = append(conds, "s.created_at <= ?")
		args = append(args, *filters.To)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY s.created_at DESC"

	return s.querySongs(ctx, query, args...)
}

// GetSong retrieves one song by ID with related entities attached.
func (s *Service) GetSong(ctx context.Context, id string) (models.Song, error) {
	songs, err := s.querySongs(ctx, `
		SELECT id, title, description, created_at
		FROM songs
		WHERE id = ?
	`, id)
	if err != nil {
		return models.Song{}, err
	}
	if len(songs) == 0 {
		return models.Song{}, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	return songs[0], nil
}

// querySongs runs a song query and hydrates artists, tags, and links for each
// result.
func (s *Service) querySongs(ctx context.Context, query string, args ...any) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Description, &song.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range songs {
		if err := s.hydrate(ctx, &songs[i]); err != nil {
			return nil, err
		}
	}

	return songs, nil
}

// hydrate attaches artists, tags, and links to a song.
func (s *Service) hydrate(ctx context.Context, song *models.Song) error {
	artistRows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name
		FROM artists a
		JOIN song_artists sa ON sa.artist_id = a.id
		WHERE sa.song_id = ?
		ORDER BY a.name
	`, song.ID)
	if err != nil {
		return fmt.Errorf("failed to query artists: %w", err)
	}
	defer artistRows.Close()

	for artistRows.Next() {
		var artist models.Artist
		if err := artistRows.Scan(&artist.ID, &artist.Name); err != nil {
			return fmt.Errorf("failed to scan artist: %w", err)
		}
		song.Artists = append(song.Artists, artist)
	}
	if err := artistRows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	tagRows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM tags t
		JOIN song_tags st ON st.tag_id = t.id
		WHERE st.song_id = ?
		ORDER BY t.name
	`, song.ID)
	if err != nil {
		return fmt.Errorf("failed to query tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var tag models.Tag
		if err := tagRows.Scan(&tag.ID, &tag.Name); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		song.Tags = append(song.Tags, tag)
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	linkRows, err := s.db.QueryContext(ctx, `
		SELECT l.url, l.platform_id, p.name, p.icon_url
		FROM links l
		JOIN platforms p ON p.id = l.platform_id
		WHERE l.song_id = ?
		ORDER BY l.url
	`, song.ID)
	if err != nil {
		return fmt.Errorf("failed to query links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var link models.Link
		if err := linkRows.Scan(&link.URL, &link.PlatformID, &link.PlatformName, &link.PlatformIconURL); err != nil {
			return fmt.Errorf("failed to scan link: %w", err)
		}
		song.Links = append(song.Links, link)
	}
	if err := linkRows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	return nil
}

// placeholders builds a "?, ?, ?" list of length n.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
