package catalog

import (
	"context"
	"fmt"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
)

// defaultPlatforms seeds the platform table on setup.
var defaultPlatforms = []models.PlatformInfo{
	{Name: "YouTube", IconURL: "https://www.youtube.com/favicon.ico"},
	{Name: "Spotify", IconURL: "https://open.spotify.com/favicon.ico"},
}

// GetPlatforms returns all known platforms.
func (s *Service) GetPlatforms(ctx context.Context) ([]models.PlatformInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, icon_url FROM platforms ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query platforms: %w", err)
	}
	defer rows.Close()

	var platforms []models.PlatformInfo
	for rows.Next() {
		var p models.PlatformInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.IconURL); err != nil {
			return nil, fmt.Errorf("failed to scan platform: %w", err)
		}
		platforms = append(platforms, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return platforms, nil
}

// SeedPlatforms inserts the default platform rows, skipping names that
// already exist. Safe to run repeatedly.
func (s *Service) SeedPlatforms(ctx context.Context) error {
	for _, p := range defaultPlatforms {
		_, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO platforms (id, name, icon_url) VALUES (?, ?, ?)
		`, shared.GenerateID(), p.Name, p.IconURL)
		if err != nil {
			return fmt.Errorf("failed to seed platform %s: %w", p.Name, err)
		}
	}
	return nil
}
