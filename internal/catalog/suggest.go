package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/songbox/internal/models"
)

// suggestLimit caps the combined number of suggestions returned.
const suggestLimit = 10

// Suggest returns tag and artist names starting with prefix, tags first.
func (s *Service) Suggest(ctx context.Context, prefix string) ([]models.Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, nil
	}
	pattern := strings.ToLower(prefix) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT 'tag' AS kind, name FROM tags WHERE LOWER(name) LIKE ?
		UNION ALL
		SELECT 'artist' AS kind, name FROM artists WHERE LOWER(name) LIKE ?
		ORDER BY kind DESC, name
		LIMIT ?
	`, pattern, pattern, suggestLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []models.Suggestion
	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, models.Suggestion{
			Kind:  models.SuggestionKind(kind),
			Value: value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return suggestions, nil
}
