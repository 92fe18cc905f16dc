// package tasks implements long-running catalog maintenance operations.
//
// The core abstraction is EnrichEngine, which walks the catalog and fills in
// missing display metadata from each song's primary link. Operations emit
// progress updates via channels for non-blocking status reporting to the CLI
// or UI layer.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/resolve"
	"github.com/desertthunder/songbox/internal/shared"
)

// Catalog is the slice of the catalog service the engine consumes.
type Catalog interface {
	ListSongs(ctx context.Context) ([]models.Song, error)
	ApplyEnrichment(ctx context.Context, songID, description string, artistNames []string) error
}

// Resolver fetches link metadata. Implemented by the resolve client.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*resolve.Metadata, error)
}

// EnrichFailure records one song the engine could not enrich.
type EnrichFailure struct {
	SongID string
	Title  string
	Err    error
}

// EnrichResult contains all data from a full enrichment run.
type EnrichResult struct {
	Scanned  int             // Songs examined
	Skipped  int             // Songs already complete or without links
	Enriched int             // Songs updated with resolved metadata
	Failed   int             // Songs whose resolution or update failed
	Failures []EnrichFailure // Per-song failure details
}

// EnrichEngine fills in missing song metadata from oEmbed lookups.
type EnrichEngine struct {
	catalog  Catalog
	resolver Resolver
}

// NewEnrichEngine creates an engine over the catalog and resolver.
func NewEnrichEngine(catalog Catalog, resolver Resolver) *EnrichEngine {
	return &EnrichEngine{catalog: catalog, resolver: resolver}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *EnrichEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run performs a full enrichment pass over the catalog.
//
// A song qualifies when it has at least one link and is missing either its
// description or any artist. Per-song failures are collected, not fatal; the
// run only errors when the catalog itself cannot be read.
func (e *EnrichEngine) Run(ctx context.Context, progress chan<- ProgressUpdate) (*EnrichResult, error) {
	if e.catalog == nil || e.resolver == nil {
		return nil, fmt.Errorf("%w: enrichment engine not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, scanCatalogUpdate(1, 1))

	songs, err := e.catalog.ListSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	result := &EnrichResult{Scanned: len(songs)}

	var candidates []models.Song
	for _, song := range songs {
		if needsEnrichment(song) {
			candidates = append(candidates, song)
		} else {
			result.Skipped++
		}
	}

	total := len(candidates)
	for i, song := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		e.sendProgress(progress, resolveLinkUpdate(i+1, total, song))

		meta, err := e.resolver.Resolve(ctx, song.PrimaryLink())
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, EnrichFailure{SongID: song.ID, Title: song.Title, Err: err})
			e.sendProgress(progress, enrichFailedUpdate(i+1, total, song, err))
			continue
		}

		var artists []string
		if meta.AuthorName != "" {
			artists = append(artists, meta.AuthorName)
		}
		if err := e.catalog.ApplyEnrichment(ctx, song.ID, meta.Title, artists); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, EnrichFailure{SongID: song.ID, Title: song.Title, Err: err})
			e.sendProgress(progress, enrichFailedUpdate(i+1, total, song, err))
			continue
		}

		result.Enriched++
		e.sendProgress(progress, enrichedUpdate(i+1, total, song))
	}

	return result, nil
}

// needsEnrichment reports whether a song is missing metadata the resolver can
// supply. Songs without links have nothing to resolve from.
func needsEnrichment(song models.Song) bool {
	if len(song.Links) == 0 {
		return false
	}
	return song.Description == "" || len(song.Artists) == 0
}
