package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/songbox/internal/resolve"
	"github.com/desertthunder/songbox/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Enrich fills in missing song metadata from each link's oEmbed endpoint,
// printing progress as it goes.
func (r *Runner) Enrich(ctx context.Context, cmd *cli.Command) error {
	db, svc, _, err := r.openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	resolver := resolve.New(r.config.Resolver, r.httpClient, r.logger)
	engine := tasks.NewEnrichEngine(svc, resolver)

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.Run(ctx, progress)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	r.writePlainln("Scanned %d songs: %d enriched, %d skipped, %d failed",
		result.Scanned, result.Enriched, result.Skipped, result.Failed)
	for _, failure := range result.Failures {
		r.writePlain("  ✗ %s: %v\n", failure.Title, failure.Err)
	}
	return nil
}
