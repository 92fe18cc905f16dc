package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/songbox/internal/catalog"
	"github.com/desertthunder/songbox/internal/formatter"
	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/resolve"
	"github.com/desertthunder/songbox/internal/shared"
	"github.com/urfave/cli/v3"
)

// SongsList prints every catalog entry.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	db, svc, _, err := r.openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	songs, err := svc.ListSongs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		return r.writePlain("Catalog is empty. Add songs with 'songbox songs add'.\n")
	}
	return r.printSongs(songs)
}

// SongsSearch runs a term and facet query against the catalog.
func (r *Runner) SongsSearch(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")

	db, svc, _, err := r.openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	filters := catalog.Filters{
		Tags:    cmd.StringSlice("tag"),
		Artists: cmd.StringSlice("artist"),
	}

	songs, err := svc.SearchSongsFiltered(ctx, term, filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		return r.writePlain("No songs matched.\n")
	}
	return r.printSongs(songs)
}

// SongsAdd submits a song. Link platforms are detected from each URL; with
// --resolve the first link's oEmbed metadata fills missing fields.
func (r *Runner) SongsAdd(ctx context.Context, cmd *cli.Command) error {
	db, svc, _, err := r.openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	input := models.NewSong{
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
		Artists:     cmd.StringSlice("artist"),
		Tags:        cmd.StringSlice("tag"),
	}

	platforms, err := svc.GetPlatforms(ctx)
	if err != nil {
		return fmt.Errorf("failed to list platforms: %w", err)
	}

	for _, url := range cmd.StringSlice("url") {
		platformID, err := platformIDForURL(platforms, url)
		if err != nil {
			return err
		}
		input.Links = append(input.Links, models.NewLink{URL: url, PlatformID: platformID})
	}

	if cmd.Bool("resolve") && len(input.Links) > 0 {
		resolver := resolve.New(r.config.Resolver, r.httpClient, r.logger)
		if meta, err := resolver.Resolve(ctx, input.Links[0].URL); err != nil {
			r.logger.Warn("metadata resolution failed, submitting as-is", "err", err)
		} else {
			if input.Description == "" {
				input.Description = meta.Title
			}
			if len(input.Artists) == 0 && meta.AuthorName != "" {
				input.Artists = []string{meta.AuthorName}
			}
		}
	}

	song, err := svc.CreateSong(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create song: %w", err)
	}

	r.writePlain("✓ Added '%s' (%s)\n", song.Title, song.ID)
	return nil
}

// SongsDelete removes a song by id.
func (r *Runner) SongsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	db, svc, _, err := r.openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := svc.DeleteSong(ctx, id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	r.writePlain("✓ Deleted %s\n", id)
	return nil
}

// SongsExport writes the catalog to a file in the requested format.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	db, svc, _, err := r.openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	songs, err := svc.ListSongs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	path, err := formatter.WriteCatalogExport(songs, cmd.String("output"), cmd.String("format"))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("✓ Exported %d songs to %s\n", len(songs), path)
	return nil
}

// Platforms lists known platforms.
func (r *Runner) Platforms(ctx context.Context, cmd *cli.Command) error {
	db, svc, _, err := r.openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	platforms, err := svc.GetPlatforms(ctx)
	if err != nil {
		return fmt.Errorf("failed to list platforms: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(platforms, cmd.Bool("pretty"))
	}

	for _, p := range platforms {
		r.writePlain("%s  %s\n", p.ID, p.Name)
	}
	return nil
}

func (r *Runner) printSongs(songs []models.Song) error {
	for _, song := range songs {
		line := song.Title
		if artist := song.PrimaryArtist(); artist != "" {
			line += " — " + artist
		}
		if len(song.Tags) > 0 {
			names := make([]string, len(song.Tags))
			for i, tag := range song.Tags {
				names[i] = tag.Name
			}
			line += " [" + strings.Join(names, ", ") + "]"
		}
		if err := r.writePlain("%s\n  %s\n", line, song.ID); err != nil {
			return err
		}
		for _, link := range song.Links {
			if err := r.writePlain("  %s: %s\n", link.PlatformName, link.URL); err != nil {
				return err
			}
		}
	}
	return nil
}

// platformIDForURL maps a URL to a seeded platform row by classification.
func platformIDForURL(platforms []models.PlatformInfo, url string) (string, error) {
	var want string
	switch models.ClassifyURL(url) {
	case models.PlatformYouTube:
		want = "YouTube"
	case models.PlatformSpotify:
		want = "Spotify"
	default:
		return "", fmt.Errorf("%w: unrecognized platform for %s", shared.ErrInvalidInput, url)
	}

	for _, p := range platforms {
		if p.Name == want {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s (run 'songbox setup' to seed platforms)", shared.ErrPlatformNotFound, want)
}
