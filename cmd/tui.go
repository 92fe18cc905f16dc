package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/player"
	"github.com/desertthunder/songbox/internal/queue"
	"github.com/desertthunder/songbox/internal/search"
	"github.com/desertthunder/songbox/internal/server"
	"github.com/desertthunder/songbox/internal/shared"
	"github.com/desertthunder/songbox/internal/sidebar"
	"github.com/desertthunder/songbox/internal/theme"
	"github.com/desertthunder/songbox/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive catalog browser and player.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	return r.runTUI(ctx, "")
}

// runTUI wires the full player stack and hands the terminal to bubbletea.
// When initialURL is non-empty it starts playing immediately.
func (r *Runner) runTUI(ctx context.Context, initialURL string) error {
	db, svc, prefs, err := r.openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/songbox-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	themes := theme.New(prefs, r.logger)
	q := queue.New()
	host := server.NewEmbedHost(r.config.Server, r.logger)

	open := shared.OpenBrowser
	if !r.config.Player.OpenBrowser {
		open = func(string) error { return nil }
	}

	adapters := map[models.Platform]player.Adapter{
		models.PlatformYouTube: player.NewYouTube(host, r.config.Player.Autoplay, open, r.logger),
		models.PlatformSpotify: player.NewSpotify(r.config.Player.Autoplay, open, r.logger),
	}

	sb := sidebar.New(q, adapters, r.logger)
	defer sb.Close()

	searchStore := search.New(svc, prefs, r.logger)

	if initialURL != "" {
		q.PlayNow(models.QueueItem{
			URL:      initialURL,
			Platform: models.ClassifyURL(initialURL),
		})
	}

	model := ui.NewModel(ctx, svc, searchStore, q, sb, themes)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
