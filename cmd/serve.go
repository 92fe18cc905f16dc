package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/songbox/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the embed host in the foreground until interrupted. Useful for
// debugging the player page without the TUI.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := server.NewEmbedHost(r.config.Server, r.logger)

	if err := host.Start(); err != nil {
		return fmt.Errorf("failed to start embed host: %w", err)
	}

	r.logger.Info("embed host listening", "url", host.BaseURL())
	r.writePlain("Embed host listening at %s (ctrl+c to stop)\n", host.BaseURL())

	<-ctx.Done()
	return nil
}
