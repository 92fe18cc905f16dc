package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Play launches the TUI with the given URL queued and playing.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	if models.ClassifyURL(url) == models.PlatformUnknown {
		return fmt.Errorf("%w: no player available for %s", shared.ErrInvalidInput, url)
	}

	return r.runTUI(ctx, url)
}
