package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/songbox/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	for _, path := range []string{"config.toml", shared.DefaultConfigPath()} {
		if _, err := os.Stat(path); err == nil {
			if loaded, err := shared.LoadConfig(path); err == nil {
				config = loaded
				break
			}
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "songbox",
		Usage:    "Browse, share, and play a music catalog from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
