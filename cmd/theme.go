package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/songbox/internal/shared"
	"github.com/desertthunder/songbox/internal/theme"
	"github.com/urfave/cli/v3"
)

// ThemeGet prints the persisted theme, falling back to the default.
func (r *Runner) ThemeGet(ctx context.Context, cmd *cli.Command) error {
	db, _, prefs, err := r.openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	themes := theme.New(prefs, r.logger)
	return r.writePlain("%s\n", themes.Name())
}

// ThemeSet persists a theme selection for future sessions.
func (r *Runner) ThemeSet(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: theme name (one of: %s)", shared.ErrMissingArgument, strings.Join(theme.Names(), ", "))
	}

	valid := false
	for _, known := range theme.Names() {
		if known == name {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown theme %q (one of: %s)", shared.ErrInvalidArgument, name, strings.Join(theme.Names(), ", "))
	}

	db, _, prefs, err := r.openServices()
	if err != nil {
		return err
	}
	defer db.Close()

	themes := theme.New(prefs, r.logger)
	themes.ChangeTheme(name)

	r.writePlain("✓ Theme set to %s\n", name)
	return nil
}
