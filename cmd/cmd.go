// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles first-run initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file, initialize the database, and seed platforms",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: r.Setup,
	}
}

// songsCommand handles catalog operations.
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"s"},
		Usage:   "Catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all songs in the catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SongsList,
			},
			{
				Name:  "search",
				Usage: "Search songs by title or description, with optional facets",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "term",
					},
				},
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Filter by tag (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "artist",
						Usage: "Filter by artist (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SongsSearch,
			},
			{
				Name:  "add",
				Usage: "Submit a song to the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Song title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Song description",
					},
					&cli.StringSliceFlag{
						Name:  "artist",
						Usage: "Artist name (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Tag name (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "url",
						Usage: "Playable link (repeatable); platform detected from the URL",
					},
					&cli.BoolFlag{
						Name:  "resolve",
						Usage: "Fill missing metadata from the link's oEmbed endpoint",
					},
				},
				Action: r.SongsAdd,
			},
			{
				Name:  "export",
				Usage: "Export the catalog to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, markdown, or text",
						Value: "csv",
					},
				},
				Action: r.SongsExport,
			},
			{
				Name:  "delete",
				Usage: "Delete a song and its links",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.SongsDelete,
			},
		},
	}
}

// platformsCommand lists known platforms.
func platformsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "platforms",
		Usage: "List known platforms",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Platforms,
	}
}

// playCommand launches the TUI with a link already playing.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Launch the player with a URL queued and playing",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Action: r.Play,
	}
}

// themeCommand reads and writes the persisted theme selection.
func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Manage the persisted color theme",
		Commands: []*cli.Command{
			{
				Name:   "get",
				Usage:  "Print the active theme",
				Action: r.ThemeGet,
			},
			{
				Name:  "set",
				Usage: "Select a theme (light, dark, ocean)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Action: r.ThemeSet,
			},
		},
	}
}

// enrichCommand runs the metadata enrichment engine.
func enrichCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "enrich",
		Usage:  "Fill in missing song metadata from oEmbed lookups",
		Action: r.Enrich,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing and playback.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog browser and player",
		Action:  r.TUI,
	}
}

// serveCommand runs the embed host standalone.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the embed host server in the foreground",
		Action: r.Serve,
	}
}
