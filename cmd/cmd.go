// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, searchCommand, playlistsCommand, popularCommand, recommendCommand, playCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// setupCommand initializes the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file and database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the Spotify credential lifecycle.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the Spotify connection",
		Commands: []*cli.Command{
			{
				Name:  "connect",
				Usage: "Save credentials and run the OAuth2 authorization flow",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "Spotify client ID (falls back to config, then stored value)",
					},
					&cli.StringFlag{
						Name:  "secret",
						Usage: "Spotify client secret (falls back to config, then stored value)",
					},
				},
				Action: r.AuthConnect,
			},
			{
				Name:   "status",
				Usage:  "Check the Spotify connection by fetching the user profile",
				Action: r.AuthStatus,
			},
			{
				Name:   "disconnect",
				Usage:  "Clear stored credentials and tokens",
				Action: r.AuthDisconnect,
			},
		},
	}
}

// searchCommand searches the catalog (Spotify when connected, built-in otherwise).
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Search for tracks and playlists",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write matched tracks to a CSV file",
			},
		},
		Action: r.Search,
	}
}

// playlistsCommand lists the connected user's playlists and their tracks.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Spotify playlist operations",
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
		Action: r.Playlists,
		Commands: []*cli.Command{
			{
				Name:  "tracks",
				Usage: "List the tracks of a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
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
				Action: r.PlaylistTracks,
			},
		},
	}
}

// popularCommand prints the built-in popular track list.
func popularCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "popular",
		Usage: "Show popular tracks from the built-in catalog",
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
		Action: r.Popular,
	}
}

// recommendCommand prints same-artist recommendations for a catalog track.
func recommendCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Recommend tracks similar to a built-in catalog track",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Reference track ID",
				Required: true,
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
		Action: r.Recommend,
	}
}

// playCommand launches the interactive player TUI.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "play",
		Aliases: []string{"tui"},
		Usage:   "Launch the interactive player",
		Action:  r.Play,
	}
}
