package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/resonance/internal/formatter"
	"github.com/desertthunder/resonance/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the catalog: Spotify when connected, the built-in catalog
// otherwise.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	outputPath := cmd.String("output")

	if query == "" {
		return fmt.Errorf("%w: usage: resonance search <query>", shared.ErrMissingArgument)
	}

	provider, err := r.Provider()
	if err != nil {
		return err
	}

	r.logger.Infof("searching catalog for %q", query)

	results, err := provider.SearchAll(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if outputPath != "" {
		path, err := formatter.WriteTracksCSV(results.Tracks, outputPath)
		if err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		r.writePlain("✓ %d tracks written to %s\n", len(results.Tracks), path)
		return nil
	}

	if useJSON {
		return r.writeJSON(results, pretty)
	}

	return r.writeBytes(formatter.ResultsToText(results))
}

// Playlists lists the connected user's Spotify playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	provider, err := r.Provider()
	if err != nil {
		return err
	}

	if !provider.Connected() {
		r.writePlain("Not connected to Spotify. Run: resonance auth connect\n")
		return nil
	}

	playlists := provider.UserPlaylists(ctx)

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	if len(playlists) == 0 {
		r.writePlain("No playlists found.\n")
		return nil
	}

	return r.writeBytes(formatter.PlaylistsToText(playlists))
}

// PlaylistTracks lists the tracks of a Spotify playlist.
func (r *Runner) PlaylistTracks(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	provider, err := r.Provider()
	if err != nil {
		return err
	}

	tracks, err := provider.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to load playlist tracks: %w", err)
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	return r.writeBytes(formatter.TracksToText(tracks))
}

// Popular prints the built-in popular track list.
func (r *Runner) Popular(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	provider, err := r.Provider()
	if err != nil {
		return err
	}

	tracks := provider.PopularTracks()

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	return r.writeBytes(formatter.TracksToText(tracks))
}

// Recommend prints same-artist recommendations for a built-in catalog track.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	trackID := cmd.String("id")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	provider, err := r.Provider()
	if err != nil {
		return err
	}

	reference, err := provider.TrackByID(trackID)
	if err != nil {
		return fmt.Errorf("failed to look up track %s: %w", trackID, err)
	}

	recommendations := provider.Recommendations(trackID)

	if useJSON {
		return r.writeJSON(recommendations, pretty)
	}

	r.writePlain("Because you listened to %s - %s:\n\n", reference.Artist, reference.Title)
	if len(recommendations) == 0 {
		r.writePlain("No similar tracks in the catalog.\n")
		return nil
	}

	return r.writeBytes(formatter.TracksToText(recommendations))
}
