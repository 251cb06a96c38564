// package formatter renders tracks, playlists and search results for CLI
// output (plain text, CSV)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/resonance/internal/models"
	"github.com/desertthunder/resonance/internal/shared"
)

// TracksToText renders a numbered track listing with durations.
func TracksToText(tracks []models.Track) []byte {
	var buf bytes.Buffer

	for i, track := range tracks {
		duration := shared.FormatDuration(track.Duration)
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, track.Artist, track.Title, albumPart, duration))
	}

	return buf.Bytes()
}

// PlaylistsToText renders a numbered playlist listing.
func PlaylistsToText(playlists []models.Playlist) []byte {
	var buf bytes.Buffer

	for i, p := range playlists {
		buf.WriteString(fmt.Sprintf("%d. %s — %s (%d tracks)\n", i+1, p.Name, p.Owner, p.TrackCount))
		if p.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", p.Description))
		}
	}

	return buf.Bytes()
}

// ResultsToText renders combined search results with section headers.
func ResultsToText(results models.SearchResults) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Found %d results\n\n", results.Total()))

	if len(results.Tracks) > 0 {
		buf.WriteString("Tracks:\n")
		buf.Write(TracksToText(results.Tracks))
	}

	if len(results.Playlists) > 0 {
		if len(results.Tracks) > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString("Playlists:\n")
		buf.Write(PlaylistsToText(results.Playlists))
	}

	return buf.Bytes()
}

// TracksToCSV converts tracks to CSV with columns: ID, Title, Artist, Album, Duration
func TracksToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			track.Album,
			strconv.Itoa(track.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteTracksCSV writes a CSV track export to the given path.
func WriteTracksCSV(tracks []models.Track, path string) (string, error) {
	if path == "" {
		path = "tracks.csv"
	}

	data, err := TracksToCSV(tracks)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}
