package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/resonance/internal/models"
	"github.com/desertthunder/resonance/internal/shared"
)

//go:embed tracks.toml
var builtinTracks []byte

const (
	localSearchLimit     = 10
	popularLimit         = 20
	recommendationsLimit = 5
)

// LocalCatalog is the fixed read-only track list shipped with the player,
// used for offline and unauthenticated operation.
type LocalCatalog struct {
	tracks []models.Track
}

// NewLocalCatalog parses the embedded track list.
func NewLocalCatalog() *LocalCatalog {
	var data struct {
		Tracks []models.Track `toml:"tracks"`
	}
	if err := toml.Unmarshal(builtinTracks, &data); err != nil {
		panic(fmt.Sprintf("failed to parse embedded catalog: %v", err))
	}
	return &LocalCatalog{tracks: data.Tracks}
}

// Search returns tracks whose title, artist or album contains the query,
// case-insensitively, capped at 10 matches.
func (c *LocalCatalog) Search(query string) []models.Track {
	term := strings.ToLower(query)

	matches := []models.Track{}
	for _, track := range c.tracks {
		if strings.Contains(strings.ToLower(track.Title), term) ||
			strings.Contains(strings.ToLower(track.Artist), term) ||
			strings.Contains(strings.ToLower(track.Album), term) {
			matches = append(matches, track)
			if len(matches) == localSearchLimit {
				break
			}
		}
	}

	return matches
}

// Popular returns the first 20 tracks of the catalog.
func (c *LocalCatalog) Popular() []models.Track {
	n := len(c.tracks)
	if n > popularLimit {
		n = popularLimit
	}

	tracks := make([]models.Track, n)
	copy(tracks, c.tracks[:n])
	return tracks
}

// TrackByID looks up a track by its identifier.
func (c *LocalCatalog) TrackByID(id string) (models.Track, error) {
	for _, track := range c.tracks {
		if track.ID == id {
			return track, nil
		}
	}
	return models.Track{}, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
}

// Recommendations returns up to 5 tracks sharing the reference track's
// artist, excluding the reference itself. Unknown ids yield an empty list.
func (c *LocalCatalog) Recommendations(trackID string) []models.Track {
	reference, err := c.TrackByID(trackID)
	if err != nil {
		return []models.Track{}
	}

	matches := []models.Track{}
	for _, track := range c.tracks {
		if track.ID == reference.ID || track.Artist != reference.Artist {
			continue
		}
		matches = append(matches, track)
		if len(matches) == recommendationsLimit {
			break
		}
	}

	return matches
}
