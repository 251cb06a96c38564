package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/resonance/internal/models"
	"github.com/desertthunder/resonance/internal/repositories"
	"github.com/desertthunder/resonance/internal/shared"
)

// ErrSuperseded is returned when a search result arrives after a newer
// search has already been issued. Callers should drop the result silently.
var ErrSuperseded = fmt.Errorf("search superseded by a newer query")

// RemoteCatalog is the slice of the Spotify client the provider consumes.
type RemoteCatalog interface {
	Search(ctx context.Context, query, types string) (models.SearchResults, error)
	UserPlaylists(ctx context.Context) ([]models.Playlist, error)
	PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error)
}

// Provider unifies the remote Spotify catalog and the built-in local catalog.
//
// When connected it queries Spotify and degrades to the local catalog on
// any remote failure; when not connected it goes straight to the local
// path. Playlist operations are remote-only.
type Provider struct {
	store     *repositories.CredentialStore
	remote    RemoteCatalog
	local     *LocalCatalog
	logger    *log.Logger
	searchSeq atomic.Uint64
}

// NewProvider creates a catalog provider over the given store, remote client
// and local catalog.
func NewProvider(store *repositories.CredentialStore, remote RemoteCatalog, local *LocalCatalog, logger *log.Logger) *Provider {
	if local == nil {
		local = NewLocalCatalog()
	}
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &Provider{
		store:  store,
		remote: remote,
		local:  local,
		logger: logger,
	}
}

// Connected reports whether a Spotify access token is stored.
func (p *Provider) Connected() bool {
	return p.store.HasAccessToken()
}

// SearchAll searches tracks and playlists for the given query.
//
// Remote failures are logged and swallowed; the search degrades to a local
// catalog substring match with an empty playlist list. A result that has
// been overtaken by a newer search returns [ErrSuperseded] so out-of-order
// completions never clobber fresher ones.
func (p *Provider) SearchAll(ctx context.Context, query string) (models.SearchResults, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return models.SearchResults{}, shared.ErrEmptyQuery
	}

	seq := p.searchSeq.Add(1)

	if p.Connected() && p.remote != nil {
		results, err := p.remote.Search(ctx, trimmed, "track,playlist")
		if err == nil {
			return p.current(seq, results)
		}
		p.logger.Warn("spotify search failed, falling back to local catalog", "err", err)
	}

	results := models.SearchResults{
		Tracks:    p.local.Search(trimmed),
		Playlists: []models.Playlist{},
	}

	return p.current(seq, results)
}

// current discards results that a newer search has overtaken.
func (p *Provider) current(seq uint64, results models.SearchResults) (models.SearchResults, error) {
	if seq != p.searchSeq.Load() {
		return models.SearchResults{}, ErrSuperseded
	}
	return results, nil
}

// UserPlaylists returns the connected user's playlists.
//
// Playlists are non-critical: disconnected state and remote failures both
// yield an empty list, never an error.
func (p *Provider) UserPlaylists(ctx context.Context) []models.Playlist {
	if !p.Connected() || p.remote == nil {
		return []models.Playlist{}
	}

	playlists, err := p.remote.UserPlaylists(ctx)
	if err != nil {
		p.logger.Warn("failed to fetch spotify playlists", "err", err)
		return []models.Playlist{}
	}

	return playlists
}

// PlaylistTracks returns the tracks of a remote playlist.
//
// Unlike [Provider.UserPlaylists] a failure here is surfaced: the caller
// asked for a specific playlist and silently returning nothing would read
// as an empty playlist.
func (p *Provider) PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	if !p.Connected() || p.remote == nil {
		return nil, shared.ErrNotConnected
	}

	tracks, err := p.remote.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrLoadFailed, err)
	}

	return tracks, nil
}

// PopularTracks returns the local catalog's popular list.
func (p *Provider) PopularTracks() []models.Track {
	return p.local.Popular()
}

// TrackByID looks up a track in the local catalog.
func (p *Provider) TrackByID(id string) (models.Track, error) {
	return p.local.TrackByID(id)
}

// Recommendations returns local same-artist recommendations for a track.
func (p *Provider) Recommendations(trackID string) []models.Track {
	return p.local.Recommendations(trackID)
}
