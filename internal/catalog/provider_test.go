package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/desertthunder/resonance/internal/models"
	"github.com/desertthunder/resonance/internal/repositories"
	"github.com/desertthunder/resonance/internal/shared"
	tu "github.com/desertthunder/resonance/internal/testing"
)

func newTestProvider(t *testing.T, remote RemoteCatalog) (*Provider, *repositories.CredentialStore) {
	t.Helper()

	db := tu.MustOpenDB(t)
	store := repositories.NewCredentialStore(db)
	provider := NewProvider(store, remote, NewLocalCatalog(), shared.NewLogger(io.Discard))
	return provider, store
}

func connect(t *testing.T, store *repositories.CredentialStore) {
	t.Helper()

	if err := store.Save("test_client_id", "test_client_secret"); err != nil {
		t.Fatalf("failed to save credentials: %v", err)
	}
	if err := store.SetTokens("test_access_token", "test_refresh_token"); err != nil {
		t.Fatalf("failed to store tokens: %v", err)
	}
}

// supersedingRemote simulates a newer search being issued while the remote
// request is still in flight.
type supersedingRemote struct {
	provider *Provider
	results  models.SearchResults
}

func (s *supersedingRemote) Search(ctx context.Context, query, types string) (models.SearchResults, error) {
	s.provider.searchSeq.Add(1)
	return s.results, nil
}

func (s *supersedingRemote) UserPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return nil, nil
}

func (s *supersedingRemote) PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	return nil, nil
}

func TestProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("Connected", func(t *testing.T) {
		provider, store := newTestProvider(t, &tu.MockRemoteCatalog{})

		if provider.Connected() {
			t.Error("expected disconnected with no stored token")
		}

		connect(t, store)

		if !provider.Connected() {
			t.Error("expected connected after tokens stored")
		}
	})

	t.Run("SearchAll", func(t *testing.T) {
		t.Run("Empty Query", func(t *testing.T) {
			provider, _ := newTestProvider(t, &tu.MockRemoteCatalog{})

			_, err := provider.SearchAll(ctx, "   ")
			if !errors.Is(err, shared.ErrEmptyQuery) {
				t.Errorf("expected ErrEmptyQuery, got %v", err)
			}
		})

		t.Run("Disconnected Uses Local Catalog", func(t *testing.T) {
			remote := &tu.MockRemoteCatalog{
				Results: models.SearchResults{Tracks: []models.Track{{ID: "spotify:1"}}},
			}
			provider, _ := newTestProvider(t, remote)

			results, err := provider.SearchAll(ctx, "Neon")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if remote.SearchCalls != 0 {
				t.Errorf("expected no remote calls while disconnected, got %d", remote.SearchCalls)
			}
			if len(results.Tracks) != 3 {
				t.Errorf("expected 3 local matches, got %d", len(results.Tracks))
			}
			if results.Playlists == nil || len(results.Playlists) != 0 {
				t.Errorf("expected empty playlist list, got %v", results.Playlists)
			}
		})

		t.Run("Connected Uses Remote", func(t *testing.T) {
			remote := &tu.MockRemoteCatalog{
				Results: models.SearchResults{
					Tracks:    []models.Track{{ID: "spotify:1", Title: "Remote Hit"}},
					Playlists: []models.Playlist{{ID: "pl1", Name: "Mix"}},
				},
			}
			provider, store := newTestProvider(t, remote)
			connect(t, store)

			results, err := provider.SearchAll(ctx, "anything")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if remote.SearchCalls != 1 {
				t.Errorf("expected 1 remote call, got %d", remote.SearchCalls)
			}
			if len(results.Tracks) != 1 || results.Tracks[0].Title != "Remote Hit" {
				t.Errorf("expected remote results, got %v", results.Tracks)
			}
			if len(results.Playlists) != 1 {
				t.Errorf("expected remote playlists, got %v", results.Playlists)
			}
		})

		t.Run("Remote Failure Falls Back", func(t *testing.T) {
			remote := &tu.MockRemoteCatalog{Err: errors.New("rate limited")}
			provider, store := newTestProvider(t, remote)
			connect(t, store)

			results, err := provider.SearchAll(ctx, "Neon")
			if err != nil {
				t.Fatalf("expected fallback instead of error, got %v", err)
			}

			if remote.SearchCalls != 1 {
				t.Errorf("expected 1 remote attempt, got %d", remote.SearchCalls)
			}
			if len(results.Tracks) != 3 {
				t.Errorf("expected 3 local matches, got %d", len(results.Tracks))
			}
			if len(results.Playlists) != 0 {
				t.Errorf("expected no playlists on fallback, got %v", results.Playlists)
			}
		})

		t.Run("Superseded Result Is Discarded", func(t *testing.T) {
			remote := &supersedingRemote{
				results: models.SearchResults{Tracks: []models.Track{{ID: "stale"}}},
			}
			provider, store := newTestProvider(t, remote)
			remote.provider = provider
			connect(t, store)

			_, err := provider.SearchAll(ctx, "first")
			if !errors.Is(err, ErrSuperseded) {
				t.Errorf("expected ErrSuperseded, got %v", err)
			}
		})
	})

	t.Run("UserPlaylists", func(t *testing.T) {
		t.Run("Disconnected", func(t *testing.T) {
			provider, _ := newTestProvider(t, &tu.MockRemoteCatalog{
				Playlists: []models.Playlist{{ID: "pl1"}},
			})

			playlists := provider.UserPlaylists(ctx)
			if len(playlists) != 0 {
				t.Errorf("expected empty list while disconnected, got %v", playlists)
			}
		})

		t.Run("Remote Failure Yields Empty List", func(t *testing.T) {
			provider, store := newTestProvider(t, &tu.MockRemoteCatalog{Err: errors.New("boom")})
			connect(t, store)

			playlists := provider.UserPlaylists(ctx)
			if len(playlists) != 0 {
				t.Errorf("expected empty list on failure, got %v", playlists)
			}
		})

		t.Run("Connected", func(t *testing.T) {
			provider, store := newTestProvider(t, &tu.MockRemoteCatalog{
				Playlists: []models.Playlist{{ID: "pl1", Name: "Daily Mix"}},
			})
			connect(t, store)

			playlists := provider.UserPlaylists(ctx)
			if len(playlists) != 1 || playlists[0].Name != "Daily Mix" {
				t.Errorf("expected remote playlists, got %v", playlists)
			}
		})
	})

	t.Run("PlaylistTracks", func(t *testing.T) {
		t.Run("Disconnected", func(t *testing.T) {
			provider, _ := newTestProvider(t, &tu.MockRemoteCatalog{})

			_, err := provider.PlaylistTracks(ctx, "pl1")
			if !errors.Is(err, shared.ErrNotConnected) {
				t.Errorf("expected ErrNotConnected, got %v", err)
			}
		})

		t.Run("Remote Failure Is Surfaced", func(t *testing.T) {
			provider, store := newTestProvider(t, &tu.MockRemoteCatalog{Err: errors.New("boom")})
			connect(t, store)

			_, err := provider.PlaylistTracks(ctx, "pl1")
			if !errors.Is(err, shared.ErrLoadFailed) {
				t.Errorf("expected ErrLoadFailed, got %v", err)
			}
		})

		t.Run("Connected", func(t *testing.T) {
			provider, store := newTestProvider(t, &tu.MockRemoteCatalog{
				Tracks: []models.Track{{ID: "t1", Title: "From Playlist"}},
			})
			connect(t, store)

			tracks, err := provider.PlaylistTracks(ctx, "pl1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(tracks) != 1 || tracks[0].Title != "From Playlist" {
				t.Errorf("expected playlist tracks, got %v", tracks)
			}
		})
	})

	t.Run("Local Passthrough", func(t *testing.T) {
		provider, _ := newTestProvider(t, &tu.MockRemoteCatalog{})

		if len(provider.PopularTracks()) == 0 {
			t.Error("expected popular tracks from the built-in catalog")
		}

		if _, err := provider.TrackByID("1"); err != nil {
			t.Errorf("expected track 1 to resolve, got %v", err)
		}

		if len(provider.Recommendations("1")) == 0 {
			t.Error("expected recommendations for track 1")
		}
	})
}
