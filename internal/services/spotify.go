// Spotify Web API client for the resonance catalog provider
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/resonance/internal/models"
	"github.com/desertthunder/resonance/internal/repositories"
	"github.com/desertthunder/resonance/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// DefaultRedirectURI is used when the config doesn't provide one.
	DefaultRedirectURI = "http://127.0.0.1:3000/callback"

	// searchLimit caps provider-side results per entity type.
	searchLimit = 20
)

var spotifyScopes = []string{
	"user-read-private",
	"user-read-email",
	"user-library-read",
	"user-top-read",
	"playlist-read-private",
	"playlist-read-collaborative",
}

type followers struct {
	Total int `json:"total"`
}

// SpotifyProfile represents the authenticated user's Spotify profile.
type SpotifyProfile struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Product     string         `json:"product"` // premium, free, etc.
	Followers   followers      `json:"followers"`
	Images      []spotifyImage `json:"images"`
}

type spotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type spotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type spotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []spotifyImage `json:"images"`
}

type spotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Artists    []spotifyArtist `json:"artists"`
	Album      spotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	PreviewURL string          `json:"preview_url"`
}

type spotifyOwner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type spotifyTrackSummary struct {
	Total int `json:"total"`
}

type spotifyPlaylist struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Owner       spotifyOwner        `json:"owner"`
	Tracks      spotifyTrackSummary `json:"tracks"`
	Images      []spotifyImage      `json:"images"`
}

type spotifySearchResponse struct {
	Tracks *struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
	Playlists *struct {
		Items []spotifyPlaylist `json:"items"`
	} `json:"playlists"`
}

type spotifyPlaylistPage struct {
	Items []spotifyPlaylist `json:"items"`
}

type spotifyPlaylistTrackPage struct {
	Items []struct {
		AddedAt string       `json:"added_at"`
		Track   spotifyTrack `json:"track"`
	} `json:"items"`
}

// SpotifyService is an authenticated HTTP client for the Spotify Web API.
//
// Credentials and tokens are read from the injected [repositories.CredentialStore]
// on every call rather than cached, so a disconnect in one code path is
// immediately visible in every other.
type SpotifyService struct {
	store       *repositories.CredentialStore
	httpClient  *http.Client
	limiter     *rate.Limiter
	redirectURI string

	// endpoint overrides for tests
	authURL  string
	tokenURL string
	baseURL  string
}

// NewSpotifyService creates a new Spotify client backed by the given credential store.
func NewSpotifyService(store *repositories.CredentialStore, redirectURI string) *SpotifyService {
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}

	return &SpotifyService{
		store:       store,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		redirectURI: redirectURI,
		limiter:     rate.NewLimiter(rate.Limit(10), 1),
		authURL:     spotifyAuthURL,
		tokenURL:    spotifyTokenURL,
		baseURL:     spotifyBaseURL,
	}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// oauthConfig builds an [oauth2.Config] from the stored client credentials.
func (s *SpotifyService) oauthConfig() (*oauth2.Config, error) {
	creds, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, shared.ErrMissingCredentials
	}

	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  s.redirectURI,
		Scopes:       spotifyScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  s.authURL,
			TokenURL: s.tokenURL,
		},
	}, nil
}

// AuthURL generates the authorization redirect URL with a freshly generated
// anti-forgery state nonce, persisting the nonce for later verification.
//
// The caller performs the actual redirect (or opens a browser).
func (s *SpotifyService) AuthURL() (string, error) {
	config, err := s.oauthConfig()
	if err != nil {
		return "", err
	}

	state := shared.GenerateID()
	if err := s.store.SetAuthState(state); err != nil {
		return "", fmt.Errorf("failed to persist auth state: %w", err)
	}

	return config.AuthCodeURL(state), nil
}

// ExchangeCode exchanges an authorization code for tokens and persists them.
//
// Verifies the state parameter against the persisted nonce before anything
// else; a mismatch performs no storage writes.
func (s *SpotifyService) ExchangeCode(ctx context.Context, code, state string) error {
	storedState, err := s.store.AuthState()
	if err != nil {
		return err
	}

	if storedState == "" || state != storedState {
		return shared.ErrInvalidState
	}

	config, err := s.oauthConfig()
	if err != nil {
		return err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: token exchange: %v", shared.ErrAuthFailed, err)
	}

	if err := s.store.SetTokens(token.AccessToken, token.RefreshToken); err != nil {
		return fmt.Errorf("failed to persist tokens: %w", err)
	}

	return nil
}

// doRequest performs an authenticated GET against the Spotify API and decodes the JSON response.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	token, err := s.store.AccessToken()
	if err != nil {
		return err
	}
	if token == "" {
		return shared.ErrNotAuthenticated
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return shared.ErrTokenExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrProviderRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Profile retrieves the current authenticated user's profile.
func (s *SpotifyService) Profile(ctx context.Context) (*SpotifyProfile, error) {
	var profile SpotifyProfile
	if err := s.doRequest(ctx, "/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Search queries Spotify for the requested entity types ("track", "playlist",
// or both comma-joined) and returns normalized results.
func (s *SpotifyService) Search(ctx context.Context, query, types string) (models.SearchResults, error) {
	if types == "" {
		types = "track,playlist"
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=%s&limit=%d", url.QueryEscape(query), url.QueryEscape(types), searchLimit)

	var response spotifySearchResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return models.SearchResults{}, err
	}

	results := models.SearchResults{Tracks: []models.Track{}, Playlists: []models.Playlist{}}
	if response.Tracks != nil {
		for _, st := range response.Tracks.Items {
			results.Tracks = append(results.Tracks, normalizeTrack(st))
		}
	}
	if response.Playlists != nil {
		for _, sp := range response.Playlists.Items {
			results.Playlists = append(results.Playlists, normalizePlaylist(sp))
		}
	}

	return results, nil
}

// UserPlaylists retrieves the current user's playlists.
func (s *SpotifyService) UserPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var page spotifyPlaylistPage
	if err := s.doRequest(ctx, "/me/playlists?limit=50", &page); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, 0, len(page.Items))
	for _, sp := range page.Items {
		playlists = append(playlists, normalizePlaylist(sp))
	}

	return playlists, nil
}

// PlaylistTracks retrieves the tracks of a playlist, skipping non-track
// items (episodes, local files).
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=50", url.PathEscape(playlistID))

	var page spotifyPlaylistTrackPage
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(page.Items))
	for _, item := range page.Items {
		if item.Track.ID == "" || (item.Track.Type != "" && item.Track.Type != "track") {
			continue
		}
		tracks = append(tracks, normalizeTrack(item.Track))
	}

	return tracks, nil
}

// normalizeTrack maps a Spotify track into the canonical [models.Track] shape:
// artist names comma-joined, duration floored to seconds, first album image.
func normalizeTrack(st spotifyTrack) models.Track {
	artist := "Unknown Artist"
	if len(st.Artists) > 0 {
		names := make([]string, 0, len(st.Artists))
		for _, a := range st.Artists {
			names = append(names, a.Name)
		}
		artist = strings.Join(names, ", ")
	}

	album := st.Album.Name
	if album == "" {
		album = "Unknown Album"
	}

	imageURL := ""
	if len(st.Album.Images) > 0 {
		imageURL = st.Album.Images[0].URL
	}

	return models.Track{
		ID:         st.ID,
		Title:      st.Name,
		Artist:     artist,
		Album:      album,
		Duration:   st.DurationMS / 1000,
		ImageURL:   imageURL,
		PreviewURL: st.PreviewURL,
	}
}

// normalizePlaylist maps a Spotify playlist into the canonical [models.Playlist] shape.
func normalizePlaylist(sp spotifyPlaylist) models.Playlist {
	owner := sp.Owner.DisplayName
	if owner == "" {
		owner = "Unknown"
	}

	imageURL := ""
	if len(sp.Images) > 0 {
		imageURL = sp.Images[0].URL
	}

	return models.Playlist{
		ID:          sp.ID,
		Name:        sp.Name,
		Description: sp.Description,
		Owner:       owner,
		TrackCount:  sp.Tracks.Total,
		ImageURL:    imageURL,
	}
}
