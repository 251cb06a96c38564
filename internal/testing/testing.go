// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/desertthunder/resonance/internal/models"
	"github.com/desertthunder/resonance/internal/shared"
)

// MockRemoteCatalog is a test double for the Spotify client.
//
// Returns the configured values, or Err from every method when set.
type MockRemoteCatalog struct {
	Results   models.SearchResults
	Playlists []models.Playlist
	Tracks    []models.Track
	Err       error

	SearchCalls int
}

func (m *MockRemoteCatalog) Search(ctx context.Context, query, types string) (models.SearchResults, error) {
	m.SearchCalls++
	if m.Err != nil {
		return models.SearchResults{}, m.Err
	}
	return m.Results, nil
}

func (m *MockRemoteCatalog) UserPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Playlists, nil
}

func (m *MockRemoteCatalog) PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tracks, nil
}

// RecordingNotifier captures playback notifications for assertions.
type RecordingNotifier struct {
	mu        sync.Mutex
	Successes []string
	Warnings  []string
}

func (n *RecordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Successes = append(n.Successes, msg)
}

func (n *RecordingNotifier) Warn(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Warnings = append(n.Warnings, msg)
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MustOpenDB opens an in-memory SQLite database with migrations applied,
// closed automatically when the test finishes.
func MustOpenDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// SampleTracks returns a small fixed track list for queue and player tests.
func SampleTracks() []models.Track {
	return []models.Track{
		{ID: "a", Title: "Alpha", Artist: "The Letters", Album: "Glyphs", Duration: 3},
		{ID: "b", Title: "Beta", Artist: "The Letters", Album: "Glyphs", Duration: 4},
		{ID: "c", Title: "Gamma", Artist: "The Letters", Album: "Glyphs", Duration: 5},
	}
}
