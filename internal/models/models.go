package models

// Track represents a music track from any catalog source.
//
// Tracks are read-only value objects once fetched; the queue may hold
// multiple entries referencing the same ID.
type Track struct {
	ID         string `json:"id" toml:"id"`
	Title      string `json:"title" toml:"title"`
	Artist     string `json:"artist" toml:"artist"` // display string, comma-joined when multiple
	Album      string `json:"album" toml:"album"`
	Duration   int    `json:"duration" toml:"duration"` // Duration in seconds
	ImageURL   string `json:"image_url,omitempty" toml:"image_url"`
	PreviewURL string `json:"preview_url,omitempty" toml:"preview_url"`
}

// Playlist represents a music playlist from any catalog source.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner"`
	TrackCount  int    `json:"track_count"`
	ImageURL    string `json:"image_url,omitempty"`
}

// SearchResults bundles the track and playlist matches for a single query.
type SearchResults struct {
	Tracks    []Track    `json:"tracks"`
	Playlists []Playlist `json:"playlists"`
}

// Total returns the combined number of track and playlist matches.
func (r SearchResults) Total() int {
	return len(r.Tracks) + len(r.Playlists)
}
