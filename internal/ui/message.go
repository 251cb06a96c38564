package ui

import (
	"github.com/desertthunder/resonance/internal/models"
	"github.com/desertthunder/resonance/internal/player"
)

// searchResultsMsg carries a completed catalog search.
type searchResultsMsg struct {
	results models.SearchResults
	err     error
}

// playlistTracksMsg carries the tracks of a selected playlist.
type playlistTracksMsg struct {
	playlist models.Playlist
	tracks   []models.Track
	err      error
}

// statusMsg is a transient notification line from the playback controller.
type statusMsg struct {
	text    string
	warning bool
}

// clockMsg re-renders the player bar once per second.
type clockMsg struct{}

// StatusNotifier bridges [player.Notifier] notifications into the program's
// message loop. Sends are non-blocking; if the UI is behind, older
// notifications are dropped in favor of newer ones.
type StatusNotifier struct {
	ch chan statusMsg
}

var _ player.Notifier = (*StatusNotifier)(nil)

// NewStatusNotifier creates a notifier with a small buffer.
func NewStatusNotifier() *StatusNotifier {
	return &StatusNotifier{ch: make(chan statusMsg, 8)}
}

func (n *StatusNotifier) Success(msg string) {
	n.send(statusMsg{text: msg})
}

func (n *StatusNotifier) Warn(msg string) {
	n.send(statusMsg{text: msg, warning: true})
}

func (n *StatusNotifier) send(msg statusMsg) {
	select {
	case n.ch <- msg:
	default:
		select {
		case <-n.ch:
		default:
		}
		select {
		case n.ch <- msg:
		default:
		}
	}
}
