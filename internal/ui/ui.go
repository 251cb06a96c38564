package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/resonance/internal/catalog"
	"github.com/desertthunder/resonance/internal/models"
	"github.com/desertthunder/resonance/internal/player"
	"github.com/desertthunder/resonance/internal/shared"
)

// ViewState represents the focused area of the player TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	SearchView
	QueueView
)

// trackItem wraps [models.Track] to implement list.Item.
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	desc := i.track.Artist
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return fmt.Sprintf("%s [%s]", desc, shared.FormatDuration(i.track.Duration))
}

// playlistItem wraps [models.Playlist] to implement list.Item.
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return "♫ " + i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d tracks • %s", i.playlist.TrackCount, i.playlist.Owner)
	if i.playlist.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.playlist.Description)
	}
	return desc
}

// Model represents the player TUI state.
type Model struct {
	ctx        context.Context
	provider   *catalog.Provider
	controller *player.Controller
	notifier   *StatusNotifier

	view    ViewState
	width   int
	height  int
	search  textinput.Model
	results list.Model
	queue   list.Model
	status  string
	warning bool
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new player TUI model over the provider and controller.
//
// The notifier must be the one wired into the controller so "now playing"
// notifications reach the status line.
func NewModel(ctx context.Context, provider *catalog.Provider, controller *player.Controller, notifier *StatusNotifier) *Model {
	search := textinput.New()
	search.Placeholder = "Search for tracks, artists, albums, or playlists..."
	search.CharLimit = 120

	results := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	results.Title = "Popular"
	results.SetShowHelp(false)

	queue := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	queue.Title = "Queue"
	queue.SetShowHelp(false)

	return &Model{
		ctx:        ctx,
		provider:   provider,
		controller: controller,
		notifier:   notifier,
		view:       BrowseView,
		search:     search,
		results:    results,
		queue:      queue,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init seeds the result list with the popular tracks and starts the clock
// and notification pumps.
func (m *Model) Init() tea.Cmd {
	m.setTracks(m.provider.PopularTracks(), "Popular")
	return tea.Batch(m.tickClock(), m.waitForStatus())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetSize(msg.Width-4, msg.Height-10)
		m.queue.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case QueueView:
			return m.handleQueueKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}

	case searchResultsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.setResults(msg.results)
		m.view = BrowseView
		return m, nil

	case playlistTracksMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.setTracks(msg.tracks, msg.playlist.Name)
		m.view = BrowseView
		return m, nil

	case statusMsg:
		m.status = msg.text
		m.warning = msg.warning
		return m, m.waitForStatus()

	case clockMsg:
		m.refreshQueue()
		return m, m.tickClock()
	}

	return m, m.updateLists(msg)
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.controller.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.queue):
		m.refreshQueue()
		m.view = QueueView
		return m, nil

	case key.Matches(msg, m.keys.enter):
		switch item := m.results.SelectedItem().(type) {
		case trackItem:
			m.controller.Select(item.track)
		case playlistItem:
			return m, m.fetchPlaylistTracks(item.playlist)
		}
		return m, nil

	case key.Matches(msg, m.keys.add):
		if item, ok := m.results.SelectedItem().(trackItem); ok {
			m.controller.Queue().Enqueue(item.track)
			m.status = fmt.Sprintf("Added %q to queue", item.track.Title)
			m.warning = false
		}
		return m, nil
	}

	if m.isTransportKey(msg) {
		m.handleTransportKeys(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.search.Blur()
		m.view = BrowseView
		return m, nil

	case msg.Type == tea.KeyEnter:
		query := m.search.Value()
		m.search.Blur()
		return m, m.runSearch(query)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) handleQueueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.controller.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.queue):
		m.view = BrowseView
		return m, nil

	case key.Matches(msg, m.keys.enter):
		if item, ok := m.queue.SelectedItem().(trackItem); ok {
			m.controller.Select(item.track)
		}
		return m, nil

	case key.Matches(msg, m.keys.remove):
		index := m.queue.Index()
		if track, err := m.controller.Queue().RemoveAt(index); err == nil {
			m.status = fmt.Sprintf("Removed %q from queue", track.Title)
			m.warning = false
			m.refreshQueue()
		}
		return m, nil

	case key.Matches(msg, m.keys.clear):
		m.controller.Queue().Clear()
		m.status = "Queue cleared"
		m.warning = false
		m.refreshQueue()
		return m, nil
	}

	if m.isTransportKey(msg) {
		m.handleTransportKeys(msg)
		m.refreshQueue()
		return m, nil
	}

	var cmd tea.Cmd
	m.queue, cmd = m.queue.Update(msg)
	return m, cmd
}

// handleTransportKeys applies transport bindings shared by the browse and
// queue views.
func (m *Model) handleTransportKeys(msg tea.KeyMsg) {
	state := m.controller.State()

	switch {
	case key.Matches(msg, m.keys.playPause):
		m.controller.TogglePlayPause()
	case key.Matches(msg, m.keys.next):
		m.controller.Next()
	case key.Matches(msg, m.keys.previous):
		m.controller.Previous()
	case key.Matches(msg, m.keys.seekBack):
		m.controller.Seek(state.CurrentTime - 5)
	case key.Matches(msg, m.keys.seekFwd):
		m.controller.Seek(state.CurrentTime + 5)
	case key.Matches(msg, m.keys.volDown):
		m.controller.SetVolume(state.Volume - 5)
	case key.Matches(msg, m.keys.volUp):
		m.controller.SetVolume(state.Volume + 5)
	}
}

func (m *Model) isTransportKey(msg tea.KeyMsg) bool {
	return key.Matches(msg, m.keys.playPause) ||
		key.Matches(msg, m.keys.next) ||
		key.Matches(msg, m.keys.previous) ||
		key.Matches(msg, m.keys.seekBack) ||
		key.Matches(msg, m.keys.seekFwd) ||
		key.Matches(msg, m.keys.volDown) ||
		key.Matches(msg, m.keys.volUp)
}

func (m *Model) updateLists(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.results, cmd = m.results.Update(msg)
	cmds = append(cmds, cmd)
	m.queue, cmd = m.queue.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

// runSearch issues a provider search; superseded results are dropped.
func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.provider.SearchAll(m.ctx, query)
		if errors.Is(err, catalog.ErrSuperseded) {
			return nil
		}
		return searchResultsMsg{results: results, err: err}
	}
}

func (m *Model) fetchPlaylistTracks(playlist models.Playlist) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.provider.PlaylistTracks(m.ctx, playlist.ID)
		return playlistTracksMsg{playlist: playlist, tracks: tracks, err: err}
	}
}

func (m *Model) tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return clockMsg{}
	})
}

func (m *Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		return <-m.notifier.ch
	}
}

func (m *Model) setTracks(tracks []models.Track, title string) {
	items := make([]list.Item, len(tracks))
	for i, track := range tracks {
		items[i] = trackItem{track: track}
	}
	m.results.Title = title
	m.results.SetItems(items)
}

func (m *Model) setResults(results models.SearchResults) {
	items := make([]list.Item, 0, results.Total())
	for _, track := range results.Tracks {
		items = append(items, trackItem{track: track})
	}
	for _, playlist := range results.Playlists {
		items = append(items, playlistItem{playlist: playlist})
	}
	m.results.Title = fmt.Sprintf("Results (%d)", results.Total())
	m.results.SetItems(items)
}

func (m *Model) refreshQueue() {
	tracks := m.controller.Queue().Tracks()
	items := make([]list.Item, len(tracks))
	for i, track := range tracks {
		items[i] = trackItem{track: track}
	}
	m.queue.Title = fmt.Sprintf("Queue (%d)", len(tracks))
	m.queue.SetItems(items)
}

// View renders the UI: the focused area, a status line and the player bar.
func (m *Model) View() string {
	var b strings.Builder

	switch m.view {
	case SearchView:
		b.WriteString(styles.title.Render("Search"))
		b.WriteString("\n" + m.search.View() + "\n")
	case QueueView:
		b.WriteString(m.queue.View())
	default:
		b.WriteString(m.results.View())
	}

	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	} else if m.status != "" {
		if m.warning {
			b.WriteString(styles.warn.Render(m.status) + "\n")
		} else {
			b.WriteString(styles.ok.Render(m.status) + "\n")
		}
	}

	b.WriteString(m.playerBar())
	b.WriteString("\n" + m.help.View(m.keys))

	return b.String()
}

// playerBar renders the persistent transport line.
func (m *Model) playerBar() string {
	state := m.controller.State()

	if !state.HasTrack() {
		return styles.help.Render("∅ nothing playing — press enter on a track")
	}

	icon := "▮▮"
	if state.IsPlaying {
		icon = "▶"
	}

	return fmt.Sprintf("%s %s — %s  %s/%s  vol %d%%",
		icon,
		styles.title.Render(state.CurrentTrack.Title),
		state.CurrentTrack.Artist,
		shared.FormatDuration(state.CurrentTime),
		shared.FormatDuration(state.Duration),
		state.Volume,
	)
}
