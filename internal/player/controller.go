package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/resonance/internal/models"
)

// Notifier receives the transient user-facing notifications playback
// produces. The presentation layer decides how to render them.
type Notifier interface {
	Success(msg string)
	Warn(msg string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Warn(string)    {}

// State is a snapshot of the controller for rendering.
//
// Invariant: without a current track, IsPlaying is false and CurrentTime
// is 0. CurrentTime never exceeds Duration.
type State struct {
	CurrentTrack *models.Track
	IsPlaying    bool
	CurrentTime  int // seconds
	Duration     int // seconds, copied from the track at selection
	Volume       int // 0-100
}

// HasTrack reports whether a track is selected.
func (s State) HasTrack() bool {
	return s.CurrentTrack != nil
}

// Controller owns the current track, transport state, simulated playback
// clock and volume. The clock is a single repeating 1-second ticker, active
// exactly while (isPlaying && a track is selected); transitions out of that
// predicate tear the ticker down before they return, so two tickers never
// run for one controller.
type Controller struct {
	mu       sync.Mutex
	queue    *Queue
	notifier Notifier
	onChange func(State)
	interval time.Duration

	current  *models.Track
	playing  bool
	elapsed  int
	duration int
	volume   int

	stop chan struct{} // non-nil while the ticker goroutine runs
}

// ControllerOpts configures a new Controller.
type ControllerOpts struct {
	Queue    *Queue
	Notifier Notifier
	OnChange func(State) // invoked with a fresh snapshot after every state change
	Volume   int
	Interval time.Duration // tick interval, defaults to one second
}

// NewController creates a playback controller over the given queue.
func NewController(opts ControllerOpts) *Controller {
	if opts.Queue == nil {
		opts.Queue = NewQueue()
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Volume < 0 {
		opts.Volume = 0
	}
	if opts.Volume > 100 {
		opts.Volume = 100
	}

	return &Controller{
		queue:    opts.Queue,
		notifier: opts.Notifier,
		onChange: opts.OnChange,
		interval: opts.Interval,
		volume:   opts.Volume,
	}
}

// Queue returns the controller's queue.
func (c *Controller) Queue() *Queue {
	return c.queue
}

// State returns a snapshot of the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Select makes the given track current and starts playback from zero.
func (c *Controller) Select(track models.Track) {
	c.mu.Lock()
	c.selectLocked(track)
	state := c.stateLocked()
	c.mu.Unlock()

	c.notifier.Success(fmt.Sprintf("Now playing: %s", track.Title))
	c.emit(state)
}

// TogglePlayPause flips the playing flag, or warns when no track is selected.
func (c *Controller) TogglePlayPause() {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		c.notifier.Warn("No track selected")
		return
	}

	c.playing = !c.playing
	c.syncTickerLocked()
	state := c.stateLocked()
	c.mu.Unlock()

	c.emit(state)
}

// Tick advances the playback clock by one second.
//
// Reaching the track's duration behaves exactly like the user pressing
// "next", except it is triggered internally; the clock never shows a value
// past the duration.
func (c *Controller) Tick() {
	c.mu.Lock()
	if !c.playing || c.current == nil {
		c.mu.Unlock()
		return
	}

	var selected *models.Track
	if c.elapsed+1 >= c.duration {
		selected = c.nextLocked()
	} else {
		c.elapsed++
	}
	state := c.stateLocked()
	c.mu.Unlock()

	if selected != nil {
		c.notifier.Success(fmt.Sprintf("Now playing: %s", selected.Title))
	}
	c.emit(state)
}

// Next plays the front of the queue; with an empty queue playback stops at
// the start of the current track without clearing the selection.
func (c *Controller) Next() {
	c.mu.Lock()
	selected := c.nextLocked()
	state := c.stateLocked()
	c.mu.Unlock()

	if selected != nil {
		c.notifier.Success(fmt.Sprintf("Now playing: %s", selected.Title))
	}
	c.emit(state)
}

// Previous plays the back of the queue; with an empty queue it is a no-op.
func (c *Controller) Previous() {
	c.mu.Lock()
	track, err := c.queue.PopBack()
	if err != nil {
		c.mu.Unlock()
		return
	}

	c.selectLocked(track)
	state := c.stateLocked()
	c.mu.Unlock()

	c.notifier.Success(fmt.Sprintf("Now playing: %s", track.Title))
	c.emit(state)
}

// Seek moves the playback clock, clamped to [0, duration].
func (c *Controller) Seek(seconds int) {
	c.mu.Lock()
	if seconds < 0 {
		seconds = 0
	}
	if seconds > c.duration {
		seconds = c.duration
	}
	c.elapsed = seconds
	state := c.stateLocked()
	c.mu.Unlock()

	c.emit(state)
}

// SetVolume sets the volume, clamped to [0, 100].
func (c *Controller) SetVolume(v int) {
	c.mu.Lock()
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	c.volume = v
	state := c.stateLocked()
	c.mu.Unlock()

	c.emit(state)
}

// Close stops the ticker goroutine. The controller remains usable; a
// subsequent Select restarts the clock.
func (c *Controller) Close() {
	c.mu.Lock()
	c.playing = false
	c.syncTickerLocked()
	c.mu.Unlock()
}

func (c *Controller) selectLocked(track models.Track) {
	t := track
	c.current = &t
	c.duration = track.Duration
	c.elapsed = 0
	c.playing = true
	c.syncTickerLocked()
}

// nextLocked pops the queue front and selects it, returning the selected
// track; an empty queue stops playback with the clock reset.
func (c *Controller) nextLocked() *models.Track {
	track, err := c.queue.PopFront()
	if err != nil {
		c.playing = false
		c.elapsed = 0
		c.syncTickerLocked()
		return nil
	}

	c.selectLocked(track)
	return c.current
}

func (c *Controller) stateLocked() State {
	return State{
		CurrentTrack: c.current,
		IsPlaying:    c.playing,
		CurrentTime:  c.elapsed,
		Duration:     c.duration,
		Volume:       c.volume,
	}
}

// syncTickerLocked starts or stops the ticker goroutine so that exactly one
// runs while (playing && track selected) holds, and none otherwise.
func (c *Controller) syncTickerLocked() {
	active := c.playing && c.current != nil

	if active && c.stop == nil {
		stop := make(chan struct{})
		c.stop = stop
		go c.run(stop)
	}

	if !active && c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Controller) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

func (c *Controller) emit(state State) {
	if c.onChange != nil {
		c.onChange(state)
	}
}
