package player

import (
	"sync"

	"github.com/desertthunder/resonance/internal/models"
	"github.com/desertthunder/resonance/internal/shared"
)

// Queue is the ordered list of pending tracks.
//
// Duplicates are permitted; entries are position-indexed. "Next" pops from
// the front and "previous" pops from the back of the same list; previously
// played tracks are not tracked. The currently playing track never lives in
// the queue.
type Queue struct {
	mu     sync.Mutex
	tracks []models.Track
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{tracks: []models.Track{}}
}

// Enqueue appends a track to the back of the queue.
func (q *Queue) Enqueue(track models.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append(q.tracks, track)
}

// PopFront removes and returns the track at the front of the queue.
func (q *Queue) PopFront() (models.Track, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tracks) == 0 {
		return models.Track{}, shared.ErrQueueEmpty
	}

	track := q.tracks[0]
	q.tracks = q.tracks[1:]
	return track, nil
}

// PopBack removes and returns the track at the back of the queue.
func (q *Queue) PopBack() (models.Track, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tracks) == 0 {
		return models.Track{}, shared.ErrQueueEmpty
	}

	track := q.tracks[len(q.tracks)-1]
	q.tracks = q.tracks[:len(q.tracks)-1]
	return track, nil
}

// RemoveAt removes and returns the track at the given position.
func (q *Queue) RemoveAt(index int) (models.Track, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.tracks) {
		return models.Track{}, shared.ErrIndexOutOfRange
	}

	track := q.tracks[index]
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)
	return track, nil
}

// Clear empties the queue unconditionally.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = q.tracks[:0]
}

// Len returns the number of pending tracks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tracks)
}

// Tracks returns an ordered copy of the pending tracks for rendering.
func (q *Queue) Tracks() []models.Track {
	q.mu.Lock()
	defer q.mu.Unlock()

	tracks := make([]models.Track, len(q.tracks))
	copy(tracks, q.tracks)
	return tracks
}
