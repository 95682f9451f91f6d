package progress

import (
	"sync"
	"time"
)

// Stage represents the current stage of a crawl
type Stage string

const (
	StageInitializing Stage = "initializing"
	StageDiscovering  Stage = "discovering"
	StageArtists      Stage = "artists"
	StageComplete     Stage = "complete"
	StageError        Stage = "error"
)

// Event represents a progress event
type Event struct {
	Stage         Stage          `json:"stage"`
	Progress      float64        `json:"progress"`
	Message       string         `json:"message"`
	Timestamp     time.Time      `json:"timestamp"`
	ArtistDetails *ArtistDetails `json:"artistDetails,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// ArtistDetails describes the artist currently being crawled
type ArtistDetails struct {
	ArtistNumber     int    `json:"artistNumber"`
	TotalArtists     int    `json:"totalArtists"`
	CurrentArtist    string `json:"currentArtist"`
	ProcessedArtists int    `json:"processedArtists"`
}

// Tracker fans progress events out to listeners
type Tracker struct {
	mu            sync.RWMutex
	stage         Stage
	progress      float64
	message       string
	artistDetails *ArtistDetails
	err           error
	listeners     []func(Event)
}

// NewTracker creates a new Tracker instance
func NewTracker() *Tracker {
	return &Tracker{
		stage:     StageInitializing,
		listeners: make([]func(Event), 0),
	}
}

// AddListener adds a new progress event listener
func (t *Tracker) AddListener(listener func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

// UpdateProgress updates the progress and notifies all listeners
func (t *Tracker) UpdateProgress(stage Stage, progress float64, message string) {
	t.mu.Lock()
	t.stage = stage
	t.progress = progress
	t.message = message
	t.mu.Unlock()

	t.notifyListeners(Event{
		Stage:     stage,
		Progress:  progress,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// UpdateArtistProgress records which artist is being crawled
func (t *Tracker) UpdateArtistProgress(artistNumber, totalArtists, processedArtists int, currentArtist string) {
	details := &ArtistDetails{
		ArtistNumber:     artistNumber,
		TotalArtists:     totalArtists,
		CurrentArtist:    currentArtist,
		ProcessedArtists: processedArtists,
	}

	t.mu.Lock()
	t.stage = StageArtists
	if totalArtists > 0 {
		t.progress = float64(processedArtists) / float64(totalArtists) * 100
	}
	t.artistDetails = details
	event := Event{
		Stage:         t.stage,
		Progress:      t.progress,
		Message:       t.message,
		Timestamp:     time.Now(),
		ArtistDetails: details,
	}
	t.mu.Unlock()

	t.notifyListeners(event)
}

// SetError sets an error state and notifies all listeners
func (t *Tracker) SetError(err error) {
	t.mu.Lock()
	t.stage = StageError
	t.err = err
	progress := t.progress
	t.mu.Unlock()

	t.notifyListeners(Event{
		Stage:     StageError,
		Progress:  progress,
		Message:   err.Error(),
		Timestamp: time.Now(),
		Error:     err.Error(),
	})
}

// notifyListeners sends an event to all registered listeners
func (t *Tracker) notifyListeners(event Event) {
	t.mu.RLock()
	listeners := make([]func(Event), len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// CurrentState returns the current progress state
func (t *Tracker) CurrentState() Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	event := Event{
		Stage:         t.stage,
		Progress:      t.progress,
		Message:       t.message,
		Timestamp:     time.Now(),
		ArtistDetails: t.artistDetails,
	}
	if t.err != nil {
		event.Error = t.err.Error()
	}
	return event
}
