package state

import "sync"

type Phase int

const (
	STOPPED Phase = iota
	PLAYING
	PAUSED
)

func (p Phase) String() string {
	switch p {
	case PLAYING:
		return "playing"
	case PAUSED:
		return "paused"
	}
	return "stopped"
}

type State struct {
	Phase    Phase
	Position int // percent of the stream, 0..100
	Volume   int // percent, 0..100
	Muted    bool
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: STOPPED, Volume: 100}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

// TogglePause flips between PLAYING and PAUSED; a stopped player starts
// playing. It returns the new phase.
func (store *Store) TogglePause() Phase {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.state.Phase == PLAYING {
		store.state.Phase = PAUSED
	} else {
		store.state.Phase = PLAYING
	}
	return store.state.Phase
}

// Seek moves the position by delta percent and returns the clamped result.
func (store *Store) Seek(delta int) int {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.Position = clampPercent(store.state.Position + delta)
	return store.state.Position
}

// AdjustVolume changes the volume by delta percent and returns the clamped
// result. Changing the volume unmutes.
func (store *Store) AdjustVolume(delta int) int {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.Volume = clampPercent(store.state.Volume + delta)
	store.state.Muted = false
	return store.state.Volume
}

// ToggleMute flips the mute flag and returns the new value.
func (store *Store) ToggleMute() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.Muted = !store.state.Muted
	return store.state.Muted
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}

// Reset returns the store to the state NewStore starts with.
func (store *Store) Reset() {
	store.mu.Lock()
	store.state = State{Phase: STOPPED, Volume: 100}
	store.mu.Unlock()
}
