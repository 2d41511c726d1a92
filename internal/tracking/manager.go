package tracking

import (
	"context"
	"sync"
	"time"
)

// Manager owns the live trackers, one per user, and drives their
// clocks from a single shared ticker.
type Manager struct {
	mu       sync.Mutex
	trackers map[string]*Tracker
}

// NewManager creates an empty tracker registry.
func NewManager() *Manager {
	return &Manager{trackers: make(map[string]*Tracker)}
}

// Put registers (or replaces) the live tracker for a user.
func (m *Manager) Put(userID string, tracker *Tracker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trackers[userID] = tracker
}

// Get returns the user's live tracker, or nil when none is active.
func (m *Manager) Get(userID string) *Tracker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trackers[userID]
}

// Remove drops the user's tracker, typically after the session is saved.
func (m *Manager) Remove(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.trackers, userID)
}

// Run advances every registered tracker once per second until the
// context is cancelled. Call it from a goroutine at startup.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tickAll()
		}
	}
}

func (m *Manager) tickAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tracker := range m.trackers {
		tracker.Tick()
	}
}
