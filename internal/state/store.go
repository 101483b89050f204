package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/lcamargo/darkroom/internal/api"
)

// Snapshot represents the latest API health information available to the UI.
type Snapshot struct {
	Health              api.Health
	HasHealth           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive probe failures
}

// IsOffline returns true when the API has been unreachable for multiple probes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the health snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(health *api.Health, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if health != nil {
		s.snapshot.Health = *health
		s.snapshot.HasHealth = true
	} else {
		s.snapshot.HasHealth = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
