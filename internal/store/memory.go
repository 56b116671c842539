package store

import (
	"errors"
	"sync"
	"time"

	"github.com/verdantly/watering-advisor/internal/engine"
	"github.com/verdantly/watering-advisor/internal/weather"
)

var (
	// ErrNotFound is returned when no plan has been computed for a location.
	ErrNotFound = errors.New("no watering plan for location")
)

// Snapshot is one computed plan with its hints, as returned to callers and
// fed back into the next stabilization pass. Values are never mutated after
// Save.
type Snapshot struct {
	Plan    engine.Plan  `json:"plan"`
	Hints   engine.Hints `json:"hints"`
	TakenAt time.Time    `json:"takenAt"` // always UTC
}

// SnapshotStore is the contract the in-memory store (and any future
// persistent store) must satisfy.
type SnapshotStore interface {
	Save(loc weather.Location, snap Snapshot)
	Latest(loc weather.Location) (Snapshot, error)
	History(loc weather.Location, from, to time.Time) ([]Snapshot, error)
}

// planHistory holds a time-ordered list of snapshots for one location.
type planHistory struct {
	snapshots []Snapshot
}

// MemoryStore is a concurrency-safe in-memory SnapshotStore.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: history
	data map[string]*planHistory

	maxHistory int           // max snapshots per location (0 = unlimited)
	maxAge     time.Duration // max snapshot age (0 = unlimited)
}

// NewMemoryStore creates a MemoryStore with optional retention limits.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*planHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a snapshot for the location and enforces retention.
func (s *MemoryStore) Save(loc weather.Location, snap Snapshot) {
	key := loc.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &planHistory{}
		s.data[key] = history
	}

	history.snapshots = append(history.snapshots, snap)

	if s.maxHistory > 0 && len(history.snapshots) > s.maxHistory {
		over := len(history.snapshots) - s.maxHistory
		history.snapshots = history.snapshots[over:]
	}

	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.snapshots); i++ {
			if !history.snapshots[i].TakenAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.snapshots) {
			history.snapshots = history.snapshots[i:]
		}
	}
}

// Latest returns the most recent snapshot for a location.
func (s *MemoryStore) Latest(loc weather.Location) (Snapshot, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.snapshots) == 0 {
		return Snapshot{}, ErrNotFound
	}
	return history.snapshots[len(history.snapshots)-1], nil
}

// History returns all snapshots taken between from and to (inclusive).
func (s *MemoryStore) History(loc weather.Location, from, to time.Time) ([]Snapshot, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.snapshots) == 0 {
		return nil, ErrNotFound
	}

	var result []Snapshot
	for _, snap := range history.snapshots {
		if !snap.TakenAt.Before(from) && !snap.TakenAt.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
