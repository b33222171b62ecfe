// Package session holds the in-memory application state for one dashboard
// session: the current snapshot, the favorites set and the active unit
// system. Nothing here is persisted; state lives only for the process
// lifetime.
package session

import (
	"sync"

	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/units"
	"github.com/skycast/skycast/internal/weather"
)

// Store owns all mutable session state. Every mutation is a full replacement
// of the affected value, so readers never observe a half-updated snapshot.
//
// Snapshot publication is generation-guarded: each fetch obtains a token from
// Begin, and Publish only accepts the token of the latest-issued fetch. A
// slow fetch that resolves after a newer one started can therefore never
// overwrite the newer result.
type Store struct {
	mu        sync.Mutex
	issued    uint64
	snapshot  *weather.Snapshot
	favorites []location.Location
	units     units.System
}

func NewStore(defaultUnits units.System) *Store {
	if !defaultUnits.Valid() {
		defaultUnits = units.Metric
	}
	return &Store{units: defaultUnits}
}

// Begin registers a new fetch and returns its generation token.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Publish atomically replaces the snapshot if gen belongs to the latest
// issued fetch. It reports whether the snapshot was accepted.
func (s *Store) Publish(gen uint64, snap *weather.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.issued {
		return false
	}
	s.snapshot = snap
	return true
}

// Snapshot returns the last published snapshot, or nil when no fetch has
// succeeded yet. A failed fetch leaves the previous snapshot in place.
func (s *Store) Snapshot() *weather.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *Store) Units() units.System {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units
}

// SetUnits switches the display unit system. It reports whether the value
// was accepted.
func (s *Store) SetUnits(sys units.System) bool {
	if !sys.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units = sys
	return true
}

// Favorites returns a copy of the favorites in insertion order.
func (s *Store) Favorites() []location.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]location.Location, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// AddFavorite appends a location to the favorites set. Names are unique;
// adding a duplicate name reports false and leaves the set unchanged.
func (s *Store) AddFavorite(loc location.Location) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fav := range s.favorites {
		if fav.Name == loc.Name {
			return false
		}
	}
	s.favorites = append(s.favorites, loc)
	return true
}

// RemoveFavorite deletes the favorite with the given name, reporting whether
// it existed.
func (s *Store) RemoveFavorite(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, fav := range s.favorites {
		if fav.Name == name {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return true
		}
	}
	return false
}

// ClearFavorites empties the favorites set.
func (s *Store) ClearFavorites() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = nil
}
