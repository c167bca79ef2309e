package config

import (
	"sync"
	"sync/atomic"
)

// Watcher receives every newly published Config snapshot.
type Watcher interface {
	ApplyConfig(*Config)
}

// Store holds the live Config snapshot. Publish replaces it atomically, so
// a reader always sees either the old snapshot or the new one, never a mix.
type Store struct {
	current atomic.Pointer[Config]

	mu       sync.Mutex
	watchers []Watcher
}

// NewStore creates a store seeded with a normalized copy of initial.
// A nil initial seeds the factory defaults.
func NewStore(initial *Config) *Store {
	s := &Store{}
	if initial == nil {
		initial = Default()
	}
	s.Publish(initial)
	return s
}

// Snapshot returns the current Config. The returned value must be treated
// as read-only; it is shared by every component holding it.
func (s *Store) Snapshot() *Config {
	return s.current.Load()
}

// Publish normalizes a private copy of cfg, installs it as the current
// snapshot, and fans it out to all registered watchers.
func (s *Store) Publish(cfg *Config) {
	cp := *cfg
	cp.Normalize()
	s.current.Store(&cp)

	s.mu.Lock()
	watchers := make([]Watcher, len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.Unlock()

	for _, w := range watchers {
		w.ApplyConfig(&cp)
	}
}

// Watch registers a watcher and immediately applies the current snapshot to
// it, so late registration never misses the initial configuration.
func (s *Store) Watch(w Watcher) {
	s.mu.Lock()
	s.watchers = append(s.watchers, w)
	s.mu.Unlock()

	w.ApplyConfig(s.Snapshot())
}
