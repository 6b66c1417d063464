package tariff

import (
	"sync"
	"sync/atomic"
)

// Store holds the current tariff table. Readers get the published snapshot
// without locking; loading and reloading swap in a fully built table.
type Store struct {
	loader  *Loader
	current atomic.Pointer[Table]
	loadMu  sync.Mutex
}

// NewStore creates a Store. The table is loaded lazily on first use.
func NewStore(loader *Loader) *Store {
	return &Store{loader: loader}
}

// Table returns the memoized table, loading it on the first call.
func (s *Store) Table() *Table {
	if t := s.current.Load(); t != nil {
		return t
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if t := s.current.Load(); t != nil {
		return t
	}
	t := s.loader.Load()
	s.current.Store(t)
	return t
}

// Reload builds a new table from the source and publishes it.
func (s *Store) Reload() *Table {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	t := s.loader.Load()
	s.current.Store(t)
	return t
}

// Invalidate drops the memoized table; the next Table call reloads it.
func (s *Store) Invalidate() {
	s.current.Store(nil)
}

// Path returns the source path of the underlying loader.
func (s *Store) Path() string {
	return s.loader.Path()
}
