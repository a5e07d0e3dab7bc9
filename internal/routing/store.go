package routing

import "sync/atomic"

// Store holds the current routing table. Readers never block; a reload
// publishes a complete new table with a single atomic swap.
type Store struct {
	current atomic.Pointer[Table]
}

// NewStore creates a store holding initial, which may be nil.
func NewStore(initial *Table) *Store {
	s := &Store{}
	if initial != nil {
		s.current.Store(initial)
	}
	return s
}

// Load returns the current table, or nil if none is installed.
func (s *Store) Load() *Table {
	return s.current.Load()
}

// Swap installs table and returns the previous one.
func (s *Store) Swap(table *Table) *Table {
	return s.current.Swap(table)
}

// FirstMatch looks req up in the current table.
func (s *Store) FirstMatch(req Request) (*Rule, error) {
	table := s.current.Load()
	if table == nil {
		return nil, ErrNoTable
	}
	return table.FirstMatch(req)
}
