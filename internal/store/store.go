// Package store holds the in-memory record set of one shooter's session.
package store

import (
	"sync"

	"backend-shottracker/internal/shot"
)

// Store is the single owner of a session's records. Readers get copies.
type Store struct {
	mu      sync.RWMutex
	records []shot.Record
}

func New(records []shot.Record) *Store {
	s := &Store{}
	s.Replace(records)
	return s
}

// Replace swaps in a freshly loaded record set.
func (s *Store) Replace(records []shot.Record) {
	cp := make([]shot.Record, len(records))
	copy(cp, records)

	s.mu.Lock()
	s.records = cp
	s.mu.Unlock()
}

// Upsert drops any record in the same (date, zone) slot and appends rec.
// The old makes and attempts are discarded, not merged.
func (s *Store) Upsert(rec shot.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0:0]
	for _, r := range s.records {
		if !r.SameSlot(rec) {
			kept = append(kept, r)
		}
	}
	s.records = append(kept, rec)
}

// Snapshot returns a copy of the records in insertion order.
func (s *Store) Snapshot() []shot.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]shot.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
