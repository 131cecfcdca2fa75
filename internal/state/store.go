// Package state holds the shared item feed snapshot that the poller
// writes and the UI reads.
package state

import (
	"fmt"
	"sync"
	"time"

	"trove/internal/api"
)

// Snapshot represents the latest item feed available to the UI.
type Snapshot struct {
	Items               []api.Item
	Query               api.ItemQuery
	Loaded              bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple
// refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the item feed. Each query
// change bumps a sequence number; refresh results are tagged with the
// sequence they were issued for and discarded when a newer query has
// superseded them, so the displayed data always matches the most
// recently intended query no matter which trigger resolved last.
type Store struct {
	mu       sync.RWMutex
	query    api.ItemQuery
	seq      uint64
	snapshot Snapshot
}

// SetQuery records the intended query and returns the sequence number a
// refresh for it must carry. Setting the same query again does not bump
// the sequence, so an in-flight refresh for it stays valid.
func (s *Store) SetQuery(q api.ItemQuery) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q != s.query || s.seq == 0 {
		s.query = q
		s.seq++
	}
	return s.seq
}

// CurrentQuery returns the intended query and its sequence number.
func (s *Store) CurrentQuery() (api.ItemQuery, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query, s.seq
}

// Update applies a refresh result. Results for a superseded query are
// dropped entirely. When err is non-nil the previous items are kept but
// the error is recorded for visibility.
func (s *Store) Update(seq uint64, items []api.Item, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return
	}
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.Items = cloneItems(items)
	s.snapshot.Query = s.query
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current feed.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []api.Item) []api.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Item, len(items))
	copy(dup, items)
	return dup
}
