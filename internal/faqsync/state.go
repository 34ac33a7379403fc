// Package faqsync rebuilds the FAQ search index from the record store.
package faqsync

import "time"

// DefaultMinInterval is the debounce between two syncs of changed content.
const DefaultMinInterval = 60 * time.Second

// State remembers the last successful sync.
type State struct {
	LastHash    string
	LastSync    time.Time
	MinInterval time.Duration
}

// IsDue reports whether enough time has passed since the last sync.
func (s State) IsDue(now time.Time) bool {
	if s.LastSync.IsZero() {
		return true
	}
	interval := s.MinInterval
	if interval <= 0 {
		interval = DefaultMinInterval
	}
	return now.Sub(s.LastSync) >= interval
}

// ShouldSync is false when the content is unchanged or the last sync is too recent.
func (s State) ShouldSync(now time.Time, hash string) bool {
	return hash != s.LastHash && s.IsDue(now)
}

// Synced returns the state after a successful sync of hash at now.
func (s State) Synced(now time.Time, hash string) State {
	s.LastHash = hash
	s.LastSync = now
	return s
}
