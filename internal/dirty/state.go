// Package dirty tracks whether an editing surface holds unsaved changes.
package dirty

import (
	"sync"
	"time"
)

// State is the "has unsaved changes" flag plus the time of the last successful
// save. Editors set it; only the navigation confirmation flow clears it.
// The zero value is ready to use.
type State struct {
	mu          sync.RWMutex
	dirty       bool
	lastSavedAt time.Time
	now         func() time.Time
}

// New returns a clean State that reads time from now. A nil now uses time.Now.
func New(now func() time.Time) *State {
	return &State{now: now}
}

// SetDirty records whether there are unsaved changes.
func (s *State) SetDirty(v bool) {
	s.mu.Lock()
	s.dirty = v
	s.mu.Unlock()
}

// MarkSaved clears the flag and stamps the save time.
func (s *State) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
	if s.now != nil {
		s.lastSavedAt = s.now()
	} else {
		s.lastSavedAt = time.Now()
	}
}

// Discard clears the flag without touching the save time.
func (s *State) Discard() {
	s.SetDirty(false)
}

func (s *State) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// LastSavedAt is zero until the first MarkSaved.
func (s *State) LastSavedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSavedAt
}
