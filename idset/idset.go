// Package idset maps feature and class names to dense integer ids.
//
// An IDSet hands out ids in first-seen order starting at a configurable
// first id. Once frozen it only resolves names it already knows, which is how
// a test corpus reuses the ids assigned while building the training corpus.
package idset

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors.
var (
	// ErrFrozen is returned by GetID for an unknown name after Freeze.
	ErrFrozen = errors.New("idset: set is frozen")

	// ErrEmptyName is returned for the empty name.
	ErrEmptyName = errors.New("idset: empty name")

	// ErrDuplicateName is returned by FromNames for a repeated name.
	ErrDuplicateName = errors.New("idset: duplicate name")
)

// IDSet is a bidirectional name ↔ id registry. It is safe for concurrent use.
type IDSet struct {
	mu      sync.RWMutex
	firstID int
	ids     map[string]int
	names   []string // names[id-firstID]
	frozen  bool
}

// New returns an empty set whose first allocated id is firstID.
func New(firstID int) *IDSet {
	return &IDSet{firstID: firstID, ids: make(map[string]int)}
}

// FromNames rebuilds a set from names listed in id order.
func FromNames(firstID int, names []string) (*IDSet, error) {
	s := New(firstID)
	for _, n := range names {
		if n == "" {
			return nil, ErrEmptyName
		}
		if _, dup := s.ids[n]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, n)
		}
		s.ids[n] = firstID + len(s.names)
		s.names = append(s.names, n)
	}

	return s, nil
}

// GetID returns the id of name, allocating the next id if the name is new.
// A frozen set returns ErrFrozen for new names.
func (s *IDSet) GetID(name string) (int, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	s.mu.RLock()
	id, ok := s.ids[name]
	s.mu.RUnlock()
	if ok {
		return id, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// re-check: another writer may have won the race
	if id, ok = s.ids[name]; ok {
		return id, nil
	}
	if s.frozen {
		return 0, fmt.Errorf("%w: unknown name %q", ErrFrozen, name)
	}
	id = s.firstID + len(s.names)
	s.ids[name] = id
	s.names = append(s.names, name)

	return id, nil
}

// Lookup returns the id of a known name without allocating.
func (s *IDSet) Lookup(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.ids[name]

	return id, ok
}

// Name returns the name registered under id.
func (s *IDSet) Name(id int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k := id - s.firstID
	if k < 0 || k >= len(s.names) {
		return "", false
	}

	return s.names[k], true
}

// Names returns a copy of all names in id order.
func (s *IDSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.names))
	copy(out, s.names)

	return out
}

// Len is the number of registered names.
func (s *IDSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.names)
}

// FirstID is the id given to the first registered name.
func (s *IDSet) FirstID() int { return s.firstID }

// Freeze stops allocation of new ids. It cannot be undone.
func (s *IDSet) Freeze() {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
}

// Frozen reports whether Freeze was called.
func (s *IDSet) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.frozen
}
