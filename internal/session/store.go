// ABOUTME: Server-held session store carrying a summary from summarize to automate
// ABOUTME: Entries expire after a TTL and are purged by Sweep
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harper/actionbrief/internal/models"
)

// DefaultTTL is how long an idle session survives
const DefaultTTL = time.Hour

// State is what one browser session carries between requests
type State struct {
	Summary      string
	OriginalText string
	Flashes      []models.Flash
}

// HasSummary reports whether a summarize step populated the session
func (s State) HasSummary() bool {
	return s.Summary != ""
}

type entry struct {
	state   State
	expires time.Time
}

// Store is an in-memory session store safe for concurrent use
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*entry
	now     func() time.Time
}

// NewStore creates a store; ttl <= 0 selects DefaultTTL
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// TTL returns the idle lifetime of a session
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create starts an empty session and returns its id
func (s *Store) Create() string {
	id := uuid.New().String()

	s.mu.Lock()
	s.entries[id] = &entry{expires: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return id
}

// Exists reports whether id names a live session
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return ok && s.now().Before(e.expires)
}

// Get returns a copy of the session state. Expired sessions are not found.
func (s *Store) Get(id string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || !s.now().Before(e.expires) {
		return State{}, false
	}

	st := e.state
	st.Flashes = append([]models.Flash(nil), e.state.Flashes...)
	return st, true
}

// SetSummary stores the result of a summarize step, keeping pending flashes
func (s *Store) SetSummary(id, summary, originalText string) {
	s.update(id, func(st *State) {
		st.Summary = summary
		st.OriginalText = originalText
	})
}

// AddFlash queues a one-shot message for the next page render
func (s *Store) AddFlash(id string, category models.FlashCategory, message string) {
	s.update(id, func(st *State) {
		st.Flashes = append(st.Flashes, models.Flash{Category: category, Message: message})
	})
}

// PopFlashes returns and clears the queued flashes
func (s *Store) PopFlashes(id string) []models.Flash {
	var flashes []models.Flash
	s.update(id, func(st *State) {
		flashes = st.Flashes
		st.Flashes = nil
	})
	return flashes
}

// update applies fn to the session, creating it under id if missing or
// expired, and extends its expiry.
func (s *Store) update(id string, fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[id]
	if !ok || !now.Before(e.expires) {
		e = &entry{}
		s.entries[id] = e
	}
	fn(&e.state)
	e.expires = now.Add(s.ttl)
}

// Delete removes a session
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Sweep removes expired sessions and returns how many were dropped
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired or not
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
