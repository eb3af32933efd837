package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

var (
	// ErrNotFound is returned when no session exists for an id.
	ErrNotFound = errors.New("no dashboard session for id")
)

type entry struct {
	session  *dashboard.Session
	lastSeen time.Time
}

// MemoryStore is a concurrency-safe in-memory store of page sessions.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*entry

	// retention configuration
	maxSessions int           // max number of open sessions (0 = unlimited)
	maxAge      time.Duration // idle time after which a session is swept (0 = never)

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
func NewMemoryStore(maxSessions int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*entry),
		maxSessions: maxSessions,
		maxAge:      maxAge,
		now:         time.Now,
	}
}

// Save adds a session and enforces the session limit by dropping the least
// recently used ones.
func (s *MemoryStore) Save(session *dashboard.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[session.ID] = &entry{session: session, lastSeen: s.now()}

	if s.maxSessions <= 0 || len(s.data) <= s.maxSessions {
		return
	}
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.data[ids[i]].lastSeen.Before(s.data[ids[j]].lastSeen)
	})
	for _, id := range ids[:len(ids)-s.maxSessions] {
		delete(s.data, id)
	}
}

// Get returns the session for id and marks it as used.
func (s *MemoryStore) Get(id string) (*dashboard.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = s.now()
	return e.session, nil
}

// Sweep drops sessions idle for longer than the configured max age and
// returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for id, e := range s.data {
		if e.lastSeen.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}
