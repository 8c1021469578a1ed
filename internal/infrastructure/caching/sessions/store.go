// Package sessions provides the in-memory intake session store
package sessions

import (
	"sync"
	"time"

	"github.com/hearsaylabs/revuloop-go/internal/domain/dialogue"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
)

// Store implements the per-contact session cache. The map is guarded by an
// RWMutex; each session entry carries its own mutex so concurrent messages
// from different contacts never block one another while a single contact's
// turns stay serialized.
type Store struct {
	sessions map[string]*dialogue.Session
	mu       sync.RWMutex
	logger   *logging.ChanneledLogger
}

// NewStore creates a new session store.
func NewStore(logger *logging.ChanneledLogger) *Store {
	if logger != nil {
		logger.Cache().Info("Initializing session store")
	}
	return &Store{
		sessions: make(map[string]*dialogue.Session),
		logger:   logger,
	}
}

// GetOrCreate returns the existing session for a contact or lazily creates a
// fresh one at the initial step. The second return reports whether the
// session already existed.
func (s *Store) GetOrCreate(contactID string) (*dialogue.Session, bool) {
	start := time.Now()

	s.mu.RLock()
	session, exists := s.sessions[contactID]
	s.mu.RUnlock()

	if exists {
		if s.logger != nil {
			s.logger.LogCacheOperation("get_or_create", contactID, true, time.Since(start))
		}
		return session, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock; another message may have raced us here.
	if session, exists = s.sessions[contactID]; exists {
		if s.logger != nil {
			s.logger.LogCacheOperation("get_or_create", contactID, true, time.Since(start))
		}
		return session, true
	}

	session = dialogue.NewSession(contactID)
	s.sessions[contactID] = session

	if s.logger != nil {
		s.logger.LogCacheOperation("get_or_create", contactID, false, time.Since(start))
	}
	return session, false
}

// Reset replaces the contact's session with a fresh one at the initial step.
func (s *Store) Reset(contactID string) {
	start := time.Now()

	s.mu.Lock()
	s.sessions[contactID] = dialogue.NewSession(contactID)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.LogCacheOperation("reset", contactID, true, time.Since(start))
	}
}

// Count returns the number of sessions currently held.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PurgeExpired evicts sessions idle longer than ttl and returns the count
// removed. Abandoned dialogues are discarded rather than completed, so an
// expired contact simply starts over on their next message.
func (s *Store) PurgeExpired(ttl time.Duration) int {
	start := time.Now()
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int
	for contactID, session := range s.sessions {
		if now.Sub(session.LastActivity) > ttl {
			delete(s.sessions, contactID)
			purged++
		}
	}

	if s.logger != nil && purged > 0 {
		s.logger.Cache().Info("Expired sessions purged", "count", purged, "remaining", len(s.sessions), "duration", time.Since(start))
	}
	return purged
}
