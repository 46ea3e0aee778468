package session

import (
	"context"
	"sync"
	"time"

	"github.com/gridiron-labs/trivia-exam/internal/quiz"
)

type memoryEntry struct {
	result    quiz.Result
	expiresAt time.Time
}

// MemoryStore is an in-process session store used when no Redis URL is
// configured. Entries expire lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore builds an in-memory store with the given result TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SaveResult stores the result for the session and resets its expiry.
func (s *MemoryStore) SaveResult(_ context.Context, sessionID string, result quiz.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = memoryEntry{
		result:    result,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// GetResult loads the session's result, dropping and reporting ErrResultNotFound
// for expired entries.
func (s *MemoryStore) GetResult(_ context.Context, sessionID string) (quiz.Result, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok {
		return quiz.Result{}, ErrResultNotFound
	}

	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return quiz.Result{}, ErrResultNotFound
	}

	return entry.result, nil
}

// ClearResult removes the session's result. Clearing an absent result is not
// an error.
func (s *MemoryStore) ClearResult(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}
