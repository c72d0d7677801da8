package session

import (
	"context"
	"sync"
	"time"

	"github.com/clipfetch/clipfetch/internal/extractor"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
	now      func() time.Time
}

// NewMemoryStore constructs the process-local Store used in the single
// instance deployment and in tests. Sessions survive only as long as
// the process does.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[int64]Session),
		now:      time.Now,
	}
}

func (m *memoryStore) Put(_ context.Context, userID int64, url string, meta extractor.Metadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	created := now
	if prev, ok := m.sessions[userID]; ok {
		created = prev.CreatedAt
	}
	m.sessions[userID] = Session{
		ActiveURL:     url,
		Meta:          meta,
		CreatedAt:     created,
		LastTouchedAt: now,
	}
	return nil
}

func (m *memoryStore) Get(_ context.Context, userID int64) (Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	return s, ok, nil
}

func (m *memoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

func (m *memoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions), nil
}
