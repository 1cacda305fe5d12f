package session

import (
	"context"
	"sync"
	"time"

	"bookline/models"
)

// MemoryStore keeps sessions in a mutex-guarded map. Abandoned sessions are
// reaped by EvictExpired, which the host process runs on a schedule;
// without it the map grows forever.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	ttl      time.Duration
}

// NewMemoryStore creates an in-memory store. A ttl of zero disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
	}
}

func (m *MemoryStore) expired(s *models.Session) bool {
	return m.ttl > 0 && time.Since(s.UpdatedAt) > m.ttl
}

func (m *MemoryStore) GetOrCreate(_ context.Context, sender string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sender]; ok && !m.expired(s) {
		return s, nil
	}
	s := &models.Session{Sender: sender, Step: models.StepWelcome, UpdatedAt: time.Now().UTC()}
	m.sessions[sender] = s
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = time.Now().UTC()
	m.sessions[s.Sender] = s
	return nil
}

func (m *MemoryStore) Reset(_ context.Context, sender string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &models.Session{Sender: sender, Step: models.StepWelcome, UpdatedAt: time.Now().UTC()}
	m.sessions[sender] = s
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, sender string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sender)
	return nil
}

// EvictExpired removes sessions idle longer than the TTL and reports how
// many were dropped.
func (m *MemoryStore) EvictExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for sender, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, sender)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
