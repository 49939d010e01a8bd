package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/criteria"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/notify"
)

// Session is everything the frontend remembers about one browser
type Session struct {
	ID            string          `json:"id"`
	Criteria      *criteria.State `json:"criteria"`
	Notifications notify.Stack    `json:"notifications"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewSession returns an empty session with a fresh form
func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		Criteria: criteria.NewState(),
	}
}

func decodeSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if s.Criteria == nil {
		s.Criteria = criteria.NewState()
	}
	if s.Criteria.Selections == nil {
		s.Criteria.Selections = make(map[criteria.SelectID][]string)
	}
	return &s, nil
}

// MemoryStore keeps sessions in process. Entries expire ttl after their last save.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry

	// expired entries are swept at most once per ttl
	nextSweep time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

// Load returns a copy of the stored session
func (m *MemoryStore) Load(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	if ok && m.ttl > 0 && !m.now().Before(entry.expiresAt) {
		delete(m.sessions, id)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeSession(entry.data)
}

// Save stores a snapshot of session
func (m *MemoryStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = m.now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep(session.UpdatedAt)
	m.sessions[session.ID] = memoryEntry{data: data, expiresAt: session.UpdatedAt.Add(m.ttl)}
	return nil
}

// sweep drops expired entries. Callers hold m.mu.
func (m *MemoryStore) sweep(now time.Time) {
	if m.ttl <= 0 || now.Before(m.nextSweep) {
		return
	}
	for id, entry := range m.sessions {
		if !now.Before(entry.expiresAt) {
			delete(m.sessions, id)
		}
	}
	m.nextSweep = now.Add(m.ttl)
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
