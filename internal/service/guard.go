package service

import (
	"context"
	"sync"
)

// MemoryGuard is a SubmitGuard for a single frontend instance
type MemoryGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{inFlight: make(map[string]struct{})}
}

// Acquire marks the session as submitting
func (g *MemoryGuard) Acquire(ctx context.Context, sessionID string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[sessionID]; busy {
		return nil, ErrSubmissionInFlight
	}
	g.inFlight[sessionID] = struct{}{}

	return sync.OnceFunc(func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.inFlight, sessionID)
	}), nil
}

func (g *MemoryGuard) Held(ctx context.Context, sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.inFlight[sessionID]
	return busy
}
