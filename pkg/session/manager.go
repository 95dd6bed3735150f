package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"estufas/pkg/inventory"
)

// Manager owns one Session per user.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	engine   *inventory.Engine
	ttl      time.Duration
}

func NewManager(engine *inventory.Engine, ttl time.Duration) *Manager {
	return &Manager{sessions: map[uuid.UUID]*Session{}, engine: engine, ttl: ttl}
}

// Create starts a fresh session with a random id.
func (m *Manager) Create() *Session {
	s := New(uuid.New(), m.engine)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	log.Printf("[session] created %s", s.ID)
	return s
}

func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Resolve returns the session named by raw, creating a new one when raw is
// not a known session id.
func (m *Manager) Resolve(raw string) *Session {
	if id, err := uuid.Parse(raw); err == nil {
		if s, ok := m.Get(id); ok {
			return s
		}
	}
	return m.Create()
}

// Destroy forgets a session. It reports whether the session existed.
func (m *Manager) Destroy(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	log.Printf("[session] destroyed %s", id)
	return true
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle since before now-ttl and returns how many went.
// A zero ttl disables eviction.
func (m *Manager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	cut := now.Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastSeen().Before(cut) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		log.Printf("[session] evicted %d idle sessions", n)
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			m.Sweep(now)
		}
	}
}
