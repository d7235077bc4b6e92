package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"geoboard/internal/construct"
	"geoboard/internal/engine"
)

// ============================================================
// Session Manager
// ============================================================

// Session это живой холст, управляемый через HTTP. Движок однопоточный,
// поэтому все обращения идут под mu.
type Session struct {
	ID string

	mu       sync.Mutex
	engine   *engine.Engine
	lastUsed time.Time
}

// Do выполняет fn с эксклюзивным доступом к движку сессии.
func (s *Session) Do(fn func(e *engine.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}

type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cfg      engine.Config
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionManager(cfg engine.Config, ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create заводит новую сессию с пустой сценой. Промпты без ответа
// отменяются.
func (m *SessionManager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:       uuid.NewString(),
		engine:   engine.New(m.cfg, engine.Options{Prompter: construct.Scripted{}}),
		lastUsed: m.now(),
	}
	m.sessions[s.ID] = s
	return s
}

// Get возвращает сессию и продлевает её жизнь.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if ok {
		s.lastUsed = m.now()
	}
	return s, ok
}

func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep удаляет сессии, простаивающие дольше ttl, и возвращает их число.
func (m *SessionManager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for id, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run периодически чистит простаивающие сессии до отмены ctx.
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Printf("[SESSION] evicted %d idle sessions", n)
			}
		}
	}
}
