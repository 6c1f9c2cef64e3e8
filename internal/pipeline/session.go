package pipeline

import (
	"sync"
	"time"
)

// State is an orchestrator stage.
type State string

const (
	StateSelecting        State = "selecting"
	StateFilteringGarbage State = "filtering_garbage"
	StateLearningGarbage  State = "learning_garbage"
	StateEmittingFinal    State = "emitting_final"
	StateCleanupPending   State = "cleanup_pending"
	StateDone             State = "done"
)

// Session tracks one caller's pipeline progress and last delivered result.
type Session struct {
	State      State     `json:"state"`
	LastResult string    `json:"last_result"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SessionStore holds per-caller pipeline state. Injected so the orchestrator
// stays free of package-level mutable maps.
type SessionStore interface {
	Get(id string) (Session, bool)
	Put(id string, s Session)
	Delete(id string)
}

// MemorySessions is a map-backed SessionStore safe for concurrent use.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemorySessions creates an empty in-memory session store.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]Session)}
}

func (m *MemorySessions) Get(id string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *MemorySessions) Put(id string, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = s
}

func (m *MemorySessions) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
