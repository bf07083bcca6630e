package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pdf-extractor/backend/internal/workflow"
	"github.com/rs/zerolog/log"
)

// MaxSessions limits concurrent sessions to bound spooled files on disk
const MaxSessions = 1000

// Manager owns one workflow per browser session.
type Manager struct {
	sessions map[string]*SessionState
	mu       sync.RWMutex
	files    workflow.FileRemover
}

// SessionState holds a session's workflow and access bookkeeping.
type SessionState struct {
	Workflow     *workflow.Workflow
	CreatedAt    time.Time
	LastAccessed time.Time
}

// NewManager creates a session manager. files receives deletions of
// spooled PDFs when selections are replaced or sessions expire.
func NewManager(files workflow.FileRemover) *Manager {
	return &Manager{
		sessions: make(map[string]*SessionState),
		files:    files,
	}
}

// StartSession creates a new session with an idle workflow.
func (m *Manager) StartSession() *workflow.Workflow {
	m.cleanupOldSessionsIfNeeded()

	id := uuid.New().String()
	now := time.Now()
	state := &SessionState{
		Workflow:     workflow.New(id, m.files),
		CreatedAt:    now,
		LastAccessed: now,
	}

	m.mu.Lock()
	m.sessions[id] = state
	m.mu.Unlock()

	log.Debug().Str("session", id[:8]).Msg("session started")
	return state.Workflow
}

// GetSession returns the workflow for id and marks it accessed.
func (m *Manager) GetSession(id string) (*workflow.Workflow, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	state.LastAccessed = time.Now()
	return state.Workflow, true
}

// GetOrStart returns the workflow for id, starting a new session when id is
// empty or unknown.
func (m *Manager) GetOrStart(id string) (wf *workflow.Workflow, created bool) {
	if id != "" {
		if wf, ok := m.GetSession(id); ok {
			return wf, false
		}
	}
	return m.StartSession(), true
}

// TouchSession updates the last accessed time for a session.
func (m *Manager) TouchSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state, ok := m.sessions[id]; ok {
		state.LastAccessed = time.Now()
		return true
	}
	return false
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupOldSessions removes sessions idle for longer than maxAge. Sessions
// with a conversion in flight are kept.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	var expired []*SessionState
	for id, state := range m.sessions {
		if state.LastAccessed.Before(cutoff) && !state.Workflow.Busy() {
			expired = append(expired, state)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, state := range expired {
		state.Workflow.Close()
	}
	if len(expired) > 0 {
		log.Info().Int("removed", len(expired)).Msg("expired sessions cleaned up")
	}
	return len(expired)
}

// cleanupOldSessionsIfNeeded evicts the least recently used idle sessions
// when at capacity.
func (m *Manager) cleanupOldSessionsIfNeeded() {
	m.mu.Lock()
	if len(m.sessions) < MaxSessions {
		m.mu.Unlock()
		return
	}

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return m.sessions[ids[i]].LastAccessed.Before(m.sessions[ids[j]].LastAccessed)
	})

	var evicted []*SessionState
	for _, id := range ids {
		if len(m.sessions) < MaxSessions {
			break
		}
		state := m.sessions[id]
		if state.Workflow.Busy() {
			continue
		}
		evicted = append(evicted, state)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, state := range evicted {
		state.Workflow.Close()
	}
}
