package backend

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ryand2626/recruitment-pipeline/internal/pipeline"
)

// UserSession manages resources for a single client's pipeline run
type UserSession struct {
	ID        string
	Progress  chan pipeline.ProgressUpdate
	Ctx       context.Context
	CancelFn  context.CancelFunc
	CreatedAt time.Time

	mu     sync.Mutex
	result *pipeline.Result
}

func (s *UserSession) setResult(res pipeline.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = &res
}

// Result returns the finished run's result, if the run has completed.
func (s *UserSession) Result() (pipeline.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return pipeline.Result{}, false
	}
	return *s.result, true
}

// SessionManager handles concurrent client sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*UserSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*UserSession),
	}
}

func (sm *SessionManager) CreateSession(clientID string) (*UserSession, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	// A client gets one active session; starting a new run cancels the old
	// one. The cancelled run closes its own progress channel when it winds
	// down, so nothing closes it here.
	if existing, ok := sm.sessions[clientID]; ok {
		existing.CancelFn()
	}

	ctx, cancel := context.WithCancel(context.Background())
	session := &UserSession{
		ID:        uuid.New().String(),
		Progress:  make(chan pipeline.ProgressUpdate, 100),
		Ctx:       ctx,
		CancelFn:  cancel,
		CreatedAt: time.Now(),
	}

	sm.sessions[clientID] = session
	return session, nil
}

func (sm *SessionManager) GetSession(clientID string) (*UserSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, ok := sm.sessions[clientID]
	return session, ok
}

// GetSessionByID finds a session by its internal session ID (not the clientID).
func (sm *SessionManager) GetSessionByID(sessionID string) (*UserSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for _, session := range sm.sessions {
		if session != nil && session.ID == sessionID {
			return session, true
		}
	}
	return nil, false
}

func (sm *SessionManager) RemoveSession(clientID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if session, ok := sm.sessions[clientID]; ok {
		session.CancelFn()
		delete(sm.sessions, clientID)
	}
}

// RemoveBySessionID removes a session by its internal ID.
func (sm *SessionManager) RemoveBySessionID(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for clientID, session := range sm.sessions {
		if session != nil && session.ID == sessionID {
			session.CancelFn()
			delete(sm.sessions, clientID)
			return
		}
	}
}

// CleanupStale removes sessions older than maxAge.
func (sm *SessionManager) CleanupStale(maxAge time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	for clientID, session := range sm.sessions {
		if now.Sub(session.CreatedAt) > maxAge {
			session.CancelFn()
			delete(sm.sessions, clientID)
		}
	}
}
