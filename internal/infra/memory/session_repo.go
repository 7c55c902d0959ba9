package memory

import (
	"sync"

	"lead-triage-telegram-bot/internal/usecase"
)

// SessionRepo — сессии разбора в памяти; теряются при рестарте
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[int64]usecase.ReviewSession
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[int64]usecase.ReviewSession)}
}

func (r *SessionRepo) Get(operatorID int64) (usecase.ReviewSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[operatorID]
	return s, ok
}

func (r *SessionRepo) Put(operatorID int64, s usecase.ReviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[operatorID] = s
	return nil
}
