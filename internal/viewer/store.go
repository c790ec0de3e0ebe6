package viewer

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")

	errNoLoader = errors.New("no jobs loader configured")
)

const DefaultIdleTTL = 30 * time.Minute

// Store keeps live sessions in memory. Nothing is persisted.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	debounce time.Duration
	logger   *log.Logger
}

func NewStore(debounce time.Duration, logger *log.Logger) *Store {
	return &Store{
		sessions: map[uuid.UUID]*Session{},
		debounce: debounce,
		logger:   logger,
	}
}

func (st *Store) Create() *Session {
	s := NewSession(uuid.New(), st.debounce, st.logger)
	st.mu.Lock()
	st.sessions[s.ID] = s
	n := len(st.sessions)
	st.mu.Unlock()
	if st.logger != nil {
		st.logger.Printf("[Viewer] session created id=%s active=%d", s.ID, n)
	}
	return s
}

func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok || s.Closed() {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (st *Store) Delete(id uuid.UUID) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep closes and removes sessions with no activity for longer than idle.
// It returns the ids of the removed sessions.
func (st *Store) Sweep(idle time.Duration) []uuid.UUID {
	if idle <= 0 {
		idle = DefaultIdleTTL
	}
	cutoff := time.Now().Add(-idle)

	st.mu.Lock()
	expired := make([]*Session, 0)
	for id, s := range st.sessions {
		if s.LastActive().Before(cutoff) || s.Closed() {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(expired))
	for _, s := range expired {
		s.Close()
		ids = append(ids, s.ID)
	}
	if len(ids) > 0 && st.logger != nil {
		st.logger.Printf("[Viewer] swept idle sessions=%d", len(ids))
	}
	return ids
}

// CloseAll closes every session, used on shutdown.
func (st *Store) CloseAll() {
	st.mu.Lock()
	all := st.sessions
	st.sessions = map[uuid.UUID]*Session{}
	st.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}
