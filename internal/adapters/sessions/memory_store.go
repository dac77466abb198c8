// Package sessions provides the session stores backing the session
// gate: an in-memory store for single-process deployments and a Redis
// store used when Redis is reachable at startup.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/wardwatch/statuspanel/internal/domain/entities"
	"github.com/wardwatch/statuspanel/internal/domain/repositories"
	apperrors "github.com/wardwatch/statuspanel/pkg/errors"
)

// cleanupInterval is how often the janitor sweeps expired sessions
const cleanupInterval = 5 * time.Minute

// MemoryStore is an in-memory SessionRepository with expiry
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entities.Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a memory session store and starts its janitor
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*entities.Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Create stores a new session
func (s *MemoryStore) Create(ctx context.Context, session *entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.sessions[session.Token] = &copied
	return nil
}

// Get retrieves a live session; expired sessions behave as absent.
// The expiry check and the copy stay under the lock: Touch mutates the
// stored session in place.
func (s *MemoryStore) Get(ctx context.Context, token string) (*entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok || session.Expired(time.Now()) {
		return nil, apperrors.NewNotFoundError("session not found")
	}

	copied := *session
	return &copied, nil
}

// Touch slides a live session's expiry window
func (s *MemoryStore) Touch(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil
	}
	session.Touch(time.Now(), s.ttl)
	return nil
}

// Delete destroys a session; idempotent
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// Close stops the janitor
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for token, session := range s.sessions {
				if session.Expired(now) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		}
	}
}

var _ repositories.SessionRepository = (*MemoryStore)(nil)
