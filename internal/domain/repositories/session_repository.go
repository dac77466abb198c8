package repositories

import (
	"context"

	"github.com/wardwatch/statuspanel/internal/domain/entities"
)

// SessionRepository defines the interface for session storage. Expired
// sessions behave as absent: Get never returns one.
type SessionRepository interface {
	// Create stores a new session
	Create(ctx context.Context, session *entities.Session) error

	// Get retrieves a live session by token; nil, not found error when
	// the token is unknown or expired
	Get(ctx context.Context, token string) (*entities.Session, error)

	// Touch slides a session's expiry window; a no-op for unknown tokens
	Touch(ctx context.Context, token string) error

	// Delete destroys a session; idempotent
	Delete(ctx context.Context, token string) error
}
