package repositories

import (
	"context"

	"github.com/wardwatch/statuspanel/internal/domain/entities"
)

// UserRepository defines the narrow interface over the credential
// store. The store may be empty or unreadable; FindByUsername returns a
// not found error in either case rather than failing login hard.
type UserRepository interface {
	// FindByUsername retrieves a user record by username
	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	// Create adds a user record, failing on duplicate username
	Create(ctx context.Context, user *entities.User) error

	// Delete removes a user record, reporting whether it existed
	Delete(ctx context.Context, username string) (bool, error)

	// Count reports how many users the store holds
	Count(ctx context.Context) (int, error)
}
