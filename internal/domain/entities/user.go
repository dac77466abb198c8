package entities

import (
	"time"
)

// User represents an admin account in the credential store. Only the
// bcrypt hash is ever held; the plaintext password never leaves the
// login request.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}
