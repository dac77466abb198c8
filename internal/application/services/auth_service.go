package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wardwatch/statuspanel/internal/domain/entities"
	"github.com/wardwatch/statuspanel/internal/domain/repositories"
	apperrors "github.com/wardwatch/statuspanel/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the session gate: it establishes, checks and destroys
// sessions, consulting the credential store only at login.
type AuthService struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	ttl      time.Duration
}

// NewAuthService creates the session gate
func NewAuthService(users repositories.UserRepository, sessions repositories.SessionRepository, ttl time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
	}
}

// Login verifies credentials and establishes an authenticated session.
// Empty fields fail validation before the credential store is touched;
// unknown users and hash mismatches both come back as the same
// unauthorized error so the response does not leak which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entities.Session, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username/password missing")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.TypeOf(err) != apperrors.ErrorTypeNotFound {
			log.Error().Err(err).Msg("credential store lookup failed")
		}
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	token, err := generateToken()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate session token", err)
	}

	now := time.Now()
	session := &entities.Session{
		Token:     token,
		Username:  username,
		IsAdmin:   true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Info().Str("username", username).Msg("session established")
	return session, nil
}

// Check reports whether token belongs to a live authenticated session.
// It never fails: any lookup problem reads as not authenticated. A live
// session is touched so the 2h window slides.
func (s *AuthService) Check(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil || !session.IsAdmin {
		return false
	}
	if err := s.sessions.Touch(ctx, token); err != nil {
		log.Warn().Err(err).Msg("failed to touch session")
	}
	return true
}

// Logout destroys the session; logging out an unknown token still succeeds
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// CreateUser adds an account to the credential store, hashing the
// password with bcrypt.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apperrors.NewValidationError("username/password missing")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}

	return s.users.Create(ctx, &entities.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
}

// DeleteUser removes an account from the credential store
func (s *AuthService) DeleteUser(ctx context.Context, username string) (bool, error) {
	return s.users.Delete(ctx, username)
}

// Bootstrap creates the configured admin account when the credential
// store is empty, so a fresh deployment can log in at all. A store that
// already has users is left alone.
func (s *AuthService) Bootstrap(ctx context.Context, username, password string) error {
	if password == "" {
		return nil
	}
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := s.CreateUser(ctx, username, password); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("bootstrap admin account created")
	return nil
}

// generateToken returns an opaque URL-safe session token
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
