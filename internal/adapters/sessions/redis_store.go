package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/wardwatch/statuspanel/internal/domain/entities"
	"github.com/wardwatch/statuspanel/internal/domain/repositories"
	apperrors "github.com/wardwatch/statuspanel/pkg/errors"
)

const sessionKeyPrefix = "session:"

// RedisStore is a SessionRepository backed by Redis. The key TTL is the
// session expiry, so Redis evicts expired sessions on its own and Touch
// is a TTL reset. A circuit breaker keeps auth checks from hanging on a
// flapping Redis.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
}

// NewRedisStore creates a Redis session store, verifying connectivity
func NewRedisStore(ctx context.Context, client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "Redis-Sessions",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &RedisStore{client: client, ttl: ttl, breaker: breaker}, nil
}

// Create stores a new session
func (s *RedisStore) Create(ctx context.Context, session *entities.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return apperrors.NewInternalError("failed to encode session", err)
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, sessionKeyPrefix+session.Token, data, s.ttl).Err()
	})
	if err != nil {
		return apperrors.NewInternalError("failed to store session", err)
	}
	return nil
}

// Get retrieves a live session by token
func (s *RedisStore) Get(ctx context.Context, token string) (*entities.Session, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		data, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
		if err == redis.Nil {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		return data, err
	})
	if err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrorTypeNotFound {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to read session", err)
	}

	var session entities.Session
	if err := json.Unmarshal(result.([]byte), &session); err != nil {
		return nil, apperrors.NewInternalError("failed to decode session", err)
	}
	if session.Expired(time.Now()) {
		return nil, apperrors.NewNotFoundError("session not found")
	}
	return &session, nil
}

// Touch slides the session expiry by resetting the key TTL and the
// recorded expiry timestamp. The write uses SET XX so it only lands on
// a key that still exists: a logout racing the touch stays a logout.
func (s *RedisStore) Touch(ctx context.Context, token string) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrorTypeNotFound {
			return nil
		}
		return err
	}

	session.Touch(time.Now(), s.ttl)
	data, err := json.Marshal(session)
	if err != nil {
		return apperrors.NewInternalError("failed to encode session", err)
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		return nil, s.client.SetXX(ctx, sessionKeyPrefix+token, data, s.ttl).Err()
	})
	if err != nil {
		return apperrors.NewInternalError("failed to touch session", err)
	}
	return nil
}

// Delete destroys a session; idempotent
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, sessionKeyPrefix+token).Err()
	})
	if err != nil {
		return apperrors.NewInternalError("failed to delete session", err)
	}
	return nil
}

var _ repositories.SessionRepository = (*RedisStore)(nil)
