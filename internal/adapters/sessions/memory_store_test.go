package sessions_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardwatch/statuspanel/internal/adapters/sessions"
	"github.com/wardwatch/statuspanel/internal/domain/entities"
	apperrors "github.com/wardwatch/statuspanel/pkg/errors"
)

func newSession(token string, ttl time.Duration) *entities.Session {
	now := time.Now()
	return &entities.Session{
		Token:     token,
		Username:  "admin",
		IsAdmin:   true,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewMemoryStore(time.Hour)
	defer store.Close()

	require.NoError(t, store.Create(ctx, newSession("tok1", time.Hour)))

	got, err := store.Get(ctx, "tok1")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
	assert.True(t, got.IsAdmin)
}

func TestMemoryStore_ExpiredBehavesAsAbsent(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewMemoryStore(time.Hour)
	defer store.Close()

	require.NoError(t, store.Create(ctx, newSession("tok1", -time.Minute)))

	_, err := store.Get(ctx, "tok1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestMemoryStore_TouchSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewMemoryStore(time.Hour)
	defer store.Close()

	require.NoError(t, store.Create(ctx, newSession("tok1", time.Minute)))
	require.NoError(t, store.Touch(ctx, "tok1"))

	got, err := store.Get(ctx, "tok1")
	require.NoError(t, err)
	assert.Greater(t, got.ExpiresAt, time.Now().Add(30*time.Minute))
}

func TestMemoryStore_TouchUnknownTokenIsNoop(t *testing.T) {
	store := sessions.NewMemoryStore(time.Hour)
	defer store.Close()

	assert.NoError(t, store.Touch(context.Background(), "missing"))
}

func TestMemoryStore_ConcurrentGetAndTouch(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewMemoryStore(time.Hour)
	defer store.Close()

	require.NoError(t, store.Create(ctx, newSession("tok1", time.Hour)))

	// the gate does Get-then-Touch per request, so two requests with the
	// same cookie read and slide the same session at once
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got, err := store.Get(ctx, "tok1")
				require.NoError(t, err)
				assert.Equal(t, "admin", got.Username)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				require.NoError(t, store.Touch(ctx, "tok1"))
			}
		}()
	}
	wg.Wait()
}

func TestMemoryStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewMemoryStore(time.Hour)
	defer store.Close()

	require.NoError(t, store.Create(ctx, newSession("tok1", time.Hour)))
	require.NoError(t, store.Delete(ctx, "tok1"))
	require.NoError(t, store.Delete(ctx, "tok1"))

	_, err := store.Get(ctx, "tok1")
	assert.Error(t, err)
}
