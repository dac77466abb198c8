package credentials_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardwatch/statuspanel/internal/adapters/credentials"
	"github.com/wardwatch/statuspanel/internal/domain/entities"
	apperrors "github.com/wardwatch/statuspanel/pkg/errors"
)

func tempStore(t *testing.T) *credentials.FileStore {
	t.Helper()
	return credentials.NewFileStore(filepath.Join(t.TempDir(), "users.json"))
}

func TestFileStore_MissingFileReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = store.FindByUsername(ctx, "admin")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestFileStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)

	require.NoError(t, store.Create(ctx, &entities.User{
		Username:     "admin",
		PasswordHash: "$2a$10$fakehash",
		CreatedAt:    time.Now(),
	}))

	user, err := store.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$fakehash", user.PasswordHash)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFileStore_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)

	require.NoError(t, store.Create(ctx, &entities.User{Username: "admin", PasswordHash: "h1"}))

	err := store.Create(ctx, &entities.User{Username: "admin", PasswordHash: "h2"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
}

func TestFileStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)

	require.NoError(t, store.Create(ctx, &entities.User{Username: "admin", PasswordHash: "h"}))

	existed, err := store.Delete(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = store.Delete(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")

	first := credentials.NewFileStore(path)
	require.NoError(t, first.Create(ctx, &entities.User{Username: "admin", PasswordHash: "h"}))

	second := credentials.NewFileStore(path)
	user, err := second.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "h", user.PasswordHash)
}

func TestFileStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := credentials.NewFileStore(path)
	_, err := store.FindByUsername(ctx, "admin")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.TypeOf(err))
}
