// Package credentials implements the flat-file credential store the
// session gate consults at login. Records hold bcrypt hashes only.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/wardwatch/statuspanel/internal/domain/entities"
	"github.com/wardwatch/statuspanel/internal/domain/repositories"
	apperrors "github.com/wardwatch/statuspanel/pkg/errors"
)

// FileStore is a UserRepository backed by a JSON file. A missing file
// reads as an empty store; writes create it.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed user store at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// FindByUsername retrieves a user record by username
func (s *FileStore) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

// Create adds a user record, failing on duplicate username
func (s *FileStore) Create(ctx context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == user.Username {
			return apperrors.NewConflictError("username already exists")
		}
	}
	users = append(users, *user)
	return s.save(users)
}

// Delete removes a user record, reporting whether it existed
func (s *FileStore) Delete(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].Username == username {
			users = append(users[:i], users[i+1:]...)
			return true, s.save(users)
		}
	}
	return false, nil
}

// Count reports how many users the store holds
func (s *FileStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (s *FileStore) load() ([]entities.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, apperrors.NewInternalError("failed to read credential store", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var users []entities.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, apperrors.NewInternalError("credential store is corrupt", err)
	}
	return users, nil
}

func (s *FileStore) save(users []entities.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return apperrors.NewInternalError("failed to encode credential store", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return apperrors.NewInternalError("failed to write credential store", err)
	}
	return nil
}

var _ repositories.UserRepository = (*FileStore)(nil)
