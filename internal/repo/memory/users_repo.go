package memory

import (
	"context"
	"sync"

	"github.com/mwangikm/studenthub/internal/domain/user"
)

type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	byName map[string]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		byName: make(map[string]user.User),
	}
}

func (r *UsersRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byName[username]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) Create(_ context.Context, username, passwordHash string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[username]; ok {
		return user.User{}, user.ErrUsernameTaken
	}

	r.nextID++
	u := user.User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	r.byName[username] = u

	return u, nil
}
