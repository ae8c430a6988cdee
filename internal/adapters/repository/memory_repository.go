package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

var (
	_ domain.StateRepository = (*InMemoryStateRepository)(nil)
	_ domain.UserRepository  = (*InMemoryUserRepository)(nil)
)

// InMemoryStateRepository keeps encoded records, so callers never share
// memory with what is stored.
type InMemoryStateRepository struct {
	store map[string][]byte

	mu sync.RWMutex
}

func NewInMemoryStateRepository() *InMemoryStateRepository {
	return &InMemoryStateRepository{
		store: make(map[string][]byte),
	}
}

func (r *InMemoryStateRepository) Load(ctx context.Context, key string) (*domain.State, error) {
	r.mu.RLock()
	data, ok := r.store[key]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrStateNotFound
	}
	return domain.DecodeState(data)
}

func (r *InMemoryStateRepository) Save(ctx context.Context, key string, state *domain.State) error {
	data, err := domain.EncodeState(state)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[key] = data
	return nil
}

type InMemoryUserRepository struct {
	byID    map[string]*domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrEmailAlreadyExists
	}

	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}
