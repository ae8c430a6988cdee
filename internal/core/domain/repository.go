package domain

import (
	"context"
	"errors"
)

var (
	ErrStateNotFound = errors.New("state record not found")
)

// StorageKey is the namespace every persisted habit store lives under.
const StorageKey = "habit-storage"

// OwnerKey scopes StorageKey to a single owner. An empty owner maps to the bare namespace.
func OwnerKey(ownerID string) string {
	if ownerID == "" {
		return StorageKey
	}
	return StorageKey + ":" + ownerID
}

type StateRepository interface {
	// Load returns the record stored under key, or ErrStateNotFound.
	Load(ctx context.Context, key string) (*State, error)

	// Save replaces the record stored under key.
	Save(ctx context.Context, key string, state *State) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error

	GetByEmail(ctx context.Context, email string) (*User, error)

	GetByID(ctx context.Context, id string) (*User, error)
}
