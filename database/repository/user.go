package repository

import (
	"context"
	"fmt"

	"hoteltriggers/database"
	"hoteltriggers/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// GetByID returns the user, or nil when no such document exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// StoreUserRepo implements UserRepository over a DocumentStore.
type StoreUserRepo struct {
	store database.DocumentStore
}

func NewStoreUserRepo(store database.DocumentStore) *StoreUserRepo {
	return &StoreUserRepo{store: store}
}

func (r *StoreUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, nil
	}
	snap, err := r.store.Get(ctx, models.UsersCollection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	if !snap.Exists {
		return nil, nil
	}
	u := models.DecodeUser(snap)
	return &u, nil
}
