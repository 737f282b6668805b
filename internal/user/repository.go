package user

import (
	"context"
	"fmt"

	"myapp_backend/internal/platform/store"
)

// Repository is the credential store.
//
// Create returns common.ErrConflict when the userId is taken. The Find
// methods return common.ErrNotFound when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByUserID(ctx context.Context, userID string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// NewRepository returns the credential store for the configured backend.
func NewRepository(b *store.Backend) (Repository, error) {
	if b.Mongo != nil {
		return NewMongoRepository(b.Mongo), nil
	}
	if b.SQL != nil {
		if b.AutoMigrate {
			if err := b.SQL.AutoMigrate(&userRecord{}); err != nil {
				return nil, fmt.Errorf("migrate users: %w", err)
			}
		}
		return NewGORMRepository(b.SQL), nil
	}
	return nil, fmt.Errorf("no store backend configured for users")
}
