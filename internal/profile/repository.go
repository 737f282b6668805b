package profile

import (
	"context"
	"fmt"

	"myapp_backend/internal/platform/store"
)

// Repository is the profile store. All access is keyed by userId.
type Repository interface {
	// FindByUserID returns common.ErrNotFound when the user has no profile.
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	// Upsert merges upd into the profile of upd.UserID, creating it if
	// needed, and returns the stored result.
	Upsert(ctx context.Context, upd *Update) (*Profile, error)
	// AvatarPaths lists every non-empty avatar path referenced by a profile.
	AvatarPaths(ctx context.Context) ([]string, error)
}

// NewRepository returns the profile store for the configured backend.
func NewRepository(b *store.Backend) (Repository, error) {
	if b.Mongo != nil {
		return NewMongoRepository(b.Mongo), nil
	}
	if b.SQL != nil {
		if b.AutoMigrate {
			if err := b.SQL.AutoMigrate(&profileRecord{}); err != nil {
				return nil, fmt.Errorf("migrate profiles: %w", err)
			}
		}
		return NewGORMRepository(b.SQL), nil
	}
	return nil, fmt.Errorf("no store backend configured for profiles")
}
