package user

import (
	"context"
	"errors"
	"strings"

	"myapp_backend/internal/common"

	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a GORM backed credential store.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, user *User) error {
	rec := fromUser(user)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicateKey(err) {
			return common.ErrConflict.WithMessage("User already exists")
		}
		return err
	}
	user.CreatedAt = rec.CreatedAt
	return nil
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID string) (*User, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormRepository) first(ctx context.Context, query string, arg string) (*User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found.")
		}
		return nil, err
	}
	return rec.toUser(), nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
