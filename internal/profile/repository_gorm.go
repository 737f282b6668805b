package profile

import (
	"context"
	"errors"

	"myapp_backend/internal/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a GORM backed profile store.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var rec profileRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Profile not found.")
		}
		return nil, err
	}
	return rec.toProfile(), nil
}

// Upsert inserts the row or, on a user_id conflict, overwrites only the
// submitted columns. One statement, so concurrent saves cannot create two rows.
func (r *gormRepository) Upsert(ctx context.Context, upd *Update) (*Profile, error) {
	values := map[string]interface{}{
		"user_id":    upd.UserID,
		"updated_at": upd.UpdatedAt,
	}
	updateCols := []string{"updated_at"}
	for name, value := range upd.Fields {
		col, ok := textFields[name]
		if !ok {
			continue
		}
		values[col] = value
		updateCols = append(updateCols, col)
	}
	if upd.SetDOB {
		values["dob"] = upd.DOB
		updateCols = append(updateCols, "dob")
	}
	if upd.Avatar != "" {
		values["avatar"] = upd.Avatar
		updateCols = append(updateCols, "avatar")
	}

	err := r.db.WithContext(ctx).
		Model(&profileRecord{}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(updateCols),
		}).
		Create(values).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserID(ctx, upd.UserID)
}

func (r *gormRepository) AvatarPaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&profileRecord{}).
		Where("avatar IS NOT NULL AND avatar <> ''").
		Pluck("avatar", &paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}
