package repositories

import (
	"context"
	"fmt"

	gormModels "ground-experiment/groundlink/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

// GetUserByID retrieves a user by the externally issued identifier
func (r *UserRepositoryGORM) GetUserByID(ctx context.Context, id string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// UpsertUser inserts the user or refreshes profile fields on conflict.
// Users are created on first successful authentication and never deleted.
func (r *UserRepositoryGORM) UpsertUser(ctx context.Context, user *gormModels.User) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "profile_image_url", "updated_at"}),
		}).
		Create(user).Error

	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}
