package services

import (
	"context"
	"fmt"

	gormModels "ground-experiment/groundlink/internal/models/gorm"
)

// UserStore is the persistence surface for identity records
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*gormModels.User, error)
	UpsertUser(ctx context.Context, user *gormModels.User) error
}

// UserService maintains the locally mirrored identity records. The external
// auth collaborator owns the identifiers; this service only upserts profile
// data on successful authentication.
type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// UpsertFromIdentity creates or refreshes the user row for an asserted
// identity and returns it
func (s *UserService) UpsertFromIdentity(ctx context.Context, userID, displayName string, profileImageURL *string) (*gormModels.User, error) {
	if displayName == "" {
		displayName = userID
	}

	user := &gormModels.User{
		ID:              userID,
		DisplayName:     displayName,
		ProfileImageURL: profileImageURL,
	}

	if err := s.store.UpsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", userID, err)
	}

	// Re-read so callers see DB-populated timestamps
	return s.store.GetUserByID(ctx, userID)
}

// GetUser fetches one user by the externally issued id
func (s *UserService) GetUser(ctx context.Context, userID string) (*gormModels.User, error) {
	return s.store.GetUserByID(ctx, userID)
}
