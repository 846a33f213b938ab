package service

import (
	"context"

	"github.com/waylog/waylog/internal/domain"
	"github.com/waylog/waylog/internal/models"
)

// userStore is the minimal store interface consumed by UserService.
type userStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateIntegrationKeys(ctx context.Context, userID, immichURL, immichKey, weatherKey string) error
}

var _ domain.UserService = (*UserService)(nil)

// UserService implements domain.UserService.
type UserService struct {
	store userStore
}

// NewUserService creates a UserService.
func NewUserService(store userStore) *UserService {
	return &UserService{store: store}
}

// GetUser returns the user's profile with integration secrets decrypted.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// UpdateIntegrationKeys replaces the user's integration settings.
func (s *UserService) UpdateIntegrationKeys(ctx context.Context, userID, immichURL, immichKey, weatherKey string) error {
	return s.store.UpdateIntegrationKeys(ctx, userID, immichURL, immichKey, weatherKey)
}
