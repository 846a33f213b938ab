package service

import (
	"context"

	"github.com/waylog/waylog/internal/domain"
	"github.com/waylog/waylog/internal/models"
)

// companionStore is the minimal store interface consumed by CompanionService.
type companionStore interface {
	ListCompanions(ctx context.Context, userID string) ([]models.Companion, error)
	CreateCompanion(ctx context.Context, userID string, req models.CreateCompanionRequest) (*models.Companion, error)
	DeleteCompanion(ctx context.Context, userID string, companionID int64) error
}

var _ domain.CompanionService = (*CompanionService)(nil)

// CompanionService implements domain.CompanionService.
type CompanionService struct {
	store companionStore
}

// NewCompanionService creates a CompanionService.
func NewCompanionService(store companionStore) *CompanionService {
	return &CompanionService{store: store}
}

// ListCompanions returns all of the user's companions.
func (s *CompanionService) ListCompanions(ctx context.Context, userID string) ([]models.Companion, error) {
	return s.store.ListCompanions(ctx, userID)
}

// CreateCompanion validates and creates a companion.
func (s *CompanionService) CreateCompanion(ctx context.Context, userID string, req models.CreateCompanionRequest) (*models.Companion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.store.CreateCompanion(ctx, userID, req)
}

// DeleteCompanion removes a companion.
func (s *CompanionService) DeleteCompanion(ctx context.Context, userID string, companionID int64) error {
	return s.store.DeleteCompanion(ctx, userID, companionID)
}
