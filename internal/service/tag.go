package service

import (
	"context"

	"github.com/waylog/waylog/internal/domain"
	"github.com/waylog/waylog/internal/models"
)

// tagStore is the minimal store interface consumed by TagService.
type tagStore interface {
	ListTags(ctx context.Context, userID string) ([]models.Tag, error)
	CreateTag(ctx context.Context, userID string, req models.CreateTagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, userID string, tagID int64) error
}

var _ domain.TagService = (*TagService)(nil)

// TagService implements domain.TagService.
type TagService struct {
	store tagStore
}

// NewTagService creates a TagService.
func NewTagService(store tagStore) *TagService {
	return &TagService{store: store}
}

// ListTags returns all of the user's tags.
func (s *TagService) ListTags(ctx context.Context, userID string) ([]models.Tag, error) {
	return s.store.ListTags(ctx, userID)
}

// CreateTag validates and creates a tag.
func (s *TagService) CreateTag(ctx context.Context, userID string, req models.CreateTagRequest) (*models.Tag, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.store.CreateTag(ctx, userID, req)
}

// DeleteTag removes a tag.
func (s *TagService) DeleteTag(ctx context.Context, userID string, tagID int64) error {
	return s.store.DeleteTag(ctx, userID, tagID)
}
