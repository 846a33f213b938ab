package client

import (
	"context"
	"fmt"
)

// TagService exposes the tag endpoints.
type TagService struct {
	c *Client
}

// List returns all of the user's tags.
func (s *TagService) List(ctx context.Context) ([]Tag, error) {
	var resp struct {
		Tags []Tag `json:"tags"`
	}
	if err := s.c.get(ctx, "/api/v1/tags", nil, &resp); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return resp.Tags, nil
}

// Create creates a new tag. Tag names are unique per user.
func (s *TagService) Create(ctx context.Context, req *CreateTagRequest) (*Tag, error) {
	var tag Tag
	if err := s.c.post(ctx, "/api/v1/tags", req, &tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	return &tag, nil
}

// Delete removes a tag and detaches it from all trips.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	if err := s.c.del(ctx, fmt.Sprintf("/api/v1/tags/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}

	return nil
}
