package client

import (
	"context"
	"fmt"
)

// CompanionService exposes the travel companion endpoints.
type CompanionService struct {
	c *Client
}

// List returns all of the user's companions.
func (s *CompanionService) List(ctx context.Context) ([]Companion, error) {
	var resp struct {
		Companions []Companion `json:"companions"`
	}
	if err := s.c.get(ctx, "/api/v1/companions", nil, &resp); err != nil {
		return nil, fmt.Errorf("list companions: %w", err)
	}

	return resp.Companions, nil
}

// Create creates a new companion. Companion names are unique per user.
func (s *CompanionService) Create(ctx context.Context, req *CreateCompanionRequest) (*Companion, error) {
	var companion Companion
	if err := s.c.post(ctx, "/api/v1/companions", req, &companion); err != nil {
		return nil, fmt.Errorf("create companion: %w", err)
	}

	return &companion, nil
}

// Delete removes a companion and detaches them from all trips.
func (s *CompanionService) Delete(ctx context.Context, id int64) error {
	if err := s.c.del(ctx, fmt.Sprintf("/api/v1/companions/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete companion %d: %w", id, err)
	}

	return nil
}
