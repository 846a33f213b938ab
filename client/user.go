package client

import (
	"context"
	"fmt"
)

// UserService exposes the user profile endpoints.
type UserService struct {
	c *Client
}

// Get returns the authenticated user's profile.
func (s *UserService) Get(ctx context.Context) (*User, error) {
	var user User
	if err := s.c.get(ctx, "/api/v1/user", nil, &user); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// UpdateIntegrations sets integration credentials (Immich, weather). Keys are
// stored encrypted and never returned by Get.
func (s *UserService) UpdateIntegrations(ctx context.Context, req *UpdateIntegrationsRequest) error {
	if err := s.c.put(ctx, "/api/v1/user/integrations", req, nil); err != nil {
		return fmt.Errorf("update integrations: %w", err)
	}

	return nil
}
