package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/waylog/waylog/internal/models"
)

// UserStore handles account profile operations.
type UserStore struct {
	Base
}

// NewUserStore creates a new UserStore.
func NewUserStore(base Base) *UserStore {
	return &UserStore{Base: base}
}

// GetUser returns the user's profile with integration secrets decrypted.
func (s *UserStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var (
		u             models.User
		categoriesRaw []byte
		immichKeyEnc  string
		weatherKeyEnc string
	)

	err = tx.QueryRow(ctx, `
		SELECT id, username, email, timezone, activity_categories,
		       immich_api_url, immich_api_key, weather_api_key,
		       created_at, updated_at
		FROM users
		WHERE id = current_setting('app.user_id')::uuid
	`).Scan(
		&u.ID, &u.Username, &u.Email, &u.Timezone, &categoriesRaw,
		&u.ImmichAPIURL, &immichKeyEnc, &weatherKeyEnc,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}

		return nil, fmt.Errorf("querying user: %w", err)
	}

	if len(categoriesRaw) > 0 {
		if err := json.Unmarshal(categoriesRaw, &u.ActivityCategories); err != nil {
			return nil, fmt.Errorf("unmarshalling activity categories: %w", err)
		}
	}

	if u.ImmichAPIKey, err = s.decryptSecret(ctx, userID, immichKeyEnc); err != nil {
		return nil, err
	}

	if u.WeatherAPIKey, err = s.decryptSecret(ctx, userID, weatherKeyEnc); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing get user: %w", err)
	}

	return &u, nil
}

// UpdateIntegrationKeys replaces the user's integration settings. Keys are
// encrypted before they touch the database.
func (s *UserStore) UpdateIntegrationKeys(ctx context.Context, userID, immichURL, immichKey, weatherKey string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	immichKeyEnc, err := s.encryptSecret(ctx, userID, immichKey)
	if err != nil {
		return err
	}

	weatherKeyEnc, err := s.encryptSecret(ctx, userID, weatherKey)
	if err != nil {
		return err
	}

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return fmt.Errorf("updating integration keys: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET immich_api_url = $1, immich_api_key = $2, weather_api_key = $3, updated_at = now()
		WHERE id = current_setting('app.user_id')::uuid
	`, immichURL, immichKeyEnc, weatherKeyEnc)
	if err != nil {
		return fmt.Errorf("executing integration key update: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing integration key update: %w", err)
	}

	s.notify("users", "update", userID)

	return nil
}
