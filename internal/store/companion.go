package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/waylog/waylog/internal/models"
)

// CompanionStore handles travel companion operations.
type CompanionStore struct {
	Base
}

// NewCompanionStore creates a new CompanionStore.
func NewCompanionStore(base Base) *CompanionStore {
	return &CompanionStore{Base: base}
}

// ListCompanions returns all of the user's companions ordered by name.
func (s *CompanionStore) ListCompanions(ctx context.Context, userID string) ([]models.Companion, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing companions: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	rows, err := tx.Query(ctx, `
		SELECT id, user_id, name, email, phone, relationship, notes
		FROM companions
		WHERE user_id = current_setting('app.user_id')::uuid
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying companions: %w", err)
	}

	defer rows.Close()

	var companions []models.Companion

	for rows.Next() {
		var c models.Companion
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Relationship, &c.Notes); err != nil {
			return nil, fmt.Errorf("scanning companion: %w", err)
		}

		companions = append(companions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing list companions: %w", err)
	}

	return companions, nil
}

// CreateCompanion inserts a new companion. Names are unique per user.
func (s *CompanionStore) CreateCompanion(ctx context.Context, userID string, req models.CreateCompanionRequest) (*models.Companion, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("creating companion: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var c models.Companion

	err = tx.QueryRow(ctx, `
		INSERT INTO companions (user_id, name, email, phone, relationship, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, email, phone, relationship, notes
	`, userID, req.Name, req.Email, req.Phone, req.Relationship, req.Notes).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Relationship, &c.Notes,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("inserting companion: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create companion: %w", err)
	}

	s.notify("companions", "insert", userID)

	return &c, nil
}

// DeleteCompanion removes a companion and its trip associations.
func (s *CompanionStore) DeleteCompanion(ctx context.Context, userID string, companionID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return fmt.Errorf("deleting companion: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	tag, err := tx.Exec(ctx, "DELETE FROM companions WHERE user_id = current_setting('app.user_id')::uuid AND id = $1", companionID)
	if err != nil {
		return fmt.Errorf("executing companion delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrCompanionNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete companion: %w", err)
	}

	s.notify("companions", "delete", userID)

	return nil
}
