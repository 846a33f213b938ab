package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/waylog/waylog/internal/models"
)

// TagStore handles tag operations.
type TagStore struct {
	Base
}

// NewTagStore creates a new TagStore.
func NewTagStore(base Base) *TagStore {
	return &TagStore{Base: base}
}

// ListTags returns all of the user's tags ordered by name.
func (s *TagStore) ListTags(ctx context.Context, userID string) ([]models.Tag, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	rows, err := tx.Query(ctx, `
		SELECT id, user_id, name, color, text_color
		FROM tags
		WHERE user_id = current_setting('app.user_id')::uuid
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}

	defer rows.Close()

	var tags []models.Tag

	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.TextColor); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}

		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing list tags: %w", err)
	}

	return tags, nil
}

// CreateTag inserts a new tag. Tag names are unique per user.
func (s *TagStore) CreateTag(ctx context.Context, userID string, req models.CreateTagRequest) (*models.Tag, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var t models.Tag

	err = tx.QueryRow(ctx, `
		INSERT INTO tags (user_id, name, color, text_color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, color, text_color
	`, userID, req.Name, req.Color, req.TextColor).Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.TextColor)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("inserting tag: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create tag: %w", err)
	}

	s.notify("tags", "insert", userID)

	return &t, nil
}

// DeleteTag removes a tag and its trip associations.
func (s *TagStore) DeleteTag(ctx context.Context, userID string, tagID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	tag, err := tx.Exec(ctx, "DELETE FROM tags WHERE user_id = current_setting('app.user_id')::uuid AND id = $1", tagID)
	if err != nil {
		return fmt.Errorf("executing tag delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrTagNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete tag: %w", err)
	}

	s.notify("tags", "delete", userID)

	return nil
}
