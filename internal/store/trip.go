package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/waylog/waylog/internal/models"
)

// tripColumns is the canonical column list returned by trip queries.
const tripColumns = `id, user_id, series_id, title, description, start_date, end_date,
	timezone, status, privacy_level, created_at, updated_at`

// TripStore handles trip CRUD operations.
type TripStore struct {
	Base
}

// NewTripStore creates a new TripStore.
func NewTripStore(base Base) *TripStore {
	return &TripStore{Base: base}
}

func scanTrip(scan func(dest ...any) error) (*models.Trip, error) {
	var t models.Trip

	err := scan(
		&t.ID, &t.UserID, &t.SeriesID, &t.Title, &t.Description,
		&t.StartDate, &t.EndDate, &t.Timezone, &t.Status, &t.PrivacyLevel,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// ListTrips returns a page of the user's trips, newest first, plus a flag
// indicating whether more rows exist past the page.
func (s *TripStore) ListTrips(ctx context.Context, userID string, status string, limit, offset int) ([]models.Trip, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("listing trips: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = current_setting('app.user_id')::uuid`

	args := []any{}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, status)
	}

	query += fmt.Sprintf(" ORDER BY start_date DESC NULLS LAST, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit+1, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying trips: %w", err)
	}

	defer rows.Close()

	var trips []models.Trip

	for rows.Next() {
		t, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, false, fmt.Errorf("scanning trip: %w", err)
		}

		trips = append(trips, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating trips: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("committing list trips: %w", err)
	}

	hasMore := len(trips) > limit
	if hasMore {
		trips = trips[:limit]
	}

	return trips, hasMore, nil
}

// GetTrip returns a single trip by ID.
func (s *TripStore) GetTrip(ctx context.Context, userID string, tripID int64) (*models.Trip, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting trip: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	row := tx.QueryRow(ctx, `SELECT `+tripColumns+`
		FROM trips
		WHERE user_id = current_setting('app.user_id')::uuid AND id = $1`, tripID)

	t, err := scanTrip(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTripNotFound
		}

		return nil, fmt.Errorf("scanning trip: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing get trip: %w", err)
	}

	return t, nil
}

// CreateTrip inserts a new trip and returns the created record.
func (s *TripStore) CreateTrip(ctx context.Context, userID string, req models.CreateTripRequest) (*models.Trip, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("creating trip: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	row := tx.QueryRow(ctx, `
		INSERT INTO trips (user_id, series_id, title, description, start_date, end_date, timezone, status, privacy_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+tripColumns,
		userID, req.SeriesID, req.Title, req.Description,
		req.StartDate, req.EndDate, req.Timezone, req.Status, req.PrivacyLevel,
	)

	t, err := scanTrip(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created trip: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create trip: %w", err)
	}

	s.notify("trips", "insert", userID)

	return t, nil
}

// buildTripUpdateQuery constructs the SET clause and arguments for UpdateTrip.
func buildTripUpdateQuery(req models.UpdateTripRequest) (setClauses []string, args []any, nextArg int) {
	setClauses = make([]string, 0, 7)
	args = make([]any, 0, 9)
	argIdx := 1

	add := func(column string, v any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, v)
		argIdx++
	}

	if req.Title != nil {
		add("title", *req.Title)
	}

	if req.Description != nil {
		add("description", *req.Description)
	}

	if req.StartDate != nil {
		add("start_date", *req.StartDate)
	}

	if req.EndDate != nil {
		add("end_date", *req.EndDate)
	}

	if req.Timezone != nil {
		add("timezone", *req.Timezone)
	}

	if req.Status != nil {
		add("status", *req.Status)
	}

	if req.PrivacyLevel != nil {
		add("privacy_level", *req.PrivacyLevel)
	}

	if req.SeriesID != nil {
		add("series_id", *req.SeriesID)
	}

	return setClauses, args, argIdx
}

// UpdateTrip updates an existing trip with the provided fields and returns the result.
func (s *TripStore) UpdateTrip(ctx context.Context, userID string, tripID int64, req models.UpdateTripRequest) (*models.Trip, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	setClauses, args, argIdx := buildTripUpdateQuery(req)

	if len(setClauses) == 0 {
		return s.GetTrip(ctx, userID, tripID)
	}

	setClauses = append(setClauses, "updated_at = now()")

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("updating trip: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := fmt.Sprintf(
		"UPDATE trips SET %s WHERE user_id = current_setting('app.user_id')::uuid AND id = $%d RETURNING %s",
		strings.Join(setClauses, ", "),
		argIdx,
		tripColumns,
	)
	args = append(args, tripID)

	row := tx.QueryRow(ctx, query, args...)

	t, err := scanTrip(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTripNotFound
		}

		return nil, fmt.Errorf("scanning updated trip: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update trip: %w", err)
	}

	s.notify("trips", "update", userID)

	return t, nil
}

// DeleteTrip removes a trip by ID. Child rows (locations, photos, activities,
// links, ...) go with it via ON DELETE CASCADE.
func (s *TripStore) DeleteTrip(ctx context.Context, userID string, tripID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return fmt.Errorf("deleting trip: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	tag, err := tx.Exec(ctx, "DELETE FROM trips WHERE user_id = current_setting('app.user_id')::uuid AND id = $1", tripID)
	if err != nil {
		return fmt.Errorf("executing trip delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrTripNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete trip: %w", err)
	}

	s.notify("trips", "delete", userID)

	return nil
}
