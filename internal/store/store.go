// Package store provides focused, single-concern data access stores
// for the Waylog travel journal.
//
// Each store owns one domain (trips, tags, backup export, restore, etc.)
// and embeds shared helpers (Pool, crypto, logger) via the Base struct.
// Stores never import each other; shared logic lives in this file or in
// dedicated helper files (encrypt.go).
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/crypto"
	"github.com/waylog/waylog/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// restoreQueryTimeout bounds a full restore transaction. Restores touch every
// table and can carry years of data, so they get a larger budget than single
// CRUD statements.
const restoreQueryTimeout = 5 * time.Minute

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool   *dbpool.Pool
	Log    *logrus.Logger
	Crypto *crypto.Service
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// setUser sets the user context for RLS policies within a transaction.
func setUser(ctx context.Context, tx pgx.Tx, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}

	_, err := tx.Exec(ctx, "SELECT set_config('app.user_id', $1, true)", userID)
	if err != nil {
		return fmt.Errorf("setting user context: %w", err)
	}

	return nil
}

// beginTx starts a read-write transaction and sets the user context.
func (b *Base) beginTx(ctx context.Context, userID string) (pgx.Tx, error) {
	tx, err := b.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	if err := setUser(ctx, tx, userID); err != nil {
		tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on setup failure.

		return nil, err
	}

	return tx, nil
}

// beginReadTx starts a read-only transaction and sets the user context.
func (b *Base) beginReadTx(ctx context.Context, userID string) (pgx.Tx, error) {
	tx, err := b.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}

	if err := setUser(ctx, tx, userID); err != nil {
		tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on setup failure.

		return nil, err
	}

	return tx, nil
}

// notify sends a pg_notify on the journal_changes channel (best-effort, post-commit).
func (b *Base) notify(table, op, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, _ := json.Marshal(map[string]any{ //nolint:errcheck // static keys, cannot fail.
		"table":   table,
		"op":      op,
		"count":   1,
		"user_id": userID,
	})
	if _, err := b.Pool.Exec(ctx, "SELECT pg_notify('journal_changes', $1)", string(payload)); err != nil {
		b.Log.WithError(err).Warn("failed to send " + op + " " + table + " notification")
	}
}

// GetUserByAPIKey looks up a user ID by API key hash.
func (b *Base) GetUserByAPIKey(ctx context.Context, apiKey string) (string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	hash := sha256.Sum256([]byte(apiKey))
	apiKeyHash := hex.EncodeToString(hash[:])

	var userID string

	err := b.Pool.QueryRow(ctx, "SELECT id FROM users WHERE api_key_hash = $1", apiKeyHash).Scan(&userID)
	if err != nil {
		return "", fmt.Errorf("looking up user by API key: %w", err)
	}

	return userID, nil
}
