// Package main provides a standalone migration script that reads a legacy
// single-file SQLite travel journal and writes it to PostgreSQL for Waylog.
//
// Usage:
//
//	SQLITE_PATH=/path/to/journal.sqlite DATABASE_URL=postgres://... go run ./scripts/migrate
package main

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	_ "modernc.org/sqlite"
)

// config holds environment-driven migration settings.
type config struct {
	SQLitePath  string
	DatabaseURL string
	UserID      string
	Username    string
	DryRun      bool
	enc         *encryptor
}

// skippedRecord records a row that was skipped during migration.
type skippedRecord struct {
	Table  string
	Name   string
	Reason string
}

// report holds the final migration summary.
type report struct {
	Source           string
	Target           string
	Username         string
	UserID           string
	TripsRead        int
	TripsInserted    int
	TripsVerified    int
	LocationsRead    int
	LocationsSkipped int
	EntriesRead      int
	EntriesInserted  int
	Skipped          []skippedRecord
	SpotChecks       []string
	Duration         time.Duration
	DryRun           bool
	Err              error
}

func main() {
	cfg := loadConfig()
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	// Integration secrets in the legacy settings table must be re-encrypted
	// with the server's key before insert.
	encKey := os.Getenv("ENCRYPTION_KEY")
	if encKey == "" {
		slog.Error("ENCRYPTION_KEY is required (hex-encoded 32-byte AES-256 key)")
		os.Exit(1)
	}

	enc, err := newEncryptor(encKey)
	if err != nil {
		slog.Error("failed to initialize encryption", "error", err)
		os.Exit(1)
	}

	cfg.enc = enc

	slog.Info("starting migration",
		"sqlite", cfg.SQLitePath,
		"user", cfg.Username,
		"dry_run", cfg.DryRun,
	)

	start := time.Now()
	r, err := runMigration(context.Background(), cfg)
	r.Duration = time.Since(start)
	if err != nil {
		r.Err = err
		slog.Error("migration failed", "error", err)
	}
	printReport(&r)
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads configuration from environment variables.
func loadConfig() config {
	c := config{
		SQLitePath:  envOr("SQLITE_PATH", "journal.sqlite"),
		DatabaseURL: envOr("DATABASE_URL", ""),
		Username:    envOr("WAYLOG_USERNAME", "waylog-default"),
		DryRun:      os.Getenv("DRY_RUN") == "true" || os.Getenv("DRY_RUN") == "1",
	}
	if uid := os.Getenv("WAYLOG_USER_ID"); uid != "" {
		c.UserID = uid
	} else {
		c.UserID = deterministicUUID(c.Username)
	}
	return c
}

// deterministicUUID generates a UUID v5-like deterministic UUID from a name
// using SHA-256 and formatting as a UUID string.
func deterministicUUID(name string) string {
	h := sha256.Sum256([]byte("waylog:" + name))
	// Set version 5 and variant bits.
	h[6] = (h[6] & 0x0f) | 0x50
	h[8] = (h[8] & 0x3f) | 0x80
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		h[0:4], h[4:6], h[6:8], h[8:10], h[10:16])
}

// ensureUser creates the user row if it doesn't already exist.
func ensureUser(ctx context.Context, tx pgx.Tx, userID, username string) error {
	slog.Info("ensuring user exists", "id", userID, "username", username)
	hash := sha256.Sum256([]byte("migration-" + userID))
	apiKeyHash := fmt.Sprintf("%x", hash)
	_, err := tx.Exec(ctx,
		`INSERT INTO users (id, username, email, api_key_hash)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		userID, username, username+"@migrated.local", apiKeyHash)
	return err
}

// runMigration executes the full migration pipeline.
//
//nolint:funlen // Migration pipeline is sequential; splitting would hurt readability.
func runMigration(ctx context.Context, cfg config) (report, error) {
	r := report{
		Source:   cfg.SQLitePath,
		Target:   sanitizeURL(cfg.DatabaseURL),
		Username: cfg.Username,
		UserID:   cfg.UserID,
		DryRun:   cfg.DryRun,
	}

	// Open SQLite (read-only).
	lite, err := sql.Open("sqlite", cfg.SQLitePath+"?mode=ro")
	if err != nil {
		return r, fmt.Errorf("open sqlite: %w", err)
	}
	defer lite.Close()

	// Read trips with their locations and journal entries from SQLite.
	trips, err := readTrips(ctx, lite)
	if err != nil {
		return r, fmt.Errorf("read trips: %w", err)
	}
	r.TripsRead = len(trips)
	for _, t := range trips {
		r.LocationsRead += len(t.Locations)
		r.EntriesRead += len(t.Entries)
	}
	slog.Info("read journal from sqlite",
		"trips", r.TripsRead, "locations", r.LocationsRead, "entries", r.EntriesRead)

	settings, err := readSettings(ctx, lite)
	if err != nil {
		return r, fmt.Errorf("read settings: %w", err)
	}

	if cfg.DryRun {
		slog.Info("dry run, skipping PostgreSQL writes")
		r.TripsInserted = r.TripsRead
		r.EntriesInserted = r.EntriesRead
		return r, nil
	}

	// Connect to PostgreSQL and run in a transaction.
	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return r, fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return r, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if err := ensureUser(ctx, tx, cfg.UserID, cfg.Username); err != nil {
		return r, fmt.Errorf("ensure user: %w", err)
	}

	if err := applySettings(ctx, tx, settings, cfg.UserID, cfg.enc); err != nil {
		return r, fmt.Errorf("apply settings: %w", err)
	}

	inserted, skipped := insertTrips(ctx, tx, trips, cfg.UserID)
	r.TripsInserted = inserted
	r.Skipped = skipped
	for _, s := range skipped {
		if s.Table == "locations" {
			r.LocationsSkipped++
		}
	}
	r.EntriesInserted = r.EntriesRead
	slog.Info("inserted trips", "count", r.TripsInserted, "skipped", len(skipped))

	// Verify counts.
	r.TripsVerified, err = countRows(ctx, tx, "trips", cfg.UserID)
	if err != nil {
		return r, fmt.Errorf("verify trip count: %w", err)
	}

	// Spot-check random trips.
	r.SpotChecks, err = spotCheck(ctx, tx, lite, trips, cfg.UserID)
	if err != nil {
		return r, fmt.Errorf("spot check: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return r, fmt.Errorf("commit: %w", err)
	}
	slog.Info("transaction committed")
	return r, nil
}
