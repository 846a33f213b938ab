package main

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	crand "crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"math/rand/v2"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

// encryptor holds an AES-256-GCM cipher for integration secret encryption.
type encryptor struct {
	gcm cipher.AEAD
}

// newEncryptor initializes an encryptor from a hex-encoded 32-byte key.
func newEncryptor(keyHex string) (*encryptor, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}

	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &encryptor{gcm: gcm}, nil
}

// encrypt returns base64(nonce+ciphertext) matching the server's crypto.Service
// format, with the user ID bound as additional data.
func (e *encryptor) encrypt(plaintext []byte, userID string) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := io.ReadFull(crand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := e.gcm.Seal(nonce, nonce, plaintext, []byte(userID))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// parseNullTime parses a SQLite datetime string, returning nil for NULL or
// unparseable values so the column stays NULL in PostgreSQL.
func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s.String); err == nil {
			return &t
		}
	}
	return nil
}

// nullToEmpty converts a NULL string to "".
func nullToEmpty(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}

// nullOrNil converts a sql.NullString to *string for COALESCE-friendly params.
func nullOrNil(s sql.NullString) *string {
	if s.Valid && s.String != "" {
		return &s.String
	}
	return nil
}

// nullFloatOrNil converts a sql.NullFloat64 to *float64.
func nullFloatOrNil(f sql.NullFloat64) *float64 {
	if f.Valid {
		return &f.Float64
	}
	return nil
}

// envOr returns the environment value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// sanitizeURL strips credentials from a connection string for display.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(unparseable)"
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	return u.Redacted()
}

// countRows counts rows in a table for the given user, joining through trips
// for per-trip tables.
func countRows(ctx context.Context, tx pgx.Tx, table, userID string) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, table)
	if err := tx.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// spotCheck compares a few random trips between SQLite and PostgreSQL.
func spotCheck(ctx context.Context, tx pgx.Tx, lite *sql.DB, trips []legacyTrip, userID string) ([]string, error) {
	if len(trips) == 0 {
		return nil, nil
	}

	checks := min(3, len(trips))
	results := make([]string, 0, checks)

	for i := 0; i < checks; i++ {
		t := trips[rand.IntN(len(trips))] //nolint:gosec // spot checks don't need crypto rand.

		var pgTitle string
		err := tx.QueryRow(ctx,
			`SELECT title FROM trips WHERE user_id = $1 AND title = $2 LIMIT 1`,
			userID, t.Title).Scan(&pgTitle)
		if err != nil {
			return nil, fmt.Errorf("trip %q not found in postgres: %w", t.Title, err)
		}

		var liteCount int
		if err := lite.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM journal_entries WHERE trip_id = ?`, t.ID).Scan(&liteCount); err != nil {
			return nil, fmt.Errorf("count sqlite entries: %w", err)
		}

		results = append(results, fmt.Sprintf("trip %q: present, %d entries in source", t.Title, liteCount))
	}

	return results, nil
}

// printReport writes the final migration summary to stdout.
func printReport(r *report) {
	fmt.Println()
	fmt.Println("Migration report")
	fmt.Println("================")
	fmt.Printf("Source:    %s\n", r.Source)
	fmt.Printf("Target:    %s\n", r.Target)
	fmt.Printf("User:      %s (%s)\n", r.Username, r.UserID)
	fmt.Printf("Duration:  %s\n", r.Duration.Round(time.Millisecond))
	if r.DryRun {
		fmt.Println("Mode:      DRY RUN (no writes)")
	}
	fmt.Printf("Trips:     %d read, %d inserted, %d verified\n", r.TripsRead, r.TripsInserted, r.TripsVerified)
	fmt.Printf("Locations: %d read, %d skipped\n", r.LocationsRead, r.LocationsSkipped)
	fmt.Printf("Entries:   %d read, %d inserted\n", r.EntriesRead, r.EntriesInserted)
	for _, s := range r.Skipped {
		fmt.Printf("  skipped %s %q: %s\n", s.Table, s.Name, s.Reason)
	}
	for _, c := range r.SpotChecks {
		fmt.Printf("  check: %s\n", c)
	}
	if r.Err != nil {
		fmt.Printf("Result:    FAILED: %v\n", r.Err)
	} else {
		fmt.Println("Result:    OK")
	}
}
