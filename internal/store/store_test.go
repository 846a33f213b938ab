package store_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/crypto"
	"github.com/waylog/waylog/internal/dbpool"
	"github.com/waylog/waylog/internal/store"
)

// testHexKey is a valid 64-char hex string (32 bytes) for test encryption.
const testHexKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

func newCryptoService(t *testing.T) *crypto.Service {
	t.Helper()

	provider, err := crypto.NewStaticProvider(testHexKey)
	if err != nil {
		t.Fatalf("creating static provider: %v", err)
	}

	return crypto.NewService(provider)
}

// setupTestBase creates a Base with a fresh test user, cleaned up after the test.
func setupTestBase(t *testing.T) (_ store.Base, _ string) {
	t.Helper()

	env := getTestEnv(t)
	userID := uuid.New().String()
	ctx := context.Background()

	apiKey := "test-key-" + userID
	hash := sha256.Sum256([]byte(apiKey))
	apiKeyHash := hex.EncodeToString(hash[:])

	_, err := env.pool.Exec(ctx,
		"INSERT INTO users (id, username, email, api_key_hash) VALUES ($1, $2, $3, $4)",
		userID, fmt.Sprintf("test-user-%s", userID[:8]), fmt.Sprintf("%s@test.invalid", userID[:8]), apiKeyHash,
	)
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}

	t.Cleanup(func() {
		cleanCtx := context.Background()
		// Trips cascade to their children; top-level collections go by user.
		env.pool.Exec(cleanCtx, "DELETE FROM trips WHERE user_id = $1", userID)               //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM checklists WHERE user_id = $1", userID)         //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM tags WHERE user_id = $1", userID)               //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM companions WHERE user_id = $1", userID)         //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM location_categories WHERE user_id = $1", userID) //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM travel_documents WHERE user_id = $1", userID)   //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM trip_series WHERE user_id = $1", userID)        //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM users WHERE id = $1", userID)                   //nolint:errcheck // best-effort cleanup
	})

	base := store.Base{Pool: env.pool, Log: env.log, Crypto: newCryptoService(t)}

	return base, userID
}
