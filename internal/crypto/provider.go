// Package crypto provides user-scoped AES-256-GCM encryption for
// integration secrets (Immich and weather API keys).
package crypto

import "context"

// KeyProvider returns AES-256 encryption keys for users.
type KeyProvider interface {
	// GetKey returns the 32-byte AES-256 key for the given user.
	GetKey(ctx context.Context, userID string) ([]byte, error)
}
