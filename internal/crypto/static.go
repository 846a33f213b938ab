package crypto

import (
	"context"
	"encoding/hex"
	"fmt"
)

// StaticProvider derives all user keys from a single hex-encoded master key.
// Suitable for self-hosted single-instance deployments; larger installations
// should use the vault provider for per-user key rotation.
type StaticProvider struct {
	key []byte
}

// NewStaticProvider creates a StaticProvider from a hex-encoded 32-byte key.
func NewStaticProvider(hexKey string) (*StaticProvider, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("crypto/static: invalid hex key: %w", err)
	}

	if len(key) != 32 {
		return nil, fmt.Errorf("crypto/static: key must be 32 bytes, got %d", len(key))
	}

	return &StaticProvider{key: key}, nil
}

// GetKey returns a copy of the static key. Per-user separation still holds
// because the user ID is bound as GCM additional data at encrypt time.
func (p *StaticProvider) GetKey(_ context.Context, _ string) ([]byte, error) {
	out := make([]byte, len(p.key))
	copy(out, p.key)

	return out, nil
}
