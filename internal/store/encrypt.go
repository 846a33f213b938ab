package store

import (
	"context"
	"fmt"
)

// encryptSecret encrypts an integration secret for storage. Empty secrets are
// stored as empty strings so absence stays visible in the schema.
func (b *Base) encryptSecret(ctx context.Context, userID, secret string) (string, error) {
	if secret == "" {
		return "", nil
	}

	ciphertext, err := b.Crypto.Encrypt(ctx, userID, []byte(secret))
	if err != nil {
		return "", fmt.Errorf("encrypting secret: %w", err)
	}

	return ciphertext, nil
}

// decryptSecret decrypts a stored integration secret.
func (b *Base) decryptSecret(ctx context.Context, userID, ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	plaintext, err := b.Crypto.Decrypt(ctx, userID, ciphertext)
	if err != nil {
		return "", fmt.Errorf("decrypting secret: %w", err)
	}

	return string(plaintext), nil
}
