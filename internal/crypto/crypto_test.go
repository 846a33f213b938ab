package crypto

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"
)

func testKey(t *testing.T) string {
	t.Helper()
	return hex.EncodeToString(make([]byte, 32))
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	keys, err := NewStaticProvider(testKey(t))
	if err != nil {
		t.Fatalf("NewStaticProvider: %v", err)
	}
	return NewService(keys)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := "11111111-1111-1111-1111-111111111111"

	for _, plaintext := range []string{"immich-api-key-value", "", "ünïcode ключ 🗝"} {
		ct, err := svc.Encrypt(ctx, userID, []byte(plaintext))
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", plaintext, err)
		}
		if strings.Contains(ct, plaintext) && plaintext != "" {
			t.Errorf("ciphertext contains plaintext %q", plaintext)
		}

		got, err := svc.Decrypt(ctx, userID, ct)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if string(got) != plaintext {
			t.Errorf("round trip = %q, want %q", got, plaintext)
		}
	}
}

func TestEncryptNonceUnique(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Encrypt(ctx, "user", []byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Encrypt(ctx, "user", []byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two encryptions of the same plaintext produced identical ciphertext")
	}
}

func TestDecryptWrongUserFails(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ct, err := svc.Encrypt(ctx, "user-a", []byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Decrypt(ctx, "user-b", ct); err == nil {
		t.Error("Decrypt with a different user ID succeeded, want failure")
	}
}

func TestDecryptMalformedInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Decrypt(ctx, "user", "not-base64!!!"); err == nil {
		t.Error("Decrypt of invalid base64 succeeded")
	}

	// Valid base64, but shorter than the GCM nonce.
	if _, err := svc.Decrypt(ctx, "user", "c2hvcnQ="); err == nil {
		t.Error("Decrypt of truncated ciphertext succeeded")
	}
}

func TestNewStaticProviderValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not hex", strings.Repeat("zz", 32)},
		{"too short", hex.EncodeToString(make([]byte, 16))},
		{"too long", hex.EncodeToString(make([]byte, 48))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStaticProvider(tt.key); err == nil {
				t.Errorf("NewStaticProvider(%q) succeeded, want error", tt.key)
			}
		})
	}

	if _, err := NewStaticProvider(testKey(t)); err != nil {
		t.Errorf("NewStaticProvider with valid key: %v", err)
	}
}

func TestStaticProviderReturnsCopy(t *testing.T) {
	p, err := NewStaticProvider(testKey(t))
	if err != nil {
		t.Fatal(err)
	}

	k1, _ := p.GetKey(context.Background(), "u")
	k1[0] = 0xFF

	k2, _ := p.GetKey(context.Background(), "u")
	if k2[0] == 0xFF {
		t.Error("GetKey returned shared backing array")
	}
}
