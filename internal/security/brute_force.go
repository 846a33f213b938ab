// Package security provides authentication hardening primitives.
package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Lockout policy. A key that fails BruteForceMaxAttempts times within
// BruteForceWindow is refused for BruteForceLockout.
const (
	BruteForceMaxAttempts = 5
	BruteForceWindow      = 15 * time.Minute
	BruteForceLockout     = 5 * time.Minute

	cleanupInterval = 60 * time.Second
	maxTracked      = 10000
)

type failureRecord struct {
	attempts  int
	firstFail time.Time
	lockedAt  time.Time
}

// BruteForceGuard tracks authentication failures per API-key hash and locks
// out keys that exceed the policy above. Raw keys are never stored.
type BruteForceGuard struct {
	mu      sync.Mutex
	records map[string]*failureRecord
	log     *logrus.Logger
}

// NewBruteForceGuard creates a guard whose cleanup goroutine runs until ctx
// is cancelled.
func NewBruteForceGuard(ctx context.Context, log *logrus.Logger) *BruteForceGuard {
	g := &BruteForceGuard{
		records: make(map[string]*failureRecord),
		log:     log,
	}
	go g.cleanupLoop(ctx)

	return g
}

func hashKey(apiKey string) string {
	h := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(h[:])
}

// IsBlocked reports whether the key is inside an active lockout.
func (g *BruteForceGuard) IsBlocked(apiKey string) bool {
	kh := hashKey(apiKey)

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[kh]
	if !ok || rec.lockedAt.IsZero() {
		return false
	}

	return time.Since(rec.lockedAt) < BruteForceLockout
}

// RecordFailure counts one failed authentication for the key. Crossing the
// attempt threshold inside the window starts a lockout.
func (g *BruteForceGuard) RecordFailure(apiKey string) {
	kh := hashKey(apiKey)
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[kh]
	if !ok {
		g.records[kh] = &failureRecord{attempts: 1, firstFail: now}
		return
	}

	if now.Sub(rec.firstFail) > BruteForceWindow {
		// Stale window, start counting fresh.
		rec.attempts = 1
		rec.firstFail = now
		rec.lockedAt = time.Time{}
		return
	}

	rec.attempts++
	if rec.attempts >= BruteForceMaxAttempts {
		rec.lockedAt = now
		g.log.WithField("key_hash", kh[:16]+"...").Warn("api key locked out after repeated auth failures")
	}
}

// ResetKey clears failure tracking for a key. Called on successful auth.
func (g *BruteForceGuard) ResetKey(apiKey string) {
	kh := hashKey(apiKey)

	g.mu.Lock()
	delete(g.records, kh)
	g.mu.Unlock()
}

func (g *BruteForceGuard) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			g.sweep(now)
		}
	}
}

// sweep drops expired lockouts and stale windows, then enforces the record cap.
func (g *BruteForceGuard) sweep(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for k, rec := range g.records {
		expired := !rec.lockedAt.IsZero() && now.Sub(rec.lockedAt) >= BruteForceLockout
		stale := now.Sub(rec.firstFail) >= BruteForceWindow
		if expired || stale {
			delete(g.records, k)
		}
	}

	if len(g.records) > maxTracked {
		g.evictOldest(len(g.records) - maxTracked)
	}
}

// evictOldest removes the n records with the oldest first failure.
// Caller must hold g.mu.
func (g *BruteForceGuard) evictOldest(n int) {
	type entry struct {
		key       string
		firstFail time.Time
	}

	entries := make([]entry, 0, len(g.records))
	for k, rec := range g.records {
		entries = append(entries, entry{k, rec.firstFail})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].firstFail.Before(entries[j].firstFail)
	})

	for i := range n {
		delete(g.records, entries[i].key)
	}
}
