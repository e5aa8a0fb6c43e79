// Package revocation tracks explicitly invalidated bearer tokens. The gate
// consults the registry before trusting any credential, so membership checks
// sit on the hot path of every authenticated request.
//
// Entries are keyed by the SHA-256 of the token string so raw credentials are
// never held in process memory or in Redis. The in-memory registry lives for
// the process lifetime only: a restart loses all revocations. That is a known
// limitation of this deployment shape, not something this package papers over;
// the Redis registry exists for deployments that need revocations to survive.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Registry is the revoked-token set consulted by the authentication gate.
// Revoke is idempotent; revoking a token twice has no additional effect.
type Registry interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

type MemoryRegistry struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{revoked: make(map[string]struct{})}
}

func (m *MemoryRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	key := hashToken(token)
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.revoked[key]
	return ok, nil
}

func (m *MemoryRegistry) Revoke(_ context.Context, token string) error {
	key := hashToken(token)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[key] = struct{}{}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
