package revocation

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryRegistryRevoke(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()

	revoked, err := registry.IsRevoked(ctx, "token-a")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Error("fresh registry reports token revoked")
	}

	if err := registry.Revoke(ctx, "token-a"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, err = registry.IsRevoked(ctx, "token-a")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Error("revoked token not reported")
	}

	// A different token is unaffected.
	revoked, err = registry.IsRevoked(ctx, "token-b")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Error("unrelated token reported revoked")
	}
}

func TestMemoryRegistryRevokeIdempotent(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := registry.Revoke(ctx, "token-a"); err != nil {
			t.Fatalf("Revoke #%d: %v", i, err)
		}
	}
	revoked, err := registry.IsRevoked(ctx, "token-a")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Error("token not revoked after repeated Revoke")
	}
}

func TestMemoryRegistryConcurrentAccess(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		token := fmt.Sprintf("token-%d", i)
		go func() {
			defer wg.Done()
			if err := registry.Revoke(ctx, token); err != nil {
				t.Errorf("Revoke %s: %v", token, err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := registry.IsRevoked(ctx, token); err != nil {
				t.Errorf("IsRevoked %s: %v", token, err)
			}
		}()
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		token := fmt.Sprintf("token-%d", i)
		revoked, err := registry.IsRevoked(ctx, token)
		if err != nil {
			t.Fatalf("IsRevoked %s: %v", token, err)
		}
		if !revoked {
			t.Errorf("%s not revoked after concurrent writes", token)
		}
	}
}
