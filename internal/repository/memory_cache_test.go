package repository

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	if _, ok := cache.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := cache.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("Get = %q, %v; want v, true", v, ok)
	}

	now = now.Add(time.Minute)
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}

	_ = cache.Set(ctx, "forever", "x", 0)
	now = now.Add(24 * time.Hour)
	if _, ok := cache.Get(ctx, "forever"); !ok {
		t.Fatal("expected entry without ttl to stay")
	}

	_ = cache.Delete(ctx, "forever", "unknown")
	if _, ok := cache.Get(ctx, "forever"); ok {
		t.Fatal("expected entry to be deleted")
	}
}
