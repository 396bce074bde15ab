package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store := NewStoreWithTTL(dir, "products", "a.myshopify.com", time.Minute)

	var missed []item
	if store.Get(ctx, &missed) {
		t.Error("expected a miss on an empty cache")
	}

	store.Put(ctx, []item{{ID: 1, Title: "Tee"}})

	var got []item
	if !store.Get(ctx, &got) {
		t.Fatal("expected a hit after Put")
	}
	if len(got) != 1 || got[0].Title != "Tee" {
		t.Errorf("got = %+v", got)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store := NewStoreWithTTL(dir, "products", "a.myshopify.com", -time.Second)

	store.Put(ctx, []item{{ID: 1}})
	var got []item
	if store.Get(ctx, &got) {
		t.Error("expected a miss after expiry")
	}
}

func TestFileStoreScopedByShop(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	NewStore(dir, "products", "a.myshopify.com").Put(ctx, []item{{ID: 1}})

	var got []item
	if NewStore(dir, "products", "b.myshopify.com").Get(ctx, &got) {
		t.Error("second shop should not see the first shop's entries")
	}
}

func TestDisabledByEnv(t *testing.T) {
	t.Setenv("SHOPCTL_NO_CACHE", "1")
	dir := t.TempDir()
	ctx := context.Background()
	store := NewStore(dir, "products", "a.myshopify.com")

	store.Put(ctx, []item{{ID: 1}})
	var got []item
	if store.Get(ctx, &got) {
		t.Error("cache should be disabled")
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store := NewStore(dir, "products", "a.myshopify.com")
	store.Put(ctx, []item{{ID: 1}})
	store.Clear(ctx)

	var got []item
	if store.Get(ctx, &got) {
		t.Error("expected a miss after Clear")
	}
}

func TestIsCacheFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"products_0123456789ab.json", true},
		{"orders_abcdefabcdef.json", true},
		{"products_0123456789ab.txt", false},
		{"products.json", false},
		{"products_short.json", false},
		{"_0123456789ab.json", false},
		{"products_0123456789aB.json", false},
	}
	for _, tt := range tests {
		if got := isCacheFilename(tt.name); got != tt.want {
			t.Errorf("isCacheFilename(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	t.Setenv("SHOPCTL_REDIS_URL", srv.Addr())

	ctx := context.Background()
	store := NewStoreWithTTL(t.TempDir(), "products", "a.myshopify.com", time.Minute)
	if _, ok := store.(*redisStore); !ok {
		t.Fatalf("expected redis backend, got %T", store)
	}

	store.Put(ctx, []item{{ID: 2, Title: "Mug"}})

	var got []item
	if !store.Get(ctx, &got) {
		t.Fatal("expected a hit after Put")
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("got = %+v", got)
	}

	store.Clear(ctx)
	if store.Get(ctx, &got) {
		t.Error("expected a miss after Clear")
	}
}

func TestRedisStoreEnvelopeExpiry(t *testing.T) {
	srv := miniredis.RunT(t)
	t.Setenv("SHOPCTL_REDIS_URL", srv.Addr())

	ctx := context.Background()
	store := NewStoreWithTTL(t.TempDir(), "products", "a.myshopify.com", -time.Second)
	store.Put(ctx, []item{{ID: 1}})

	var got []item
	if store.Get(ctx, &got) {
		t.Error("envelope timestamp should expire the entry even if Redis kept it")
	}
}
