package snapshot

import (
	"context"
	"testing"
	"time"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis test in short mode")
	}
	store, err := NewRedisStore("localhost:6379", "", 1)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	key := "store:test:roundtrip:" + time.Now().Format("150405.000")
	defer store.Delete(ctx, key)

	if err := store.Save(ctx, key, testPayload{Name: "cart", Count: 2}); err != nil {
		t.Fatalf("Save() unexpected error = %v", err)
	}

	var got testPayload
	found, err := store.Load(ctx, key, &got)
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	if !found {
		t.Fatal("Load() found = false, want true")
	}
	if got.Name != "cart" || got.Count != 2 {
		t.Errorf("Load() = %+v, want {cart 2}", got)
	}
}

func TestRedisStore_LoadMissingKey(t *testing.T) {
	store := newTestRedisStore(t)

	var got testPayload
	found, err := store.Load(context.Background(), "store:test:never-written", &got)
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	if found {
		t.Error("Load() found = true for missing key, want false")
	}
}

func TestRedisStore_Delete(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	key := "store:test:delete:" + time.Now().Format("150405.000")
	if err := store.Save(ctx, key, testPayload{Name: "x"}); err != nil {
		t.Fatalf("Save() unexpected error = %v", err)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() unexpected error = %v", err)
	}

	var got testPayload
	if found, _ := store.Load(ctx, key, &got); found {
		t.Error("Load() found deleted key")
	}
}
