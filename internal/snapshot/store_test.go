package snapshot

import (
	"context"
	"testing"
)

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "test:key", testPayload{Name: "cart", Count: 3}); err != nil {
		t.Fatalf("Save() unexpected error = %v", err)
	}

	var got testPayload
	found, err := store.Load(ctx, "test:key", &got)
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	if !found {
		t.Fatal("Load() found = false, want true")
	}
	if got.Name != "cart" || got.Count != 3 {
		t.Errorf("Load() = %+v, want {cart 3}", got)
	}
}

func TestMemoryStore_LoadMissingKey(t *testing.T) {
	store := NewMemoryStore()

	var got testPayload
	found, err := store.Load(context.Background(), "test:missing", &got)
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	if found {
		t.Error("Load() found = true for missing key, want false")
	}
}

func TestMemoryStore_LoadCorruptValue(t *testing.T) {
	store := NewMemoryStore()
	store.SetRaw("test:corrupt", []byte("{not json"))

	var got testPayload
	found, err := store.Load(context.Background(), "test:corrupt", &got)
	if !found {
		t.Error("Load() found = false for existing key, want true")
	}
	if err == nil {
		t.Error("Load() should report a decode error for corrupt data")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "test:a", testPayload{Name: "a"}); err != nil {
		t.Fatalf("Save() unexpected error = %v", err)
	}
	if err := store.Save(ctx, "test:b", testPayload{Name: "b"}); err != nil {
		t.Fatalf("Save() unexpected error = %v", err)
	}

	if err := store.Delete(ctx, "test:a", "test:b"); err != nil {
		t.Fatalf("Delete() unexpected error = %v", err)
	}

	var got testPayload
	if found, _ := store.Load(ctx, "test:a", &got); found {
		t.Error("Load() found deleted key test:a")
	}
	if found, _ := store.Load(ctx, "test:b", &got); found {
		t.Error("Load() found deleted key test:b")
	}
}

func TestNullStore(t *testing.T) {
	store := NewNullStore()
	ctx := context.Background()

	if err := store.Save(ctx, "test:key", testPayload{Name: "x"}); err != nil {
		t.Fatalf("Save() unexpected error = %v", err)
	}

	var got testPayload
	found, err := store.Load(ctx, "test:key", &got)
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	if found {
		t.Error("Load() found = true, null store should never find anything")
	}

	if err := store.Delete(ctx, "test:key"); err != nil {
		t.Errorf("Delete() unexpected error = %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping() unexpected error = %v", err)
	}
}

func TestKeys(t *testing.T) {
	if got := CartKey("abc"); got != "store:cart:abc" {
		t.Errorf("CartKey() = %q, want store:cart:abc", got)
	}
	if got := FavoritesKey("abc"); got != "store:favorites:abc" {
		t.Errorf("FavoritesKey() = %q, want store:favorites:abc", got)
	}
}
