package testsupport

import (
	"context"
	"testing"

	"layoutkit/internal/config"
	"layoutkit/internal/propstore"
)

// MustOpenStore opens a propstore.SQLite for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *propstore.SQLite {
	t.Helper()

	store, err := propstore.Open(cfg)
	if err != nil {
		t.Fatalf("propstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewItem creates an item with default properties using the provided store.
func NewItem(t testing.TB, store *propstore.SQLite, name string) *propstore.Item {
	t.Helper()

	item, err := store.CreateItem(context.Background(), name)
	if err != nil {
		t.Fatalf("store.CreateItem: %v", err)
	}
	return item
}

// MustSet writes item properties, failing the test on the first error.
func MustSet(t testing.TB, store *propstore.ItemStore, values map[string]string) {
	t.Helper()

	for key, value := range values {
		if err := store.Set(context.Background(), key, value); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
}
