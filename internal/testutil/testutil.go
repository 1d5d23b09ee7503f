// Package testutil provides shared test helpers for spinning up a real
// notes service backed by a temporary SQLite database.
package testutil

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/starford/penna/internal/devserver"
)

// TestStore creates a temporary SQLite-backed store that is automatically
// cleaned up.
func TestStore(t *testing.T) *devserver.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "penna-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	store, err := devserver.OpenStore(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestServer starts an httptest server speaking the notes wire contract and
// returns its base URL.
func TestServer(t *testing.T) string {
	t.Helper()
	store := TestStore(t)
	srv := httptest.NewServer(devserver.NewRouter(store))
	t.Cleanup(srv.Close)
	return srv.URL
}
