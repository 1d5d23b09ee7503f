package collection

import (
	"context"
	"testing"

	"github.com/starford/penna/internal/models"
	"github.com/starford/penna/internal/testutil"
	"github.com/starford/penna/internal/transport"
)

// TestStoreAgainstRealService drives the store through a full session
// against the bundled notes service.
func TestStoreAgainstRealService(t *testing.T) {
	ctx := context.Background()
	client := transport.New(testutil.TestServer(t), 0)
	store := NewStore(client)

	if err := store.Reload(ctx); err != nil {
		t.Fatalf("initial reload: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("fresh service has %d notes", store.Len())
	}

	groceries, err := store.Save(ctx, models.Draft{Title: "Groceries", Content: "milk"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	work, err := store.Save(ctx, models.Draft{Title: "Work", Content: ""}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	notes := store.Notes()
	if len(notes) != 2 || notes[0].ID != work.ID || notes[1].ID != groceries.ID {
		t.Fatalf("order = %+v, want newest first", notes)
	}

	if got := Filter(notes, "MILK"); len(got) != 1 || got[0].ID != groceries.ID {
		t.Errorf("filter MILK = %+v", got)
	}
	if got := Filter(notes, "bread"); len(got) != 0 {
		t.Errorf("filter bread = %+v", got)
	}

	id := groceries.ID
	updated, err := store.Save(ctx, models.Draft{Title: "Groceries", Content: "milk, eggs"}, &id)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n, _ := store.Find(id); n.Content != updated.Content {
		t.Errorf("store entry = %+v", n)
	}

	if err := store.Remove(ctx, work.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("len after delete = %d", store.Len())
	}

	// A reload must agree with what the session built up.
	if err := store.Reload(ctx); err != nil {
		t.Fatalf("final reload: %v", err)
	}
	notes = store.Notes()
	if len(notes) != 1 || notes[0].ID != groceries.ID || notes[0].Content != "milk, eggs" {
		t.Errorf("after reload = %+v", notes)
	}
}

func TestStoreErrorFromRealService(t *testing.T) {
	ctx := context.Background()
	store := NewStore(transport.New(testutil.TestServer(t), 0))

	err := store.Remove(ctx, "does-not-exist")
	if err == nil {
		t.Fatal("expected error")
	}
	if store.Err() != "note not found" {
		t.Errorf("surfaced error = %q", store.Err())
	}
}
