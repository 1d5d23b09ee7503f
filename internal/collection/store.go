// Package collection owns the in-memory note collection and keeps it
// consistent with the remote service across reload, save, and delete.
package collection

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/starford/penna/internal/models"
	"github.com/starford/penna/internal/transport"
)

// Store is the single source of truth for "what notes exist right now, as
// far as we know". Mutations are applied only after server confirmation, so
// a failed operation never touches the collection. Exactly one error message
// is retained at a time; the latest operation's outcome overwrites it.
type Store struct {
	api transport.API

	mu      sync.RWMutex
	notes   []models.Note
	loading bool
	lastErr string

	reloads singleflight.Group
	keyed   keyedLocks
}

// NewStore creates an empty Store backed by the given transport.
func NewStore(api transport.API) *Store {
	return &Store{api: api}
}

// Notes returns a snapshot of the collection in its current order.
func (s *Store) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len returns the number of notes currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Loading reports whether a reload is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message from the most recent failed operation, or "" when
// the last operation succeeded.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Find returns the note with the given id, if present.
func (s *Store) Find(id models.NoteID) (models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// Reload replaces the entire collection with the service's current state.
// Concurrent reloads coalesce into a single request. On failure the
// collection is left untouched and the error is recorded.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	notes, err, _ := s.reloads.Do("list", func() (any, error) {
		return s.api.List(ctx)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.notes = notes.([]models.Note)
	return nil
}

// Save persists a draft. With a nil editingID it creates a note and prepends
// the server's result, so new notes appear first; with an editingID it
// updates in place, preserving the collection's order. The draft is trimmed
// and validated before any network call.
func (s *Store) Save(ctx context.Context, draft models.Draft, editingID *models.NoteID) (models.Note, error) {
	draft = draft.Trimmed()
	if err := draft.Validate(); err != nil {
		return models.Note{}, err
	}

	if editingID != nil {
		return s.update(ctx, *editingID, draft)
	}
	return s.create(ctx, draft)
}

func (s *Store) create(ctx context.Context, draft models.Draft) (models.Note, error) {
	created, err := s.api.Create(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return models.Note{}, err
	}
	s.lastErr = ""
	s.notes = append([]models.Note{created}, s.notes...)
	return created, nil
}

func (s *Store) update(ctx context.Context, id models.NoteID, draft models.Draft) (models.Note, error) {
	// Serialize mutations per note so rapid actions on the same entity
	// apply in request order.
	unlock := s.keyed.lock(id)
	defer unlock()

	updated, err := s.api.Update(ctx, id, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return models.Note{}, err
	}
	s.lastErr = ""
	for i, n := range s.notes {
		if n.ID == id {
			s.notes[i] = updated
			break
		}
	}
	return updated, nil
}

// Remove deletes a note. The entry leaves the collection only after the
// server confirms.
func (s *Store) Remove(ctx context.Context, id models.NoteID) error {
	unlock := s.keyed.lock(id)
	defer unlock()

	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.lastErr = ""
	kept := s.notes[:0]
	for _, n := range s.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notes = kept
	return nil
}

// keyedLocks serializes operations per note identifier. Entries are never
// evicted; the map grows with the set of ids touched during one process
// lifetime.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[models.NoteID]*sync.Mutex
}

func (k *keyedLocks) lock(id models.NoteID) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[models.NoteID]*sync.Mutex)
	}
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
