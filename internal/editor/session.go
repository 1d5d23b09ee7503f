// Package editor implements the note editing surface: a create-or-edit
// session holding a draft, plus helpers for composing drafts in an external
// editor.
package editor

import (
	"context"

	"github.com/starford/penna/internal/collection"
	"github.com/starford/penna/internal/models"
)

// Mode distinguishes creating a new note from editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Session is the editor state machine. It opens in create mode with an empty
// draft or in edit mode seeded from an existing note, and it closes only on
// cancel or on a save the store confirmed. A failed save keeps the session
// open with the same draft so the user does not lose input.
type Session struct {
	store *collection.Store

	open    bool
	mode    Mode
	editing models.NoteID
	draft   models.Draft
}

// NewSession creates a closed session bound to the given store.
func NewSession(store *collection.Store) *Session {
	return &Session{store: store}
}

// Open reports whether the session is currently open.
func (s *Session) Open() bool { return s.open }

// Mode returns the current mode; meaningful only while open.
func (s *Session) Mode() Mode { return s.mode }

// Draft returns the current draft.
func (s *Session) Draft() models.Draft { return s.draft }

// SetDraft replaces the working draft.
func (s *Session) SetDraft(d models.Draft) { s.draft = d }

// OpenCreate transitions closed → open with an empty draft.
func (s *Session) OpenCreate() {
	s.open = true
	s.mode = ModeCreate
	s.editing = ""
	s.draft = models.Draft{}
}

// OpenEdit transitions closed → open with a draft seeded from note.
func (s *Session) OpenEdit(note models.Note) {
	s.open = true
	s.mode = ModeEdit
	s.editing = note.ID
	s.draft = models.DraftFromNote(note)
}

// Cancel discards the draft and closes the session with no side effect.
func (s *Session) Cancel() {
	s.open = false
	s.draft = models.Draft{}
	s.editing = ""
}

// Submit attempts to save the draft. A whitespace-only title is a silent
// no-op: no network call, session stays open, no error. On a confirmed save
// the session closes and the saved note is returned; on failure the session
// stays open and the error is returned (the store has already recorded it).
func (s *Session) Submit(ctx context.Context) (models.Note, bool, error) {
	if !s.open {
		return models.Note{}, false, nil
	}

	trimmed := s.draft.Trimmed()
	if trimmed.Title == "" {
		return models.Note{}, false, nil
	}

	var editingID *models.NoteID
	if s.mode == ModeEdit {
		id := s.editing
		editingID = &id
	}

	saved, err := s.store.Save(ctx, trimmed, editingID)
	if err != nil {
		return models.Note{}, false, err
	}

	s.Cancel()
	return saved, true, nil
}
