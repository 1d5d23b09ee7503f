// Package models defines the domain types for penna.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxTitleLength is the client-side guard on note titles. The service is the
// final authority on constraints.
const MaxTitleLength = 120

// NoteID is a server-assigned note identifier. Backends disagree on whether
// identifiers are strings or integers, so it decodes from either JSON shape
// and keeps the original token as text. Identifiers are never generated
// client-side.
type NoteID string

// UnmarshalJSON accepts both `"42"` and `42`.
func (id *NoteID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = NoteID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("note id: expected string or number, got %s", data)
	}
	*id = NoteID(n.String())
	return nil
}

// MarshalJSON always emits the string form. The client only ever sends
// identifiers in URL paths, so the wire shape of outgoing ids does not matter.
func (id NoteID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id NoteID) String() string { return string(id) }

// Note is the core entity: a title/content pair with a server-assigned
// identifier. Timestamps are optional and server-owned.
type Note struct {
	ID        NoteID     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Draft is an unsaved title/content pair held by the editor. It is never
// partially persisted: the whole draft is sent on save or discarded.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Trimmed returns a copy with surrounding whitespace removed from the title.
func (d Draft) Trimmed() Draft {
	d.Title = strings.TrimSpace(d.Title)
	return d
}

// Validate enforces the client-side draft constraints: a non-empty title no
// longer than MaxTitleLength runes. Content is free text and may be empty.
func (d Draft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
	)
}

// DraftFromNote seeds an edit draft from an existing note.
func DraftFromNote(n Note) Draft {
	return Draft{Title: n.Title, Content: n.Content}
}
