// Package devserver bundles a small notes service implementing the same
// wire contract the client speaks, backed by SQLite. It exists so the client
// (and the original browser frontend) can be developed without a deployed
// backend.
package devserver

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/penna/internal/apperr"
	"github.com/starford/penna/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at);
`

// Store persists notes in SQLite. Identifiers are server-assigned UUIDs;
// clients never choose ids.
type Store struct {
	conn *sql.DB
}

// OpenStore opens (or creates) the SQLite database and applies the schema.
func OpenStore(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("devserver: open db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("devserver: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.conn.Close() }

// List returns all notes, newest first.
func (s *Store) List() ([]models.Note, error) {
	rows, err := s.conn.Query(`
		SELECT id, title, content, created_at, updated_at
		FROM notes
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("devserver: list: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Get returns one note by id.
func (s *Store) Get(id models.NoteID) (models.Note, error) {
	row := s.conn.QueryRow(`
		SELECT id, title, content, created_at, updated_at
		FROM notes WHERE id = ?
	`, id.String())
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, apperr.ErrNotFound
	}
	return n, err
}

// Create inserts a new note with a fresh UUID and server-owned timestamps.
func (s *Store) Create(title, content string) (models.Note, error) {
	now := time.Now().UTC()
	n := models.Note{
		ID:        models.NoteID(uuid.NewString()),
		Title:     title,
		Content:   content,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	_, err := s.conn.Exec(`
		INSERT INTO notes (id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, n.ID.String(), n.Title, n.Content, now, now)
	if err != nil {
		return models.Note{}, fmt.Errorf("devserver: insert: %w", err)
	}
	return n, nil
}

// Update applies a partial update: nil fields keep their stored value.
func (s *Store) Update(id models.NoteID, title, content *string) (models.Note, error) {
	existing, err := s.Get(id)
	if err != nil {
		return models.Note{}, err
	}
	if title != nil {
		existing.Title = *title
	}
	if content != nil {
		existing.Content = *content
	}
	now := time.Now().UTC()
	existing.UpdatedAt = &now

	_, err = s.conn.Exec(`
		UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?
	`, existing.Title, existing.Content, now, id.String())
	if err != nil {
		return models.Note{}, fmt.Errorf("devserver: update: %w", err)
	}
	return existing, nil
}

// Delete removes a note by id.
func (s *Store) Delete(id models.NoteID) error {
	res, err := s.conn.Exec(`DELETE FROM notes WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("devserver: delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var n models.Note
	var id string
	var created, updated time.Time
	if err := row.Scan(&id, &n.Title, &n.Content, &created, &updated); err != nil {
		return models.Note{}, err
	}
	n.ID = models.NoteID(id)
	n.CreatedAt = &created
	n.UpdatedAt = &updated
	return n, nil
}
