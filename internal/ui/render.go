package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/starford/penna/internal/models"
)

const contentPreviewLen = 72

// RenderList writes a numbered listing of notes. Numbers are 1-based and
// match what the shell accepts for edit/remove commands.
func RenderList(w io.Writer, t Theme, notes []models.Note) {
	if len(notes) == 0 {
		t.Muted.Fprintln(w, "no notes")
		return
	}
	for i, n := range notes {
		t.Muted.Fprintf(w, "%3d. ", i+1)
		t.Title.Fprint(w, n.Title)
		if n.UpdatedAt != nil {
			t.Muted.Fprintf(w, "  (%s)", n.UpdatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(w)
		if preview := previewLine(n.Content); preview != "" {
			fmt.Fprintf(w, "     %s\n", preview)
		}
	}
}

// RenderNote writes one note in full.
func RenderNote(w io.Writer, t Theme, n models.Note) {
	t.Title.Fprintln(w, n.Title)
	t.Muted.Fprintf(w, "id: %s\n", n.ID)
	if n.Content != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, n.Content)
	}
}

// ErrorBanner writes the single inline error line. An empty message writes
// nothing, so callers can pass the store's error state unconditionally.
func ErrorBanner(w io.Writer, t Theme, msg string) {
	if msg == "" {
		return
	}
	t.Danger.Fprintf(w, "error: %s\n", msg)
}

// Info writes a muted status line.
func Info(w io.Writer, t Theme, format string, args ...any) {
	t.Muted.Fprintf(w, format+"\n", args...)
}

// Success writes a confirmation line.
func Success(w io.Writer, t Theme, format string, args ...any) {
	t.Success.Fprintf(w, format+"\n", args...)
}

func previewLine(content string) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	// Truncate on runes so a multi-byte character at the boundary is not
	// split mid-sequence.
	if r := []rune(line); len(r) > contentPreviewLen {
		line = string(r[:contentPreviewLen-1]) + "…"
	}
	return line
}
