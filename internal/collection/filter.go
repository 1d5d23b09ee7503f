package collection

import (
	"strings"

	"github.com/starford/penna/internal/models"
)

// Filter returns the notes whose title or content contains the trimmed query
// as a case-insensitive substring, preserving order. An empty or
// whitespace-only query returns the input unchanged. The input is never
// mutated.
func Filter(notes []models.Note, query string) []models.Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}
	var out []models.Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}
