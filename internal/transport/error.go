package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/starford/penna/internal/apperr"
)

// Error is the normalized failure for any non-success HTTP status. Detail
// carries the service's `detail` field when present, otherwise the raw text
// body; when both are absent Error() synthesizes a generic message from the
// status code.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed: %d", e.Status)
}

// Unwrap maps well-known statuses onto apperr sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return apperr.ErrNotFound
	case http.StatusConflict:
		return apperr.ErrConflict
	}
	return nil
}

func newStatusError(resp *http.Response) *Error {
	e := &Error{Status: resp.StatusCode}

	// Error bodies are small; cap the read anyway.
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return e
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if jsonErr := json.Unmarshal(data, &body); jsonErr == nil && body.Detail != "" {
		e.Detail = body.Detail
		return e
	}

	if text := strings.TrimSpace(string(data)); text != "" && !strings.HasPrefix(text, "{") {
		e.Detail = text
	}
	return e
}
