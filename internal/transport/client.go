// Package transport is the HTTP boundary of the client. It translates the
// four logical note operations into requests against a configured base
// address and normalizes responses and errors into a single internal shape.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/starford/penna/internal/models"
)

// DefaultBaseURL is the documented local-development default.
const DefaultBaseURL = "http://localhost:3001"

// API is the contract the collection store consumes. *Client is the
// production implementation.
type API interface {
	List(ctx context.Context) ([]models.Note, error)
	Create(ctx context.Context, draft models.Draft) (models.Note, error)
	Update(ctx context.Context, id models.NoteID, draft models.Draft) (models.Note, error)
	Delete(ctx context.Context, id models.NoteID) error
}

// Client issues JSON-over-HTTP requests against the notes service. It does
// not retry, cache, or enforce a timeout beyond what its http.Client does.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base address. An empty baseURL falls
// back to DefaultBaseURL. A zero timeout leaves the underlying transport's
// default behavior in place.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured base address.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches the entire collection in one call. The service may respond
// with a bare array or a wrapped {items: [...]} object; both are normalized
// here so callers see a single shape.
func (c *Client) List(ctx context.Context) ([]models.Note, error) {
	body, err := c.do(ctx, http.MethodGet, "/notes", nil)
	if err != nil {
		return nil, err
	}
	return decodeNoteList(body)
}

// Create sends a new draft and returns the server-assigned note.
func (c *Client) Create(ctx context.Context, draft models.Draft) (models.Note, error) {
	body, err := c.do(ctx, http.MethodPost, "/notes", draft)
	if err != nil {
		return models.Note{}, err
	}
	return decodeNote(body)
}

// Update replaces the title/content of an existing note and returns the
// updated note as confirmed by the server.
func (c *Client) Update(ctx context.Context, id models.NoteID, draft models.Draft) (models.Note, error) {
	body, err := c.do(ctx, http.MethodPut, notePath(id), draft)
	if err != nil {
		return models.Note{}, err
	}
	return decodeNote(body)
}

// Delete removes a note. Some backends answer 204 with no body, others echo
// the deleted note; the body is ignored either way.
func (c *Client) Delete(ctx context.Context, id models.NoteID) error {
	_, err := c.do(ctx, http.MethodDelete, notePath(id), nil)
	return err
}

func notePath(id models.NoteID) string {
	return "/notes/" + url.PathEscape(id.String())
}

// do performs one round trip and returns the raw response body on success.
// A 204 or empty body short-circuits to nil without decoding.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}

func decodeNote(body []byte) (models.Note, error) {
	var n models.Note
	if err := json.Unmarshal(body, &n); err != nil {
		return models.Note{}, fmt.Errorf("decode note: %w", err)
	}
	return n, nil
}

// decodeNoteList is the single decoding step for list responses. It accepts
// either a bare array or a wrapped-items object.
func decodeNoteList(body []byte) ([]models.Note, error) {
	if body == nil {
		return []models.Note{}, nil
	}
	var notes []models.Note
	if err := json.Unmarshal(body, &notes); err == nil {
		return notes, nil
	}
	var wrapped struct {
		Items []models.Note `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode note list: %w", err)
	}
	if wrapped.Items == nil {
		return []models.Note{}, nil
	}
	return wrapped.Items, nil
}
