package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/starford/penna/internal/apperr"
	"github.com/starford/penna/internal/models"
)

func TestListBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/notes" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"a","content":""},{"id":2,"title":"b","content":""}]`))
	}))
	defer srv.Close()

	notes, err := New(srv.URL, 0).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "1" || notes[1].Title != "b" {
		t.Errorf("notes = %+v", notes)
	}
}

func TestListWrappedItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"id":"x","title":"a","content":"c"}]}`))
	}))
	defer srv.Close()

	notes, err := New(srv.URL, 0).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "x" {
		t.Errorf("notes = %+v", notes)
	}
}

func TestListEmptyWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	notes, err := New(srv.URL, 0).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if notes == nil || len(notes) != 0 {
		t.Errorf("notes = %#v, want empty slice", notes)
	}
}

func TestCreateSendsDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["title"] != "X" || body["content"] != "" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":2,"title":"X","content":""}`))
	}))
	defer srv.Close()

	note, err := New(srv.URL, 0).Create(context.Background(), models.Draft{Title: "X"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.ID != "2" || note.Title != "X" {
		t.Errorf("note = %+v", note)
	}
}

func TestUpdateEscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"id":"a/b","title":"t","content":""}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Update(context.Background(), "a/b", models.Draft{Title: "t"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotPath != "/notes/a%2Fb" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestDeleteNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/notes/9" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := New(srv.URL, 0).Delete(context.Background(), "9"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestDeleteEchoBodyIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":9,"title":"gone","content":""}`))
	}))
	defer srv.Close()

	if err := New(srv.URL, 0).Delete(context.Background(), "9"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestErrorDetailField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"title is required"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Create(context.Background(), models.Draft{})
	if err == nil {
		t.Fatal("expected error")
	}
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("error type = %T", err)
	}
	if terr.Status != http.StatusBadRequest || terr.Error() != "title is required" {
		t.Errorf("error = %v (status %d)", terr, terr.Status)
	}
}

func TestErrorTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).List(context.Background())
	if err == nil || err.Error() != "upstream unavailable" {
		t.Errorf("err = %v", err)
	}
}

func TestErrorGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).List(context.Background())
	if err == nil || err.Error() != "request failed: 500" {
		t.Errorf("err = %v", err)
	}
}

func TestErrorNotFoundSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"note not found"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, 0).Delete(context.Background(), "nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDefaultBaseURL(t *testing.T) {
	c := New("", 0)
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("base = %q", c.BaseURL())
	}
	c = New("http://example.com/", 0)
	if c.BaseURL() != "http://example.com" {
		t.Errorf("trailing slash kept: %q", c.BaseURL())
	}
}
