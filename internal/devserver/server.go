package devserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/penna/internal/apperr"
	"github.com/starford/penna/internal/models"
)

// Handler holds the notes service route handlers.
type Handler struct {
	store *Store
}

// NewRouter creates a chi router implementing the notes wire contract:
// GET/POST /notes, PUT/DELETE /notes/{id}. Error bodies carry a `detail`
// field, delete answers 204, and list responses are bare arrays.
func NewRouter(store *Store) chi.Router {
	h := &Handler{store: store}

	r := chi.NewRouter()
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func detailBody(msg string) detailResponse {
	return detailResponse{Detail: msg}
}

// ListNotes handles GET /notes.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.store.List()
	if err != nil {
		slog.Error("list notes failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, detailBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// CreateNote handles POST /notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req models.Draft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detailBody("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeJSON(w, http.StatusBadRequest, detailBody("title is required"))
		return
	}
	note, err := h.store.Create(strings.TrimSpace(req.Title), req.Content)
	if err != nil {
		slog.Error("create note failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, detailBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /notes/{id}. The body may be partial: omitted
// fields keep their stored values.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := models.NoteID(chi.URLParam(r, "id"))

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detailBody("invalid JSON body"))
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeJSON(w, http.StatusBadRequest, detailBody("title is required"))
		return
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}

	note, err := h.store.Update(id, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, detailBody("note not found"))
		} else {
			slog.Error("update note failed", slog.String("id", id.String()), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, detailBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /notes/{id}.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := models.NoteID(chi.URLParam(r, "id"))
	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, detailBody("note not found"))
			return
		}
		slog.Error("delete note failed", slog.String("id", id.String()), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, detailBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
