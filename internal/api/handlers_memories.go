package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/memomap/internal/memory"
	"github.com/iammorganparry/memomap/internal/models"
	"github.com/iammorganparry/memomap/internal/store"
)

type MemoryHandler struct {
	svc *memory.Service
}

func NewMemoryHandler(svc *memory.Service) *MemoryHandler {
	return &MemoryHandler{svc: svc}
}

// List handles GET /api/memories. Filter fields come from the query string;
// absent fields match everything.
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	f := models.Filter{
		Mood: models.Mood(r.URL.Query().Get("mood")),
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if f.Mood != "" && !f.Mood.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown mood")
		return
	}

	memories, err := h.svc.List(f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if memories == nil {
		memories = []*models.Memory{}
	}

	writeJSON(w, http.StatusOK, models.ListResponse{Memories: memories, Total: len(memories)})
}

// Create handles POST /api/memories.
func (h *MemoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.MemoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	m, err := h.svc.Create(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, m)
}

// Get handles GET /api/memories/{id}.
func (h *MemoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	m, err := h.svc.Get(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "memory not found")
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// Update handles PUT /api/memories/{id}. Edit replaces every mutable field;
// id and createdAt survive.
func (h *MemoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req models.MemoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	m, err := h.svc.Update(id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// Delete handles DELETE /api/memories/{id}. The page confirms with the user
// before calling.
func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Random handles GET /api/memories/random.
func (h *MemoryHandler) Random(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Random()
	if err != nil {
		if errors.Is(err, memory.ErrNoMemories) {
			writeError(w, http.StatusNotFound, "no memories recorded yet")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// Markers handles GET /api/markers, returning the derived marker index with
// current filter visibility applied.
func (h *MemoryHandler) Markers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"markers": h.svc.Markers()})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid memory id")
		return 0, false
	}
	return id, true
}

// writeServiceError maps service errors onto the status taxonomy: rejected
// input is 400, stale ids are 404, anything else is a storage failure.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *memory.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "memory not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
