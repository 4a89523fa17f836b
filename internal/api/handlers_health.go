package api

import (
	"net/http"

	"github.com/iammorganparry/memomap/internal/models"
	"github.com/iammorganparry/memomap/internal/store"
)

type HealthHandler struct {
	db *store.DB
}

func NewHealthHandler(db *store.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{Status: "ok", DB: "ok"}

	count, err := h.db.MemoryCount()
	if err != nil {
		resp.Status = "degraded"
		resp.DB = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.MemoryCount = count

	writeJSON(w, http.StatusOK, resp)
}
