package api

import (
	"net/http"

	"github.com/iammorganparry/memomap/internal/config"
	"github.com/iammorganparry/memomap/internal/memory"
	"github.com/iammorganparry/memomap/internal/models"
	"github.com/iammorganparry/memomap/internal/store"
)

type AppStateHandler struct {
	svc  *memory.Service
	meta *store.MetaStore
	cfg  *config.Config
}

func NewAppStateHandler(svc *memory.Service, meta *store.MetaStore, cfg *config.Config) *AppStateHandler {
	return &AppStateHandler{svc: svc, meta: meta, cfg: cfg}
}

// Get handles GET /api/app-state: the one-time welcome flag plus the initial
// map view the page should start from.
func (h *AppStateHandler) Get(w http.ResponseWriter, r *http.Request) {
	shown, err := h.meta.WelcomeShown()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	count, err := h.svc.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.AppState{
		WelcomeShown: shown,
		MemoryCount:  count,
		CenterLat:    h.cfg.MapCenterLat,
		CenterLng:    h.cfg.MapCenterLng,
		Zoom:         h.cfg.MapZoom,
	})
}

// MarkWelcomeShown handles POST /api/app-state/welcome.
func (h *AppStateHandler) MarkWelcomeShown(w http.ResponseWriter, r *http.Request) {
	if err := h.meta.MarkWelcomeShown(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
