package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/iammorganparry/memomap/internal/memory"
	"github.com/iammorganparry/memomap/internal/models"
)

type TransferHandler struct {
	svc *memory.Service
}

func NewTransferHandler(svc *memory.Service) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// Export handles GET /api/memories/export. The suggested filename embeds the
// current date so saved backups sort naturally.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	memories, err := h.svc.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if memories == nil {
		memories = []*models.Memory{}
	}

	filename := fmt.Sprintf("memories-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, memories)
}

// Import handles POST /api/memories/import: replace-the-world semantics. A
// malformed payload leaves the prior collection fully intact.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	var records []*models.Memory
	if err := decodeJSON(r, &records); err != nil {
		writeError(w, http.StatusBadRequest, "import file must be a JSON array of memories: "+err.Error())
		return
	}

	n, err := h.svc.Import(records)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ImportResult{Imported: n})
}
