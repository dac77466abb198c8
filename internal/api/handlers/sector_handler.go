package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wardwatch/statuspanel/internal/application/services"
)

// SectorHandler handles sector listing and updates
type SectorHandler struct {
	panel *services.PanelService
}

// NewSectorHandler creates a new sector handler
func NewSectorHandler(panel *services.PanelService) *SectorHandler {
	return &SectorHandler{panel: panel}
}

// ListSectors handles GET /sectors
func (h *SectorHandler) ListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.panel.ListSectors(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sectors)
}

// sectorUpdateRequest tolerates etaMinutes arriving as a JSON number or
// a string; both forms come off the admin form depending on revision.
type sectorUpdateRequest struct {
	Status      string      `json:"status"`
	Reason      *string     `json:"reason"`
	ETAMinutes  interface{} `json:"etaMinutes"`
	Instruction *string     `json:"instruction"`
}

// UpdateSector handles POST /sectors/{id}
func (h *SectorHandler) UpdateSector(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "sector ID is required")
		return
	}

	var payload sectorUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	input := services.SectorUpdateInput{
		Status:      payload.Status,
		Reason:      payload.Reason,
		Instruction: payload.Instruction,
	}
	if payload.ETAMinutes != nil {
		eta := stringifyETA(payload.ETAMinutes)
		input.ETAMinutes = &eta
	}

	sector, err := h.panel.UpdateSector(r.Context(), id, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sector)
}

func stringifyETA(v interface{}) string {
	switch eta := v.(type) {
	case string:
		return eta
	case float64:
		return fmt.Sprintf("%g", eta)
	default:
		return fmt.Sprintf("%v", eta)
	}
}
