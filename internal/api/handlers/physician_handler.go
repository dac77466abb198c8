package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wardwatch/statuspanel/internal/application/services"
)

// PhysicianHandler handles physician listing and mutations
type PhysicianHandler struct {
	panel *services.PanelService
}

// NewPhysicianHandler creates a new physician handler
func NewPhysicianHandler(panel *services.PanelService) *PhysicianHandler {
	return &PhysicianHandler{panel: panel}
}

// ListPhysicians handles GET /physicians
func (h *PhysicianHandler) ListPhysicians(w http.ResponseWriter, r *http.Request) {
	physicians, err := h.panel.ListPhysicians(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, physicians)
}

type addPhysicianRequest struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	AvailabilityStatus string `json:"availabilityStatus"`
}

// AddPhysician handles POST /physicians
func (h *PhysicianHandler) AddPhysician(w http.ResponseWriter, r *http.Request) {
	var payload addPhysicianRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	physician, err := h.panel.AddPhysician(r.Context(), payload.ID, payload.Name, payload.AvailabilityStatus)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, physician)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles POST /physicians/{id}/status
func (h *PhysicianHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	physician, err := h.panel.SetPhysicianStatus(r.Context(), id, payload.Status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, physician)
}

// RemovePhysician handles DELETE /physicians/{id}
func (h *PhysicianHandler) RemovePhysician(w http.ResponseWriter, r *http.Request) {
	if err := h.panel.RemovePhysician(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
