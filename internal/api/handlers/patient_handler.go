package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wardwatch/statuspanel/internal/application/services"
)

// PatientHandler handles patient listing and mutations
type PatientHandler struct {
	panel *services.PanelService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(panel *services.PanelService) *PatientHandler {
	return &PatientHandler{panel: panel}
}

// ListPatients handles GET /patients
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.panel.ListPatients(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, patients)
}

type addPatientRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AddPatient handles POST /patients
func (h *PatientHandler) AddPatient(w http.ResponseWriter, r *http.Request) {
	var payload addPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	patient, err := h.panel.AddPatient(r.Context(), payload.ID, payload.Name)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, patient)
}

type routeRequest struct {
	Route string `json:"route"`
}

// Route handles POST /patients/{id}/route
func (h *PatientHandler) Route(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload routeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	patient, err := h.panel.RoutePatient(r.Context(), id, payload.Route)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, patient)
}

// RemovePatient handles DELETE /patients/{id}
func (h *PatientHandler) RemovePatient(w http.ResponseWriter, r *http.Request) {
	if err := h.panel.RemovePatient(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
