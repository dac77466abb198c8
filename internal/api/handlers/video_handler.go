package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wardwatch/statuspanel/internal/application/services"
)

// VideoHandler handles remote video playback control for the TVs
type VideoHandler struct {
	panel *services.PanelService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(panel *services.PanelService) *VideoHandler {
	return &VideoHandler{panel: panel}
}

type playVideoRequest struct {
	Video string      `json:"video"`
	Start interface{} `json:"start"`
	Mute  bool        `json:"mute"`
}

// PlayVideo handles POST /play-video
func (h *VideoHandler) PlayVideo(w http.ResponseWriter, r *http.Request) {
	var payload playVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	videoID, err := h.panel.PlayVideo(r.Context(), payload.Video, payload.Start, payload.Mute)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "videoId": videoID})
}

// StopVideo handles POST /stop-video
func (h *VideoHandler) StopVideo(w http.ResponseWriter, r *http.Request) {
	h.panel.StopVideo(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
