package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wardwatch/statuspanel/internal/application/services"
)

// keepAliveInterval is how often a comment line is written so proxies
// keep the stream open and dead connections surface as write errors.
const keepAliveInterval = 15 * time.Second

// SSEHandler streams panel updates to display and admin clients over
// Server-Sent Events. The endpoint is public so unattended TVs can
// connect without credentials.
type SSEHandler struct {
	panel *services.PanelService
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(panel *services.PanelService) *SSEHandler {
	return &SSEHandler{panel: panel}
}

// Stream handles GET /events. On connect the client gets one comment
// keep-alive, then the full-state snapshot, then every subsequent
// broadcast in publish order, with comment heartbeats in between.
func (h *SSEHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")

	sub, err := h.panel.Subscribe(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to register live-update subscriber")
		respondWithError(w, http.StatusServiceUnavailable, "stream unavailable")
		return
	}
	defer h.panel.Unsubscribe(sub.ID)

	// initial comment so intermediaries commit the stream right away
	if _, err := fmt.Fprint(w, ":ok\n\n"); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Str("subscriber", sub.ID).Msg("client disconnected from event stream")
			return
		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ":heartbeat %d\n\n", time.Now().Unix()); err != nil {
				return
			}
			flusher.Flush()
		case event, open := <-sub.Events:
			if !open {
				// pruned by the hub
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				log.Error().Err(err).Str("type", string(event.Type)).Msg("failed to encode panel event")
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
