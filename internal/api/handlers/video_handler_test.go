package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wardwatch/statuspanel/internal/api/handlers"
	"github.com/wardwatch/statuspanel/internal/domain/entities"
)

func TestPlayVideo_FullURL(t *testing.T) {
	panel, bus := newSeededPanel(t)
	handler := handlers.NewVideoHandler(panel)

	body := `{"video":"https://www.youtube.com/watch?v=dQw4w9WgXcQ","start":30,"mute":true}`
	rec := httptest.NewRecorder()
	handler.PlayVideo(rec, httptest.NewRequest(http.MethodPost, "/play-video", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"videoId":"dQw4w9WgXcQ"}`, rec.Body.String())

	events := bus.published()
	if assert.Len(t, events, 1) {
		payload := events[0].Payload.(entities.PlayVideoPayload)
		assert.Equal(t, "dQw4w9WgXcQ", payload.VideoID)
		assert.Equal(t, 30, payload.Start)
		assert.True(t, payload.Mute)
	}
}

func TestPlayVideo_InvalidReference(t *testing.T) {
	panel, bus := newSeededPanel(t)
	handler := handlers.NewVideoHandler(panel)

	body := `{"video":"not a url or id"}`
	rec := httptest.NewRecorder()
	handler.PlayVideo(rec, httptest.NewRequest(http.MethodPost, "/play-video", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, bus.count())
}

func TestPlayVideo_MalformedBody(t *testing.T) {
	panel, _ := newSeededPanel(t)
	handler := handlers.NewVideoHandler(panel)

	rec := httptest.NewRecorder()
	handler.PlayVideo(rec, httptest.NewRequest(http.MethodPost, "/play-video", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStopVideo_HTTP(t *testing.T) {
	panel, bus := newSeededPanel(t)
	handler := handlers.NewVideoHandler(panel)

	rec := httptest.NewRecorder()
	handler.StopVideo(rec, httptest.NewRequest(http.MethodPost, "/stop-video", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	events := bus.published()
	if assert.Len(t, events, 1) {
		assert.Equal(t, entities.PanelEventTypeStopVideo, events[0].Type)
	}
}
