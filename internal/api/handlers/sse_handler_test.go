package handlers_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardwatch/statuspanel/internal/adapters/events"
	"github.com/wardwatch/statuspanel/internal/adapters/memory"
	"github.com/wardwatch/statuspanel/internal/api/handlers"
	"github.com/wardwatch/statuspanel/internal/application/services"
	"github.com/wardwatch/statuspanel/internal/domain/entities"
)

type streamedEvent struct {
	Type    entities.PanelEventType `json:"type"`
	Payload json.RawMessage         `json:"payload"`
}

// nextDataFrame reads lines until a data: frame arrives, skipping
// comment keep-alives.
func nextDataFrame(t *testing.T, reader *bufio.Reader) streamedEvent {
	t.Helper()
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var event streamedEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event))
		return event
	}
}

func TestStream_SnapshotThenIncrements(t *testing.T) {
	sectors := memory.NewSectorStore()
	physicians := memory.NewPhysicianStore()
	patients := memory.NewPatientStore()
	require.NoError(t, memory.Seed(context.Background(), sectors, physicians, patients))

	hub := events.NewPanelHub(nil)
	defer hub.Close()
	panel := services.NewPanelService(sectors, physicians, patients, hub)

	server := httptest.NewServer(http.HandlerFunc(handlers.NewSSEHandler(panel).Stream))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	// the stream opens with a comment so proxies commit it
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ":ok\n", line)

	// first data frame is the full-state snapshot
	event := nextDataFrame(t, reader)
	assert.Equal(t, entities.PanelEventTypeSnapshot, event.Type)

	var snapshot entities.Snapshot
	require.NoError(t, json.Unmarshal(event.Payload, &snapshot))
	assert.Len(t, snapshot.Sectors, 3)
	assert.Len(t, snapshot.Physicians, 2)
	assert.Len(t, snapshot.Patients, 2)

	// mutations after subscribe arrive as increments, in order
	_, err = panel.AddPatient(context.Background(), "p9", "Ana")
	require.NoError(t, err)
	_, err = panel.RoutePatient(context.Background(), "p9", "GreenRoom")
	require.NoError(t, err)

	event = nextDataFrame(t, reader)
	assert.Equal(t, entities.PanelEventTypePatient, event.Type)
	var added entities.Patient
	require.NoError(t, json.Unmarshal(event.Payload, &added))
	assert.Equal(t, "p9", added.ID)
	assert.Equal(t, entities.RouteWaiting, added.RoutedTo)

	event = nextDataFrame(t, reader)
	assert.Equal(t, entities.PanelEventTypePatient, event.Type)
	var routed entities.Patient
	require.NoError(t, json.Unmarshal(event.Payload, &routed))
	assert.Equal(t, entities.RouteGreenRoom, routed.RoutedTo)
}

func TestStream_DeletionMarker(t *testing.T) {
	sectors := memory.NewSectorStore()
	physicians := memory.NewPhysicianStore()
	patients := memory.NewPatientStore()
	require.NoError(t, memory.Seed(context.Background(), sectors, physicians, patients))

	hub := events.NewPanelHub(nil)
	defer hub.Close()
	panel := services.NewPanelService(sectors, physicians, patients, hub)

	server := httptest.NewServer(http.HandlerFunc(handlers.NewSSEHandler(panel).Stream))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	nextDataFrame(t, reader) // snapshot

	require.NoError(t, panel.RemovePhysician(context.Background(), "doc1"))

	event := nextDataFrame(t, reader)
	assert.Equal(t, entities.PanelEventTypePhysician, event.Type)

	var marker entities.DeletionMarker
	require.NoError(t, json.Unmarshal(event.Payload, &marker))
	assert.Equal(t, "doc1", marker.ID)
	assert.Equal(t, "deleted", marker.Action)
}

func TestStream_ClientDisconnectUnsubscribes(t *testing.T) {
	sectors := memory.NewSectorStore()
	physicians := memory.NewPhysicianStore()
	patients := memory.NewPatientStore()
	require.NoError(t, memory.Seed(context.Background(), sectors, physicians, patients))

	hub := events.NewPanelHub(nil)
	defer hub.Close()
	panel := services.NewPanelService(sectors, physicians, patients, hub)

	server := httptest.NewServer(http.HandlerFunc(handlers.NewSSEHandler(panel).Stream))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	nextDataFrame(t, reader) // snapshot
	cancel()

	// publishing after the disconnect must not block or panic once the
	// handler has had a moment to tear down
	assert.Eventually(t, func() bool {
		return hub.SubscriberCount() == 0
	}, 2*time.Second, 10*time.Millisecond)

	_, err = panel.AddPatient(context.Background(), "p9", "Ana")
	assert.NoError(t, err)
}
