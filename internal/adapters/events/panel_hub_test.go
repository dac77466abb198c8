package events_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardwatch/statuspanel/internal/adapters/events"
	"github.com/wardwatch/statuspanel/internal/domain/entities"
)

func snapshotEvent() *entities.PanelEvent {
	return entities.NewPanelEvent(entities.PanelEventTypeSnapshot, &entities.Snapshot{})
}

func sectorEvent(id string) *entities.PanelEvent {
	return entities.NewPanelEvent(entities.PanelEventTypeSector, &entities.Sector{
		ID: id, Name: id, Status: entities.SectorStatusOpen,
	})
}

func TestPanelHub_SnapshotDeliveredFirst(t *testing.T) {
	hub := events.NewPanelHub(nil)
	defer hub.Close()

	sub, err := hub.Subscribe(snapshotEvent())
	require.NoError(t, err)
	defer hub.Unsubscribe(sub.ID)

	hub.Publish(sectorEvent("s1"))

	first := <-sub.Events
	assert.Equal(t, entities.PanelEventTypeSnapshot, first.Type)

	second := <-sub.Events
	assert.Equal(t, entities.PanelEventTypeSector, second.Type)
}

func TestPanelHub_PublishOrderPreserved(t *testing.T) {
	hub := events.NewPanelHub(nil)
	defer hub.Close()

	sub, err := hub.Subscribe(nil)
	require.NoError(t, err)
	defer hub.Unsubscribe(sub.ID)

	for i := 0; i < 10; i++ {
		hub.Publish(sectorEvent(fmt.Sprintf("s%d", i)))
	}

	for i := 0; i < 10; i++ {
		event := <-sub.Events
		sector := event.Payload.(*entities.Sector)
		assert.Equal(t, fmt.Sprintf("s%d", i), sector.ID)
	}
}

func TestPanelHub_AllSubscribersReceive(t *testing.T) {
	hub := events.NewPanelHub(nil)
	defer hub.Close()

	first, err := hub.Subscribe(nil)
	require.NoError(t, err)
	second, err := hub.Subscribe(nil)
	require.NoError(t, err)

	hub.Publish(sectorEvent("s1"))

	assert.Equal(t, entities.PanelEventTypeSector, (<-first.Events).Type)
	assert.Equal(t, entities.PanelEventTypeSector, (<-second.Events).Type)
}

func TestPanelHub_SlowSubscriberPruned(t *testing.T) {
	hub := events.NewPanelHub(nil)
	defer hub.Close()

	slow, err := hub.Subscribe(nil)
	require.NoError(t, err)
	healthy, err := hub.Subscribe(nil)
	require.NoError(t, err)

	// drain the healthy subscriber as events arrive
	received := make(chan int, 1)
	go func() {
		count := 0
		for range healthy.Events {
			count++
			if count == 70 {
				break
			}
		}
		received <- count
	}()

	// overflow the slow subscriber's buffer; it never drains
	for i := 0; i < 70; i++ {
		hub.Publish(sectorEvent(fmt.Sprintf("s%d", i)))
		time.Sleep(time.Millisecond)
	}

	// delivery to the healthy subscriber was never interrupted
	select {
	case count := <-received:
		assert.Equal(t, 70, count)
	case <-time.After(2 * time.Second):
		t.Fatal("healthy subscriber did not receive the full burst")
	}

	// the slow subscriber's channel was closed by the hub
	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-slow.Events:
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("slow subscriber channel was not closed")
		}
	}
}

func TestPanelHub_UnsubscribeIdempotent(t *testing.T) {
	hub := events.NewPanelHub(nil)
	defer hub.Close()

	sub, err := hub.Subscribe(nil)
	require.NoError(t, err)

	hub.Unsubscribe(sub.ID)
	hub.Unsubscribe(sub.ID)

	_, open := <-sub.Events
	assert.False(t, open)
}

func TestPanelHub_SubscribeAfterClose(t *testing.T) {
	hub := events.NewPanelHub(nil)
	require.NoError(t, hub.Close())

	_, err := hub.Subscribe(snapshotEvent())
	assert.ErrorIs(t, err, events.ErrHubClosed)
}
