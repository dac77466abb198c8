package handlers_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wardwatch/statuspanel/internal/adapters/memory"
	"github.com/wardwatch/statuspanel/internal/application/services"
	"github.com/wardwatch/statuspanel/internal/domain/entities"
	"github.com/wardwatch/statuspanel/internal/domain/providers"
)

// recordingBus captures broadcasts so handler tests can assert on them
type recordingBus struct {
	mu     sync.Mutex
	events []*entities.PanelEvent
}

func (b *recordingBus) Subscribe(snapshot *entities.PanelEvent) (*providers.Subscription, error) {
	ch := make(chan *entities.PanelEvent, 1)
	if snapshot != nil {
		ch <- snapshot
	}
	close(ch)
	return &providers.Subscription{ID: "rec", Events: ch}, nil
}

func (b *recordingBus) Unsubscribe(id string) {}

func (b *recordingBus) Publish(event *entities.PanelEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func (b *recordingBus) published() []*entities.PanelEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*entities.PanelEvent(nil), b.events...)
}

// newSeededPanel builds a command surface over seeded in-memory stores
func newSeededPanel(t *testing.T) (*services.PanelService, *recordingBus) {
	t.Helper()

	sectors := memory.NewSectorStore()
	physicians := memory.NewPhysicianStore()
	patients := memory.NewPatientStore()
	require.NoError(t, memory.Seed(context.Background(), sectors, physicians, patients))

	bus := &recordingBus{}
	return services.NewPanelService(sectors, physicians, patients, bus), bus
}
