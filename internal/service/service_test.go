package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"notecraft-be/internal/dto"
	"notecraft-be/internal/entity"
	"notecraft-be/internal/pkg/apperror"
	"notecraft-be/internal/pkg/logger"
	"notecraft-be/internal/repository/memory"
	"notecraft-be/internal/seed"
	"notecraft-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []events.WorkspaceEvent
}

func (b *fakeBroadcaster) Broadcast(event events.WorkspaceEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *fakeBroadcaster) last(t *testing.T) events.WorkspaceEvent {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.events)
	return b.events[len(b.events)-1]
}

func (b *fakeBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

type fakeBus struct {
	err       error
	published []events.Event
}

func (f *fakeBus) Publish(ctx context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return f.err
}

type fakePublisher struct {
	payloads [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func seededStore(t *testing.T) *memory.WorkspaceStore {
	t.Helper()
	ws, err := seed.Default(time.Now())
	require.NoError(t, err)
	store := memory.NewWorkspaceStore()
	store.Replace(ws.Pages, ws.CurrentPageId)
	return store
}

func newTestWorkspace(t *testing.T) (*memory.WorkspaceStore, *fakeBroadcaster, IEventService) {
	t.Helper()
	broadcaster := &fakeBroadcaster{}
	return seededStore(t), broadcaster, NewEventService(nil, nil, broadcaster, logger.NewNopLogger())
}

func responseIds(blocks []dto.BlockResponse) []string {
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.Id
	}
	return ids
}

func blockIds(p *entity.Page) []string {
	ids := make([]string, len(p.Blocks))
	for i, b := range p.Blocks {
		ids[i] = b.Id
	}
	return ids
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected an apperror, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestEventServiceRecord(t *testing.T) {
	store, broadcaster, svc := newTestWorkspace(t)
	ctx := context.Background()

	before := store.Snapshot()
	svc.Record(ctx, events.BlockUpdated, "b6", before, before)
	assert.Equal(t, 0, broadcaster.count(), "no-op mutations emit nothing")

	after := store.UpdateBlock("2", "b6", "Yesterday's thoughts")
	svc.Record(ctx, events.BlockUpdated, "b6", before, after)

	event := broadcaster.last(t)
	assert.Equal(t, events.BlockUpdated, event.Type)
	assert.Equal(t, after.Version, event.Version)
	assert.Equal(t, []string{"2"}, event.PageIds)
	assert.Equal(t, "b6", event.BlockId)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestEventServiceOutputs(t *testing.T) {
	ctx := context.Background()
	event := events.WorkspaceEvent{Type: events.PageCreated, Version: 3, PageIds: []string{"p"}}

	t.Run("bus replaces local delivery", func(t *testing.T) {
		broadcaster, bus, persistence := &fakeBroadcaster{}, &fakeBus{}, &fakePublisher{}
		NewEventService(persistence, bus, broadcaster, logger.NewNopLogger()).Emit(ctx, event)

		assert.Len(t, bus.published, 1)
		assert.Len(t, persistence.payloads, 1)
		assert.JSONEq(t, `{"type":"PAGE_CREATED","version":3,"page_ids":["p"],"occurred_at":"0001-01-01T00:00:00Z"}`, string(persistence.payloads[0]))
		assert.Equal(t, 0, broadcaster.count())
	})

	t.Run("bus failure falls back to the hub", func(t *testing.T) {
		broadcaster, bus := &fakeBroadcaster{}, &fakeBus{err: errors.New("nats down")}
		NewEventService(nil, bus, broadcaster, logger.NewNopLogger()).Emit(ctx, event)

		assert.Len(t, bus.published, 1)
		assert.Equal(t, event, broadcaster.last(t))
	})

	t.Run("detached bus delivers locally", func(t *testing.T) {
		broadcaster, bus := &fakeBroadcaster{}, &fakeBus{}
		svc := NewEventService(nil, bus, broadcaster, logger.NewNopLogger())
		svc.DetachBus()
		svc.Emit(ctx, event)

		assert.Empty(t, bus.published)
		assert.Equal(t, event, broadcaster.last(t))
	})
}
