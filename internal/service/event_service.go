package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"notecraft-be/internal/pkg/logger"
	"notecraft-be/internal/repository/memory"
	"notecraft-be/pkg/events"
)

// EventPublisher is the external event bus, satisfied by *nats.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Broadcaster delivers events to connected editors, satisfied by
// *websocket.Hub.
type Broadcaster interface {
	Broadcast(event events.WorkspaceEvent)
}

type IEventService interface {
	// Record emits an event for the pages that differ between before and
	// after. Nothing is emitted when the mutation was a no-op.
	Record(ctx context.Context, eventType, blockId string, before, after *memory.Snapshot)
	Emit(ctx context.Context, event events.WorkspaceEvent)
	// DetachBus stops publishing to the bus; later events go straight to
	// the broadcaster.
	DetachBus()
}

type eventService struct {
	persistence IPublisherService
	bus         EventPublisher
	detached    atomic.Bool
	broadcaster Broadcaster
	logger      logger.ILogger
	now         func() time.Time
}

// NewEventService wires the outputs a change goes to. persistence and bus
// may be nil; without a bus events go straight to the broadcaster.
func NewEventService(
	persistence IPublisherService,
	bus EventPublisher,
	broadcaster Broadcaster,
	log logger.ILogger,
) IEventService {
	return &eventService{
		persistence: persistence,
		bus:         bus,
		broadcaster: broadcaster,
		logger:      log,
		now:         time.Now,
	}
}

func (s *eventService) Record(ctx context.Context, eventType, blockId string, before, after *memory.Snapshot) {
	if after == nil || (before != nil && before.Version == after.Version) {
		return
	}
	var pageIds []string
	if before != nil {
		pageIds = memory.ChangedPages(before, after)
	}
	s.Emit(ctx, events.WorkspaceEvent{
		Type:       eventType,
		Version:    after.Version,
		PageIds:    pageIds,
		BlockId:    blockId,
		OccurredAt: s.now(),
	})
}

func (s *eventService) Emit(ctx context.Context, event events.WorkspaceEvent) {
	if s.persistence != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			err = s.persistence.Publish(ctx, payload)
		}
		if err != nil {
			s.logger.Error("EventService", "Failed to queue change for persistence", map[string]interface{}{
				"type": event.Type, "version": event.Version, "error": err.Error(),
			})
		}
	}

	if s.bus != nil && !s.detached.Load() {
		err := s.bus.Publish(ctx, event)
		if err == nil {
			return
		}
		s.logger.Warn("EventService", "Failed to publish event, delivering locally", map[string]interface{}{
			"type": event.Type, "error": err.Error(),
		})
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(event)
	}
}

func (s *eventService) DetachBus() {
	s.detached.Store(true)
}
