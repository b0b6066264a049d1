package service

import (
	"context"
	"fmt"

	"notecraft-be/internal/pkg/logger"
	"notecraft-be/pkg/events"
	pktNats "notecraft-be/pkg/nats"
)

const changefeedDurable = "notecraft-changefeed"

type IChangefeedService interface {
	Start(ctx context.Context) error
}

// changefeedService forwards stream events to the websocket hub of this
// instance.
type changefeedService struct {
	subscriber  *pktNats.Subscriber
	broadcaster Broadcaster
	logger      logger.ILogger
}

func NewChangefeedService(subscriber *pktNats.Subscriber, broadcaster Broadcaster, log logger.ILogger) IChangefeedService {
	return &changefeedService{
		subscriber:  subscriber,
		broadcaster: broadcaster,
		logger:      log,
	}
}

func (s *changefeedService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		return fmt.Errorf("changefeed: no NATS subscriber")
	}
	return s.subscriber.Subscribe(ctx, pktNats.StreamSubjects, changefeedDurable, s.handle)
}

func (s *changefeedService) handle(ctx context.Context, event events.Event) error {
	we, ok := event.(events.WorkspaceEvent)
	if !ok {
		we = events.WorkspaceEventFromPayload(event.Payload())
	}
	s.broadcaster.Broadcast(we)
	s.logger.Debug("ChangefeedService", "Event forwarded", map[string]interface{}{"type": we.Type, "version": we.Version})
	return nil
}
