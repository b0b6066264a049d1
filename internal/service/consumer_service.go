package service

import (
	"context"
	"encoding/json"

	"notecraft-be/internal/model"
	"notecraft-be/internal/pkg/logger"
	"notecraft-be/internal/repository/memory"
	"notecraft-be/internal/repository/unitofwork"
	"notecraft-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService writes store changes behind to the database. Each event
// only names the pages it touched; their content is read from the latest
// snapshot, so a late event never writes an older page state.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	store      *memory.WorkspaceStore
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	store *memory.WorkspaceStore,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		store:      store,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Failures are logged and acked; the next change to the same page
	// writes its full state again.
	defer msg.Ack()

	var event events.WorkspaceEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal change event", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := cs.persist(ctx, event); err != nil {
		cs.logger.Error("ConsumerService", "Failed to persist change", map[string]interface{}{
			"type": event.Type, "version": event.Version, "error": err.Error(),
		})
		return
	}
	cs.logger.Debug("ConsumerService", "Change persisted", map[string]interface{}{
		"type": event.Type, "version": event.Version, "pages": len(event.PageIds),
	})
}

func (cs *consumerService) persist(ctx context.Context, event events.WorkspaceEvent) error {
	snap := cs.store.Snapshot()
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	pages := uow.PageRepository()
	if event.Type == events.WorkspaceReplaced {
		if err := pages.DeleteAllUnscoped(ctx); err != nil {
			return err
		}
		for i, p := range snap.Pages {
			if err := pages.Save(ctx, p, i); err != nil {
				return err
			}
		}
	} else {
		removed := false
		for _, id := range event.PageIds {
			p := snap.Page(id)
			if p == nil {
				removed = true
				if err := pages.Delete(ctx, id); err != nil {
					return err
				}
				continue
			}
			if err := pages.Save(ctx, p, snap.IndexOf(id)); err != nil {
				return err
			}
		}
		if removed {
			ids := make([]string, len(snap.Pages))
			for i, p := range snap.Pages {
				ids[i] = p.Id
			}
			if err := pages.Reorder(ctx, ids); err != nil {
				return err
			}
		}
	}

	if err := uow.WorkspaceStateRepository().Save(ctx, &model.WorkspaceState{
		CurrentPageId:    snap.CurrentPageId,
		SidebarCollapsed: snap.SidebarCollapsed,
		Version:          snap.Version,
		UpdatedAt:        event.OccurredAt,
	}); err != nil {
		return err
	}

	return uow.Commit()
}
