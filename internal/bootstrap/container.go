package bootstrap

import (
	"context"
	"fmt"
	"log"

	"notecraft-be/internal/config"
	"notecraft-be/internal/controller"
	"notecraft-be/internal/handler"
	"notecraft-be/internal/pkg/logger"
	"notecraft-be/internal/repository/memory"
	"notecraft-be/internal/repository/unitofwork"
	"notecraft-be/internal/service"
	"notecraft-be/internal/websocket"

	pktNats "notecraft-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PageController      controller.IPageController
	BlockController     controller.IBlockController
	WorkspaceController controller.IWorkspaceController
	SystemController    controller.ISystemController

	// Background Services (Exposed for main.go to run)
	WorkspaceService  service.IWorkspaceService
	EventService      service.IEventService
	ConsumerService   service.IConsumerService   // nil without a database
	ChangefeedService service.IChangefeedService // nil without NATS

	// WebSockets
	WebSocketHub *websocket.Hub

	Store  *memory.WorkspaceStore
	Logger logger.ILogger

	closers []func()
}

// NewContainer wires the application. db may be nil, in which case the
// workspace lives in memory only; NATS and redis are likewise optional.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	store := memory.NewWorkspaceStore()
	c := &Container{Store: store, Logger: sysLogger}

	var uowFactory unitofwork.RepositoryFactory
	var databaseProbe service.Probe
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
		databaseProbe = func(ctx context.Context) bool {
			sqlDB, err := db.DB()
			return err == nil && sqlDB.PingContext(ctx) == nil
		}
	}

	// 2. Event Bus (write-behind persistence)
	var persistence service.IPublisherService
	if uowFactory != nil {
		pubSub := gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 256},
			watermill.NewStdLogger(false, false),
		)
		persistence = service.NewPublisherService(cfg.Workspace.PersistTopic, pubSub)
		c.ConsumerService = service.NewConsumerService(pubSub, cfg.Workspace.PersistTopic, uowFactory, store, sysLogger)
		c.closers = append(c.closers, func() { pubSub.Close() })
	}

	// 3. Infrastructure
	// NATS
	var bus service.EventPublisher
	var natsProbe service.Probe
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			bus = natsPub
			natsProbe = func(ctx context.Context) bool { return natsPub.Connected() }
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
			natsSub = nil
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// Redis
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	c.WebSocketHub = wsHub

	// 4. Services
	eventService := service.NewEventService(persistence, bus, wsHub, sysLogger)
	c.EventService = eventService
	if natsSub != nil && bus != nil {
		c.ChangefeedService = service.NewChangefeedService(natsSub, wsHub, sysLogger)
	} else if bus != nil {
		// Nothing would forward published events to the hub.
		eventService.DetachBus()
	}

	pageService := service.NewPageService(store, eventService)
	blockService := service.NewBlockService(store, eventService)
	documentService := service.NewDocumentService(store, eventService)
	c.WorkspaceService = service.NewWorkspaceService(store, uowFactory, eventService, sysLogger, service.WorkspaceOptions{
		SeedFile:    cfg.Workspace.SeedFile,
		RecentLimit: cfg.Workspace.RecentLimit,
		CacheTTL:    cfg.Workspace.SearchCacheTTL,
	})
	systemService := service.NewSystemService(store, sysLogger, databaseProbe, natsProbe)

	realtimeHandler := handler.NewRealtimeHandler(wsHub, sysLogger)

	// 5. Controllers
	c.PageController = controller.NewPageController(pageService, documentService)
	c.BlockController = controller.NewBlockController(blockService)
	c.WorkspaceController = controller.NewWorkspaceController(c.WorkspaceService, realtimeHandler.ServeWs)
	c.SystemController = controller.NewSystemController(systemService)

	return c
}

// Start runs the background workers and loads the workspace. The consumer
// subscribes before the load so a seeded workspace reaches the database.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if c.ConsumerService != nil {
		if err := c.ConsumerService.Consume(ctx); err != nil {
			return fmt.Errorf("start consumer: %w", err)
		}
	}

	if c.ChangefeedService != nil {
		if err := c.ChangefeedService.Start(ctx); err != nil {
			c.Logger.Warn("Container", "Changefeed unavailable, delivering events locally", map[string]interface{}{"error": err.Error()})
			c.EventService.DetachBus()
		}
	}

	if err := c.WorkspaceService.Load(ctx); err != nil {
		return fmt.Errorf("load workspace: %w", err)
	}
	return nil
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}
