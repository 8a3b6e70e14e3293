package bootstrap

import (
	"context"
	"log"

	"lexcircle-be/internal/config"
	"lexcircle-be/internal/controller"
	"lexcircle-be/internal/handler"
	"lexcircle-be/internal/pkg/logger"
	"lexcircle-be/internal/repository/contract"
	"lexcircle-be/internal/repository/implementation"
	"lexcircle-be/internal/repository/memory"
	"lexcircle-be/internal/repository/unitofwork"
	"lexcircle-be/internal/service"
	"lexcircle-be/internal/websocket"
	"lexcircle-be/pkg/bus"

	pktNats "lexcircle-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	PreferenceController controller.IPreferenceController

	// Background Services (Exposed for main.go to run)
	ActivityService *service.ActivityService

	// WebSockets
	ChatStreamHandler *handler.ChatStreamHandler
	WebSocketHub      *websocket.Hub

	// Exposed so main.go can drain it on shutdown
	DeliveryBus bus.DeliveryBus
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Delivery Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	deliveries := bus.NewChannelBus(watermillLogger)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chat.log")
	wsHub := websocket.NewHub(deliveries, rdb, natsPub, cfg.App.InstanceID, wsLogger)
	go wsHub.Run()

	// 3. Services
	var presenceRepo contract.PresenceRepository
	if cfg.Chat.PresenceBackend == "memory" {
		presenceRepo = memory.NewPresenceStore(cfg.Chat.PresenceWindow)
		log.Printf("[INFO] Using Presence Backend: MEMORY")
	} else {
		presenceRepo = implementation.NewPresenceRepository(db)
		log.Printf("[INFO] Using Presence Backend: POSTGRES")
	}

	chatService := service.NewChatService(uowFactory, deliveries, natsPub, cfg.Chat.HistoryLimit, sysLogger)
	presenceService := service.NewPresenceService(presenceRepo, sysLogger)
	preferenceService := service.NewPreferenceService(uowFactory)

	// Audit worker consumes the chat event stream into system_logs.
	activityService := service.NewActivityService(uowFactory, natsSub, sysLogger)
	if natsSub != nil {
		go activityService.Start()
	}

	streamHandler := handler.NewChatStreamHandler(wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		ChatController:       controller.NewChatController(chatService, presenceService, cfg.Chat),
		PreferenceController: controller.NewPreferenceController(preferenceService),
		ActivityService:      activityService,
		ChatStreamHandler:    streamHandler,
		WebSocketHub:         wsHub,
		DeliveryBus:          deliveries,
	}
}
