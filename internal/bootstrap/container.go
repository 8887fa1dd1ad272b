package bootstrap

import (
	"context"
	"log"
	"time"

	"routine-advisor-be/internal/config"
	"routine-advisor-be/internal/controller"
	"routine-advisor-be/internal/handler"
	"routine-advisor-be/internal/pkg/logger"
	"routine-advisor-be/internal/repository/memory"
	"routine-advisor-be/internal/service"
	"routine-advisor-be/internal/view"
	"routine-advisor-be/internal/websocket"
	"routine-advisor-be/pkg/assistant"
	"routine-advisor-be/pkg/catalog"
	"routine-advisor-be/pkg/llm"
	"routine-advisor-be/pkg/llm/factory"
	pktNats "routine-advisor-be/pkg/nats"
	"routine-advisor-be/pkg/store"
	"routine-advisor-be/pkg/topic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	WidgetController    controller.IWidgetController
	WidgetSocketHandler *handler.WidgetSocketHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	closers := []func(){func() { _ = sysLogger.Sync() }}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	closers = append(closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	// Redis (selection snapshots + websocket fan-out), memory otherwise
	var rdb *redis.Client
	var kv store.KeyValueStore = store.NewMemoryStore()
	driver := store.DriverMemory
	if store.DriverType(cfg.Store.Driver) == store.DriverRedis {
		if client, err := connectRedis(cfg.Store.RedisURL); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to memory store", err)
		} else {
			rdb = client
			kv = store.NewRedisStore(rdb, time.Duration(cfg.Store.SelectionTTLHours)*time.Hour)
			driver = store.DriverRedis
			closers = append(closers, func() { _ = rdb.Close() })
		}
	}
	log.Printf("[INFO] Using selection store driver: %s", driver)

	// NATS activity stream is optional
	var activity service.ActivityPublisher
	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			activity = natsPub
			closers = append(closers, natsPub.Close)
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WebSocketLogPath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Assistant
	llmProvider, err := factory.NewLLMProvider(
		cfg.Assistant.Provider,
		cfg.Assistant.Model,
		cfg.Assistant.ProxyURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Assistant.Provider, cfg.Assistant.Model)

	gateway := assistant.NewGateway(
		llmProvider,
		llm.WithModel(cfg.Assistant.Model),
		llm.WithTemperature(cfg.Assistant.Temperature),
		llm.WithWebSearch(cfg.Assistant.MaxSearchResults),
	)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.Topic, wsHub, wsLogger)

	widgetService := service.NewWidgetService(
		memory.NewSessionRepository(time.Duration(cfg.App.SessionTTLMinutes)*time.Minute),
		catalog.NewLoader(cfg.Catalog.Source),
		store.NewSelectionSnapshots(kv),
		gateway,
		topic.NewGate(cfg.Topic.Keywords, cfg.Topic.RoutineThreshold),
		publisherService,
		activity,
		sysLogger,
		service.WidgetOptions{
			SystemPrompt:     cfg.Assistant.SystemPrompt,
			RoutineMaxTokens: cfg.Assistant.RoutineMaxTokens,
			ChatMaxTokens:    cfg.Assistant.ChatMaxTokens,
		},
	)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("[FATAL] Failed to parse page template: %v", err)
	}

	// 6. Controllers
	return &Container{
		WidgetController:    controller.NewWidgetController(widgetService, renderer),
		WidgetSocketHandler: handler.NewWidgetSocketHandler(wsHub, wsLogger),
		ConsumerService:     consumerService,
		WebSocketHub:        wsHub,
		Logger:              sysLogger,
		closers:             closers,
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func connectRedis(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
