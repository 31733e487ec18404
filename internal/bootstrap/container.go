package bootstrap

import (
	"context"
	"log"

	"notesai-be/internal/config"
	"notesai-be/internal/controller"
	"notesai-be/internal/pkg/logger"
	"notesai-be/internal/pkg/mailer"
	"notesai-be/internal/repository/memory"
	"notesai-be/internal/repository/unitofwork"
	"notesai-be/internal/service"
	"notesai-be/internal/websocket"
	"notesai-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const noteEventsTopic = "note_events"

type Container struct {
	AuthController      controller.IAuthController
	NoteController      controller.INoteController
	AssistantController controller.IAssistantController

	// Background services, run by main.go.
	ConsumerService service.IConsumerService

	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// In-process event bus: note writes flow through here to the cache
	// invalidator and the websocket hub.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	baseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.Provider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewProvider(cfg.Ai.Provider, cfg.Ai.Model, cfg.Ai.OpenAIAPIKey, baseURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	contextCache := memory.NewContextCache()

	// Redis is optional: without it the hub only reaches clients on this
	// instance.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(noteEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, noteEventsTopic, contextCache, wsHub, sysLogger)

	authService := service.NewAuthService(uowFactory, emailService, cfg, sysLogger)
	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)
	assistantService := service.NewAssistantService(uowFactory, llmProvider, contextCache, cfg, sysLogger)

	return &Container{
		AuthController:      controller.NewAuthController(authService),
		NoteController:      controller.NewNoteController(noteService),
		AssistantController: controller.NewAssistantController(assistantService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		Logger:          sysLogger,
	}
}
