package bootstrap

import (
	"context"
	"log"

	"github.com/mawuli2121/Priya-Project/internal/config"
	"github.com/mawuli2121/Priya-Project/internal/constant"
	"github.com/mawuli2121/Priya-Project/internal/controller"
	"github.com/mawuli2121/Priya-Project/internal/handler"
	"github.com/mawuli2121/Priya-Project/internal/pkg/logger"
	"github.com/mawuli2121/Priya-Project/internal/pkg/mailer"
	"github.com/mawuli2121/Priya-Project/internal/repository/memory"
	"github.com/mawuli2121/Priya-Project/internal/service"
	"github.com/mawuli2121/Priya-Project/internal/websocket"
	"github.com/mawuli2121/Priya-Project/pkg/assistant"
	openaiClient "github.com/mawuli2121/Priya-Project/pkg/assistant/openai"

	pktNats "github.com/mawuli2121/Priya-Project/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const analysisEventsTopic = "ANALYSIS_EVENTS"

type Container struct {
	// Controllers
	AnalysisController controller.IAnalysisController
	ReportController   controller.IReportController
	SessionController  controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional, external audit trail)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis (optional, cross-instance stream delivery)
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
		rdb = nil
	}

	// 3. Assistant provider + registry
	resourceClient := openaiClient.NewClient(cfg.Keys.OpenAI)
	registry := assistant.NewRegistry(resourceClient, assistant.Config{
		Name:         constant.AssistantName,
		Model:        cfg.Assistant.Model,
		Temperature:  cfg.Assistant.Temperature,
		Instructions: constant.AssistantInstructions,
	})

	// Create the remote assistant once at startup; a failure here is fatal,
	// nothing downstream can work without it.
	assistantID, err := registry.GetOrCreate(context.Background())
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize assistant: %v", err)
	}
	log.Printf("[INFO] Using assistant %s (%s, model %s)", assistantID, constant.AssistantName, cfg.Assistant.Model)

	// 4. Session storage + WebSocket Hub
	sessionRepo := memory.NewSessionRepository()

	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	publisherService := service.NewPublisherService(analysisEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, analysisEventsTopic, natsPub, sysLogger)

	analysisService := service.NewAnalysisService(
		resourceClient,
		registry,
		sessionRepo,
		wsHub,
		publisherService,
		sysLogger,
	)
	reportService := service.NewReportService(sessionRepo, emailService)

	// 6. Controllers & Handlers
	analysisController := controller.NewAnalysisController(analysisService, cfg.Keys.SessionSecret)
	reportController := controller.NewReportController(reportService)
	sessionController := controller.NewSessionController(analysisService)
	streamHandler := handler.NewStreamHandler(wsHub, cfg.Keys.SessionSecret, wsLogger)

	return &Container{
		AnalysisController: analysisController,
		ReportController:   reportController,
		SessionController:  sessionController,
		ConsumerService:    consumerService,
		StreamHandler:      streamHandler,
		WebSocketHub:       wsHub,
	}
}
