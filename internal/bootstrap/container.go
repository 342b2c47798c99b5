package bootstrap

import (
	"context"
	"log"

	"building-chat-be/internal/config"
	"building-chat-be/internal/controller"
	"building-chat-be/internal/pkg/logger"
	"building-chat-be/internal/pkg/mailer"
	"building-chat-be/internal/repository/unitofwork"
	"building-chat-be/internal/service"
	"building-chat-be/pkg/chat/costs"
	"building-chat-be/pkg/chat/executor"
	"building-chat-be/pkg/chat/intent"
	"building-chat-be/pkg/chat/prompt"
	"building-chat-be/pkg/chat/resolve"
	"building-chat-be/pkg/chat/retry"
	"building-chat-be/pkg/embedding"
	"building-chat-be/pkg/ingestion"
	"building-chat-be/pkg/llm/factory"

	pktNats "building-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := log.Default()

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

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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

	// 3. AI Providers
	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
		cfg.Ai.EmbedTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
		cfg.Ai.ChatTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Chat Pipeline
	contextSources := service.NewContextSources(uowFactory)
	ingestClient := ingestion.NewClient(cfg.Ingestion.FileProcessorURL, cfg.Ingestion.Timeout)

	classifier := intent.NewClassifier(
		llmProvider,
		cfg.Ai.ClassifierModel,
		cfg.Ai.ConfidenceThreshold,
		cfg.Ai.ClassifyTimeout,
		pipelineLogger,
	)
	resolver := resolve.NewResolver(
		contextSources,
		contextSources,
		contextSources,
		ingestClient,
		embeddingProvider,
		cfg.Ai.VectorTopK,
		cfg.Ai.ResolveTimeout,
		pipelineLogger,
	)
	promptBuilder := prompt.NewBuilder(cfg.Ai.HistoryWindow)

	orchestrator := executor.NewOrchestrator(
		classifier,
		resolver,
		promptBuilder,
		llmProvider,
		cfg.Ai.LLMModel,
		retry.DefaultGeneration(),
		cfg.Ai.HistoryWindow,
		pipelineLogger,
	)

	// 5. Cost Accounting
	costAlerter := service.NewCostAlerter(sysLogger, emailService, cfg.Cost.AlertEmail, natsPub)
	costMonitor := costs.NewMonitor(rdb, cfg.Cost.SessionAlertUSD, cfg.Cost.DailyAlertUSD, costAlerter)

	publisherService := service.NewPublisherService(cfg.Cost.SessionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Cost.SessionTopic,
		costMonitor,
	)

	// 6. Services
	chatService := service.NewChatService(
		orchestrator,
		uowFactory,
		publisherService,
		sysLogger,
	)
	costService := service.NewCostService(costMonitor)

	// 7. Controllers
	return &Container{
		ChatController: controller.NewChatController(chatService, costService),

		ConsumerService: consumerService,
	}
}
