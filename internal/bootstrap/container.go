package bootstrap

import (
	"context"
	"log"

	"contract-iq-be/internal/config"
	"contract-iq-be/internal/controller"
	"contract-iq-be/internal/pkg/logger"
	"contract-iq-be/internal/pkg/serverutils"
	"contract-iq-be/internal/repository/implementation"
	"contract-iq-be/internal/repository/unitofwork"
	"contract-iq-be/internal/service"
	"contract-iq-be/pkg/cache"
	"contract-iq-be/pkg/embedding"
	"contract-iq-be/pkg/embedding/huggingface"
	"contract-iq-be/pkg/events"
	"contract-iq-be/pkg/extract"
	"contract-iq-be/pkg/llm"
	"contract-iq-be/pkg/llm/failover"
	"contract-iq-be/pkg/llm/openrouter"
	"contract-iq-be/pkg/retrieval"

	"contract-iq-be/internal/constant"

	pktNats "contract-iq-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HealthController   controller.IHealthController
	DocumentController controller.IDocumentController
	AnalysisController controller.IAnalysisController
	ChatController     controller.IChatController

	// Middleware
	RateLimiter *serverutils.RateLimiter

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	embeddingMode := "hash"
	if cfg.Keys.HuggingFace != "" {
		embeddingProvider = huggingface.NewHuggingFaceProvider(cfg.Keys.HuggingFace, cfg.Ai.EmbeddingModel)
		embeddingMode = "provider"
		log.Printf("[INFO] Using Embedding Provider: HUGGINGFACE (%s)", cfg.Ai.EmbeddingModel)
	} else {
		log.Printf("[WARN] HUGGINGFACE_API_KEY not set, falling back to hash embeddings")
	}
	embedder := embedding.NewService(embeddingProvider, cfg.Ai.EmbeddingDim)

	var primary, fallback llm.LLMProvider
	completionMode := "canned"
	if cfg.Keys.OpenRouterPrimary != "" {
		primary = openrouter.NewOpenRouterProvider(cfg.Keys.OpenRouterPrimary, cfg.Ai.ChatModel)
		completionMode = "configured"
	}
	if cfg.Keys.OpenRouterFallback != "" {
		fallback = openrouter.NewOpenRouterProvider(cfg.Keys.OpenRouterFallback, cfg.Ai.ChatModel)
		completionMode = "configured"
	}
	if completionMode == "canned" {
		log.Printf("[WARN] No OpenRouter credentials configured, completions will degrade to canned responses")
	}
	completion := failover.NewClient(primary, fallback, constant.CannedResponses(), constant.CannedGenericResponse)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}
	if natsSub != nil {
		// Audit trail: every domain event lands in the structured log.
		err := natsSub.Subscribe("events.>", "contract-iq-audit", func(ctx context.Context, event events.Event) error {
			sysLogger.Info("events", "domain event received", map[string]interface{}{
				"type":    event.EventType(),
				"payload": event.Payload(),
			})
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to event stream: %v", err)
		}
	}

	rateLimiter := serverutils.NewRateLimiter(cfg.App.RedisURL, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	extractor := extract.NewTikaExtractor(cfg.App.TikaURL)
	resultCache := cache.New(cfg.App.CacheTTL)
	retriever := retrieval.NewRetriever(implementation.NewDocumentChunkRepository(db))

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.EmbedDocumentTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedDocumentTopic,
		uowFactory,
		embedder,
	)

	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		embedder,
		extractor,
		natsPub,
		cfg,
		sysLogger,
	)

	analysisService := service.NewAnalysisService(
		uowFactory,
		embedder,
		retriever,
		completion,
		resultCache,
		natsPub,
		cfg,
		sysLogger,
	)

	chatService := service.NewChatService(completion, cfg, sysLogger)

	// 6. Controllers
	return &Container{
		HealthController:   controller.NewHealthController(db, resultCache, completionMode, embeddingMode),
		DocumentController: controller.NewDocumentController(documentService),
		AnalysisController: controller.NewAnalysisController(analysisService),
		ChatController:     controller.NewChatController(chatService),

		RateLimiter: rateLimiter,

		ConsumerService: consumerService,
	}
}
