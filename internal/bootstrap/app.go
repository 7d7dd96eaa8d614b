package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"kairosai/internal/ai"
	"kairosai/internal/app"
	"kairosai/internal/cache"
	"kairosai/internal/config"
	"kairosai/internal/index"
	"kairosai/internal/model"
	mysqlClient "kairosai/internal/platform/mysql"
	rabbitmqClient "kairosai/internal/platform/rabbitmq"
	redisClient "kairosai/internal/platform/redis"
	"kairosai/internal/prompt"
	"kairosai/internal/repository"
	"kairosai/internal/worker"
)

// App wires the platform connections and services together. Services are
// built here because the ingest worker and the HTTP router share them.
type App struct {
	Config *config.Config
	MySQL  *gorm.DB
	Redis  *redis.Client
	MQConn *amqp.Connection

	Engine     *ai.Engine
	ChunkStore *index.ChunkStore

	Projects   *app.ProjectService
	Ingest     *app.IngestService
	Chat       *app.ChatService
	Generators *app.GeneratorService
	Factory    *app.FactoryService
	Export     *app.ExportService

	IngestWorker *worker.IngestWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.Project{},
		&model.Document{},
		&model.DocumentChunk{},
		&model.ChatMessage{},
		&model.GeneratedDocument{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	llmClient := ai.NewOpenAICompatibleClient()
	engine := ai.NewEngine(
		llmClient,
		cfg.AI.Preferred,
		ai.ChatConfig{BaseURL: cfg.AI.Claude.BaseURL, APIKey: cfg.AI.Claude.APIKey, Model: cfg.AI.Claude.Model},
		ai.ChatConfig{BaseURL: cfg.AI.Gemini.BaseURL, APIKey: cfg.AI.Gemini.APIKey, Model: cfg.AI.Gemini.Model},
	)

	var embedder index.Embedder
	if cfg.AI.EmbeddingAPIKey != "" && cfg.AI.EmbeddingBaseURL != "" {
		embedder = ai.NewRemoteEmbedder(llmClient, ai.EmbeddingConfig{
			BaseURL: cfg.AI.EmbeddingBaseURL,
			APIKey:  cfg.AI.EmbeddingAPIKey,
			Model:   cfg.AI.EmbeddingModel,
		})
	} else {
		embedder = ai.NewLocalEmbedder(0)
	}

	projectRepo := repository.NewProjectRepository(mysqlDB)
	docRepo := repository.NewDocumentRepository(mysqlDB)
	chunkRepo := repository.NewDocumentChunkRepository(mysqlDB)
	chatRepo := repository.NewChatMessageRepository(mysqlDB)
	genRepo := repository.NewGeneratedDocumentRepository(mysqlDB)

	chunkStore := index.NewChunkStore(embedder, chunkRepo)
	historyCache := cache.NewHistoryCache(
		redisCli,
		time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(cfg.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)
	ingestPublisher := rabbitmqClient.NewIngestPublisher(mqConn, cfg.RabbitMQ.IngestQueueName)

	ingestService := app.NewIngestService(projectRepo, docRepo, chunkStore, ingestPublisher, cfg.Storage)
	projectService := app.NewProjectService(projectRepo, docRepo, chatRepo, genRepo, chunkStore, historyCache)
	chatService := app.NewChatService(projectRepo, chatRepo, chunkStore, engine, historyCache)
	generatorService := app.NewGeneratorService(projectRepo, genRepo, chunkStore, engine)
	factoryService := app.NewFactoryService(chunkStore, engine, prompt.NewRegistry(), genRepo)
	exportService := app.NewExportService(genRepo)

	ingestWorker := worker.NewIngestWorker(mqConn, ingestService, cfg.RabbitMQ.IngestQueueName)
	if err := ingestWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start ingest worker failed: %w", err)
	}

	return &App{
		Config:       cfg,
		MySQL:        mysqlDB,
		Redis:        redisCli,
		MQConn:       mqConn,
		Engine:       engine,
		ChunkStore:   chunkStore,
		Projects:     projectService,
		Ingest:       ingestService,
		Chat:         chatService,
		Generators:   generatorService,
		Factory:      factoryService,
		Export:       exportService,
		IngestWorker: ingestWorker,
		StartedAt:    time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.IngestWorker != nil {
		a.IngestWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
