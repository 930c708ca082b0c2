// @title           Virtual Teacher QA API
// @version         1.0
// @description     Retrieval-augmented question answering over lecture transcripts, with spoken answers.

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/data/store"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/handlers"
	"github.com/vteach/qa-backend/internal/httpclient"
	"github.com/vteach/qa-backend/internal/job"
	"github.com/vteach/qa-backend/internal/lecturestore"
	"github.com/vteach/qa-backend/internal/qa"
	"github.com/vteach/qa-backend/internal/rag"
	"github.com/vteach/qa-backend/internal/rag/chunker"
	"github.com/vteach/qa-backend/internal/rag/embedding"
	"github.com/vteach/qa-backend/internal/rag/embedding/geminiembed"
	"github.com/vteach/qa-backend/internal/rag/embedding/openaiembed"
	"github.com/vteach/qa-backend/internal/rag/llm"
	"github.com/vteach/qa-backend/internal/rag/llm/geminillm"
	"github.com/vteach/qa-backend/internal/rag/llm/openaillm"
	"github.com/vteach/qa-backend/internal/rag/vectorstore"
	"github.com/vteach/qa-backend/internal/rag/vectorstore/chromemstore"
	"github.com/vteach/qa-backend/internal/rag/vectorstore/qdrantstore"
	"github.com/vteach/qa-backend/internal/server"
	"github.com/vteach/qa-backend/internal/tts/openaitts"
	"github.com/vteach/qa-backend/internal/worker"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

var (
	listenAddr        string
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger_i.Init(false, config.LOG_LEVEL_PROD)
		logger_i.NewLogger("main").Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger_i.Init(cfg.IsProd, config.LOG_LEVEL_PROD)
	var logger = logger_i.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", cfg.ListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan qamodel.IndexJob, config.JobBufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStoreOrFallback(serviceContext, cfg, logger),
	}
	logger.Info("Starting job service")
	jobService := job.InitJobService(serviceConfig)

	vectorStore, err := newVectorStore(serviceContext, cfg)
	if err != nil {
		logger.Error("Vector store failed to initialize", "backend", cfg.VectorBackend, "error", err)
		return
	}

	httpClient := httpclient.NewPooled()

	embedder, err := newEmbedder(serviceContext, cfg, httpClient)
	if err != nil {
		logger.Error("Embedding provider failed to initialize", "provider", cfg.EmbeddingProvider, "error", err)
		return
	}

	llmProvider, err := newLLMProvider(serviceContext, cfg, httpClient)
	if err != nil {
		logger.Error("LLM provider failed to initialize", "provider", cfg.LLMProvider, "error", err)
		return
	}

	synthesizer, err := openaitts.New(cfg.OpenAIAPIKey, httpClient, cfg.AudioDir)
	if err != nil {
		logger.Error("Speech synthesizer failed to initialize", "error", err)
		return
	}

	lectureStore, err := lecturestoreOrExit(serviceContext, cfg, logger)
	if err != nil {
		return
	}

	splitter := chunker.New(config.ChunkSize, config.ChunkOverlap)
	ragService := rag.NewService(embedder, vectorStore, splitter)

	pipeline := qa.NewPipeline(ragService, llmProvider, synthesizer, answerCacheOrFallback(serviceContext, cfg, logger))

	handlers.InitQAHandler(pipeline)
	handlers.InitAudioHandler(cfg.AudioDir)
	handlers.InitJobHandler(jobService)

	//init worker pool
	worker.InitServices(jobService, ragService, lectureStore)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func newVectorStore(ctx context.Context, cfg *config.Config) (vectorstore.Store, error) {
	if cfg.VectorBackend == "qdrant" {
		return qdrantstore.New(ctx, cfg.QdrantHost, cfg.QdrantPort, cfg.CollectionName)
	}
	return chromemstore.New(cfg.VectorStorePath, cfg.CollectionName)
}

func newEmbedder(ctx context.Context, cfg *config.Config, httpClient *http.Client) (embedding.Embedder, error) {
	if cfg.EmbeddingProvider == "gemini" {
		return geminiembed.New(ctx, cfg.GeminiAPIKey)
	}
	return openaiembed.New(cfg.OpenAIAPIKey, httpClient), nil
}

func newLLMProvider(ctx context.Context, cfg *config.Config, httpClient *http.Client) (llm.Provider, error) {
	if cfg.LLMProvider == "gemini" {
		return geminillm.New(ctx, cfg.GeminiAPIKey)
	}
	return openaillm.New(cfg.OpenAIAPIKey, httpClient), nil
}

func jobStoreOrFallback(ctx context.Context, cfg *config.Config, logger *logger_i.Logger) qamodel.JobStore {
	if jobStore := store.GetRedisJobStore(ctx, cfg.RedisAddr); jobStore != nil {
		return jobStore
	}
	logger.Error("Redis job store is offline, using in-memory store")
	return store.InitInMemoryJobStore()
}

func answerCacheOrFallback(ctx context.Context, cfg *config.Config, logger *logger_i.Logger) qamodel.AnswerCache {
	if cache := store.GetRedisAnswerCache(ctx, cfg.RedisAddr); cache != nil {
		return cache
	}
	logger.Error("Redis answer cache is offline, using in-memory cache")
	return store.InitInMemoryAnswerCache()
}

func lecturestoreOrExit(ctx context.Context, cfg *config.Config, logger *logger_i.Logger) (qamodel.LectureStore, error) {
	lectureStore, err := lecturestore.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Lecture store failed to initialize", "error", err)
		return nil, err
	}
	if err := lectureStore.Initialize(ctx); err != nil {
		logger.Error("Lecture store schema init failed", "error", err)
		return nil, err
	}
	return lectureStore, nil
}
