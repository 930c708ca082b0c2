package config

import (
	"log/slog"
	"time"
)

const (
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY                = "traceId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//chunking
	ChunkSize    = 1000
	ChunkOverlap = 200

	//retrieval - k is tuned low for latency, not a bug
	RetrievalTopK = 2

	//generation
	ModelTemperature    float64 = 0.3
	MaxAnswerTokens     int64   = 1000
	GenerationTimeout           = 20 * time.Second
	EmbeddingTimeout            = 30 * time.Second
	SynthesisTimeout            = 30 * time.Second
	EmbeddingBatchSize          = 100

	//model defaults
	OpenAIChatModel       = "gpt-4o-mini"
	OpenAIEmbeddingModel  = "text-embedding-3-small"
	OpenAISpeechModel     = "tts-1"
	GeminiChatModel       = "gemini-2.5-flash-lite-preview-09-2025"
	GeminiEmbeddingModel  = "gemini-embedding-001"
	EmbeddingDimensions   = 1536
	DefaultCollectionName = "lectures"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	ServerListenAddr = ":3000"

	//index jobs
	JobBufferLimit                  = 100
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 4
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	IndexJobTimeout                 = 10 * time.Minute

	//qdrant (alternate vector backend)
	QdrantUseTLS   = false
	QdrantPoolSize = 1

	//redis
	RedisJobStoreDB     = 0
	RedisAnswerCacheDB  = 1
	RedisJobStoreTTL    = 24 * time.Hour
	RedisAnswerCacheTTL = 12 * time.Hour

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//audio
	AudioRoutePrefix = "/api/audio/responses/"
)
