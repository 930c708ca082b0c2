// Command indexer loads lecture transcripts from a directory into the
// lecture store and builds the vector index, without going through the API.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/httpclient"
	"github.com/vteach/qa-backend/internal/lecturestore"
	"github.com/vteach/qa-backend/internal/rag"
	"github.com/vteach/qa-backend/internal/rag/chunker"
	"github.com/vteach/qa-backend/internal/rag/embedding"
	"github.com/vteach/qa-backend/internal/rag/embedding/geminiembed"
	"github.com/vteach/qa-backend/internal/rag/embedding/openaiembed"
	"github.com/vteach/qa-backend/internal/rag/vectorstore"
	"github.com/vteach/qa-backend/internal/rag/vectorstore/chromemstore"
	"github.com/vteach/qa-backend/internal/rag/vectorstore/qdrantstore"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger_i.Init(false, config.LOG_LEVEL_PROD)
		logger_i.NewLogger("indexer").Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger_i.Init(cfg.IsProd, config.LOG_LEVEL_PROD)
	logger := logger_i.NewLogger("indexer")

	var lecturesDir string
	flag.StringVar(&lecturesDir, "dir", cfg.LecturesDir, "directory of lecture transcripts")
	flag.Parse()

	ctx := context.Background()

	lectureStore, err := lecturestore.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Lecture store failed to initialize", "error", err)
		os.Exit(1)
	}
	defer lectureStore.Close()

	if err := lectureStore.Initialize(ctx); err != nil {
		logger.Error("Lecture store schema init failed", "error", err)
		os.Exit(1)
	}

	var vectorStore vectorstore.Store
	if cfg.VectorBackend == "qdrant" {
		vectorStore, err = qdrantstore.New(ctx, cfg.QdrantHost, cfg.QdrantPort, cfg.CollectionName)
	} else {
		vectorStore, err = chromemstore.New(cfg.VectorStorePath, cfg.CollectionName)
	}
	if err != nil {
		logger.Error("Vector store failed to initialize", "backend", cfg.VectorBackend, "error", err)
		os.Exit(1)
	}

	var embedder embedding.Embedder
	if cfg.EmbeddingProvider == "gemini" {
		embedder, err = geminiembed.New(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Error("Embedding provider failed to initialize", "error", err)
			os.Exit(1)
		}
	} else {
		embedder = openaiembed.New(cfg.OpenAIAPIKey, httpclient.NewPooled())
	}

	ragService := rag.NewService(embedder, vectorStore, chunker.New(config.ChunkSize, config.ChunkOverlap))

	files, err := lecturestore.LoadDirectory(lecturesDir)
	if err != nil {
		logger.Error("Failed reading lecture directory", "dir", lecturesDir, "error", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Warn("No lecture files found", "dir", lecturesDir)
		return
	}

	indexed, failed := 0, 0
	for _, file := range files {
		id, err := lectureStore.UpsertLecture(ctx, file.Title, file.Content)
		if err != nil {
			logger.Error("Failed to store lecture", "title", file.Title, "error", err)
			failed++
			continue
		}

		lecture, found, err := lectureStore.GetLecture(ctx, id)
		if err != nil || !found {
			logger.Error("Failed to read back lecture", "id", id, "error", err)
			failed++
			continue
		}

		chunks, err := ragService.IndexLecture(ctx, lecture)
		if err != nil {
			logger.Error("Failed to index lecture", "id", id, "error", err)
			failed++
			continue
		}
		logger.Info("Indexed lecture", "id", id, "title", file.Title, "chunks", chunks)
		indexed++
	}

	logger.Info("Indexing run finished", "indexed", indexed, "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}
