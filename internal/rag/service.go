package rag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/metrics"
	"github.com/vteach/qa-backend/internal/rag/chunker"
	"github.com/vteach/qa-backend/internal/rag/embedding"
	"github.com/vteach/qa-backend/internal/rag/vectorstore"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

// ErrContextLookup marks retrieval failures so callers can map them to a
// safe fallback answer instead of surfacing internals.
var ErrContextLookup = errors.New("context lookup failed")

type Service struct {
	embedder embedding.Embedder
	store    vectorstore.Store
	splitter *chunker.Splitter
	logger   *logger_i.Logger
}

func NewService(embedder embedding.Embedder, store vectorstore.Store, splitter *chunker.Splitter) *Service {
	return &Service{
		embedder: embedder,
		store:    store,
		splitter: splitter,
		logger:   logger_i.NewLogger("ragService"),
	}
}

// IndexLecture splits a lecture into chunks, embeds them in batches and
// writes them to the vector store. Previously indexed vectors for the same
// lecture are removed first so a re-run replaces rather than duplicates.
// Returns the number of chunks written.
func (s *Service) IndexLecture(ctx context.Context, lecture qamodel.Lecture) (int, error) {
	chunks := s.splitter.Split(lecture.Content)
	if len(chunks) == 0 {
		s.logger.Warn("skipping empty lecture", "lectureId", lecture.Id)
		return 0, nil
	}

	if err := s.store.DeleteLecture(ctx, lecture.Id); err != nil {
		return 0, fmt.Errorf("unable to clear stale vectors for lecture %d: %w", lecture.Id, err)
	}

	source := fmt.Sprintf("lecture_%d", lecture.Id)
	records := make([]qamodel.ChunkRecord, len(chunks))
	for i, text := range chunks {
		records[i] = qamodel.ChunkRecord{
			LectureId: lecture.Id,
			ChunkId:   i,
			Source:    source,
			Text:      text,
		}
	}

	written := 0
	for start := 0; start < len(records); start += config.EmbeddingBatchSize {
		end := min(start+config.EmbeddingBatchSize, len(records))
		batch := records[start:end]

		texts := make([]string, len(batch))
		for i, rec := range batch {
			texts[i] = rec.Text
		}

		startTime := time.Now()
		vectors, err := s.embedder.BatchEmbedding(ctx, texts)
		metrics.CaptureExecutionMetrics("embedding", time.Since(startTime))
		if err != nil {
			return written, fmt.Errorf("unable to embed lecture %d batch at %d: %w", lecture.Id, start, err)
		}
		if len(vectors) != len(batch) {
			return written, fmt.Errorf("embedding count mismatch for lecture %d: got %d want %d", lecture.Id, len(vectors), len(batch))
		}

		startTime = time.Now()
		err = s.store.Upsert(ctx, batch, vectors)
		metrics.CaptureExecutionMetrics("vectorWrite", time.Since(startTime))
		if err != nil {
			return written, fmt.Errorf("unable to store vectors for lecture %d: %w", lecture.Id, err)
		}
		written += len(batch)
	}

	s.logger.Info("indexed lecture", "lectureId", lecture.Id, "chunks", written)
	return written, nil
}

// FindContext embeds the question and returns the k nearest chunks. An empty
// store yields an empty result, not an error; the caller decides how to
// answer without context.
func (s *Service) FindContext(ctx context.Context, question string, k int) ([]qamodel.ContextDoc, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextLookup, err)
	}
	if count == 0 {
		s.logger.Warn("vector store is empty, retrieval skipped")
		return nil, nil
	}

	startTime := time.Now()
	vector, err := s.embedder.GetEmbedding(ctx, question)
	metrics.CaptureExecutionMetrics("embedding", time.Since(startTime))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextLookup, err)
	}

	startTime = time.Now()
	docs, err := s.store.Query(ctx, vector, k)
	metrics.CaptureExecutionMetrics("vectorQuery", time.Since(startTime))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextLookup, err)
	}
	return docs, nil
}
