package chromemstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/rag/vectorstore"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

// Store is an embedded, filesystem-persisted vector collection. All vectors
// are computed upstream, so the collection never calls out for embeddings.
type Store struct {
	collection *chromem.Collection
	logger     *logger_i.Logger
}

func New(path, collectionName string) (vectorstore.Store, error) {
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, fmt.Errorf("vector store path: %w", err)
	}

	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector store: %w", err)
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, rejectEmbedding)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", collectionName, err)
	}

	return &Store{
		collection: collection,
		logger:     logger_i.NewLogger("chromem_store"),
	}, nil
}

// rejectEmbedding guards against the library's default of reading an API key
// from the environment; every code path here supplies precomputed vectors.
func rejectEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("embeddings must be precomputed")
}

func (s *Store) Upsert(ctx context.Context, records []qamodel.ChunkRecord, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(records), len(vectors))
	}

	docs := make([]chromem.Document, len(records))
	for i, rec := range records {
		docs[i] = chromem.Document{
			ID:        fmt.Sprintf("%d-%d", rec.LectureId, rec.ChunkId),
			Content:   rec.Text,
			Embedding: vectors[i],
			Metadata: map[string]string{
				"lecture_id": strconv.Itoa(rec.LectureId),
				"chunk_id":   strconv.Itoa(rec.ChunkId),
				"source":     rec.Source,
			},
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("chromem upsert: %w", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]qamodel.ContextDoc, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	docs := make([]qamodel.ContextDoc, 0, len(results))
	for _, hit := range results {
		docs = append(docs, qamodel.ContextDoc{
			Content:  hit.Content,
			Metadata: hit.Metadata,
			Score:    hit.Similarity,
		})
	}
	return docs, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.collection.Count(), nil
}

func (s *Store) DeleteLecture(ctx context.Context, lectureId int) error {
	where := map[string]string{"lecture_id": strconv.Itoa(lectureId)}
	if err := s.collection.Delete(ctx, where, nil); err != nil {
		return fmt.Errorf("chromem delete lecture %d: %w", lectureId, err)
	}
	return nil
}
