package qdrantstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/rag/vectorstore"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

// Store keeps the collection on a qdrant server instead of the embedded
// filesystem store. Selected with VECTOR_BACKEND=qdrant.
type Store struct {
	client     *qdrant.Client
	collection string
	logger     *logger_i.Logger
}

func New(ctx context.Context, host string, port int, collectionName string) (vectorstore.Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: config.QdrantPoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant client: %w", err)
	}

	s := &Store{
		client:     client,
		collection: collectionName,
		logger:     logger_i.NewLogger("qdrant_store"),
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("qdrant collection check: %w", err)
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(config.EmbeddingDimensions),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("qdrant create collection: %w", err)
	}
	return nil
}

// pointId derives a stable id from the chunk coordinates so re-upserting the
// same chunk overwrites rather than duplicates.
func pointId(rec qamodel.ChunkRecord) uint64 {
	return uint64(rec.LectureId)<<20 | uint64(rec.ChunkId)
}

func (s *Store) Upsert(ctx context.Context, records []qamodel.ChunkRecord, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(records), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(records))
	for i, rec := range records {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(pointId(rec)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":    rec.Text,
				"lecture_id": rec.LectureId,
				"chunk_id":   rec.ChunkId,
				"source":     rec.Source,
			}),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert: %w", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]qamodel.ContextDoc, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	results, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query: %w", err)
	}

	docs := make([]qamodel.ContextDoc, 0, len(results))
	for _, hit := range results {
		docs = append(docs, qamodel.ContextDoc{
			Content: hit.Payload["content"].GetStringValue(),
			Metadata: map[string]string{
				"lecture_id": strconv.FormatInt(hit.Payload["lecture_id"].GetIntegerValue(), 10),
				"chunk_id":   strconv.FormatInt(hit.Payload["chunk_id"].GetIntegerValue(), 10),
				"source":     hit.Payload["source"].GetStringValue(),
			},
			Score: hit.Score,
		})
	}
	return docs, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("qdrant count: %w", err)
	}
	return int(count), nil
}

func (s *Store) DeleteLecture(ctx context.Context, lectureId int) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collection,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchInt("lecture_id", int64(lectureId)),
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete lecture %d: %w", lectureId, err)
	}
	return nil
}
