package rag_test

import (
	"context"

	"github.com/vteach/qa-backend/internal/domain/qamodel"
)

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, texts []string) ([][]float32, error)
	BatchCalls       int
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	m.BatchCalls++
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, texts)
	}
	// Return dummy vectors matching input size
	return make([][]float32, len(texts)), nil
}

// MockStore implements vectorstore.Store
type MockStore struct {
	OnUpsert        func(ctx context.Context, records []qamodel.ChunkRecord, vectors [][]float32) error
	OnQuery         func(ctx context.Context, vector []float32, k int) ([]qamodel.ContextDoc, error)
	OnCount         func(ctx context.Context) (int, error)
	OnDeleteLecture func(ctx context.Context, lectureId int) error

	Upserted []qamodel.ChunkRecord
	Deleted  []int
}

func (m *MockStore) Upsert(ctx context.Context, records []qamodel.ChunkRecord, vectors [][]float32) error {
	if m.OnUpsert != nil {
		return m.OnUpsert(ctx, records, vectors)
	}
	m.Upserted = append(m.Upserted, records...)
	return nil
}

func (m *MockStore) Query(ctx context.Context, vector []float32, k int) ([]qamodel.ContextDoc, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, vector, k)
	}
	return []qamodel.ContextDoc{{Content: "default context"}}, nil
}

func (m *MockStore) Count(ctx context.Context) (int, error) {
	if m.OnCount != nil {
		return m.OnCount(ctx)
	}
	return 1, nil
}

func (m *MockStore) DeleteLecture(ctx context.Context, lectureId int) error {
	m.Deleted = append(m.Deleted, lectureId)
	if m.OnDeleteLecture != nil {
		return m.OnDeleteLecture(ctx, lectureId)
	}
	return nil
}
