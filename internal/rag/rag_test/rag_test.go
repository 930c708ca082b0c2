package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/rag"
	"github.com/vteach/qa-backend/internal/rag/chunker"
)

func TestIndexLecture_ReplacesExistingVectors(t *testing.T) {
	mEmbed := &MockEmbedder{}
	mStore := &MockStore{}
	s := rag.NewService(mEmbed, mStore, chunker.New(50, 10))

	lecture := qamodel.Lecture{
		Id:      5,
		Title:   "Sorting",
		Content: strings.Repeat("bubble sort compares adjacent pairs. ", 20),
	}

	written, err := s.IndexLecture(context.Background(), lecture)
	if err != nil {
		t.Fatalf("IndexLecture returned error: %v", err)
	}
	if written == 0 {
		t.Fatal("expected chunks to be written")
	}

	if len(mStore.Deleted) != 1 || mStore.Deleted[0] != 5 {
		t.Errorf("stale vectors not cleared, deleted: %v", mStore.Deleted)
	}
	if len(mStore.Upserted) != written {
		t.Errorf("upserted %d records, reported %d", len(mStore.Upserted), written)
	}
	for i, rec := range mStore.Upserted {
		if rec.LectureId != 5 {
			t.Errorf("record %d has LectureId %d, want 5", i, rec.LectureId)
		}
		if rec.ChunkId != i {
			t.Errorf("record %d has ChunkId %d, want sequential ids", i, rec.ChunkId)
		}
		if rec.Source != "lecture_5" {
			t.Errorf("record %d has Source %s, want lecture_5", i, rec.Source)
		}
	}
}

func TestIndexLecture_EmptyContent(t *testing.T) {
	mStore := &MockStore{}
	s := rag.NewService(&MockEmbedder{}, mStore, chunker.New(50, 10))

	written, err := s.IndexLecture(context.Background(), qamodel.Lecture{Id: 1})
	if err != nil {
		t.Fatalf("IndexLecture returned error: %v", err)
	}
	if written != 0 {
		t.Errorf("written got %d, want 0", written)
	}
	if len(mStore.Deleted) != 0 || len(mStore.Upserted) != 0 {
		t.Error("empty lecture must not touch the vector store")
	}
}

func TestIndexLecture_BatchesEmbeddings(t *testing.T) {
	mEmbed := &MockEmbedder{}
	mStore := &MockStore{}
	// chunk size 50 / overlap 10 advances ~40 bytes per chunk, so 8KB of
	// text crosses the 100-chunk batch boundary
	s := rag.NewService(mEmbed, mStore, chunker.New(50, 10))

	lecture := qamodel.Lecture{
		Id:      2,
		Content: strings.Repeat("graphs have vertices and edges in them. ", 200),
	}

	written, err := s.IndexLecture(context.Background(), lecture)
	if err != nil {
		t.Fatalf("IndexLecture returned error: %v", err)
	}
	if written <= 100 {
		t.Fatalf("test needs more than one batch, got %d chunks", written)
	}
	if mEmbed.BatchCalls < 2 {
		t.Errorf("BatchEmbedding called %d times, want at least 2", mEmbed.BatchCalls)
	}
}

func TestIndexLecture_Failures(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(e *MockEmbedder, v *MockStore)
	}{
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockStore) {
				e.OnBatchEmbedding = func(ctx context.Context, texts []string) ([][]float32, error) {
					return nil, errors.New("api limit")
				}
			},
		},
		{
			name: "Failure_Vector_Write",
			setupMocks: func(e *MockEmbedder, v *MockStore) {
				v.OnUpsert = func(ctx context.Context, records []qamodel.ChunkRecord, vectors [][]float32) error {
					return errors.New("disk full")
				}
			},
		},
		{
			name: "Failure_Stale_Delete",
			setupMocks: func(e *MockEmbedder, v *MockStore) {
				v.OnDeleteLecture = func(ctx context.Context, lectureId int) error {
					return errors.New("db timeout")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mStore := &MockStore{}
			tt.setupMocks(mEmbed, mStore)
			s := rag.NewService(mEmbed, mStore, chunker.New(50, 10))

			_, err := s.IndexLecture(context.Background(), qamodel.Lecture{
				Id:      3,
				Content: strings.Repeat("hash tables give constant lookups. ", 10),
			})
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFindContext_EmptyStore(t *testing.T) {
	embedCalled := false
	mEmbed := &MockEmbedder{
		OnGetEmbedding: func(ctx context.Context, text string) ([]float32, error) {
			embedCalled = true
			return []float32{0.1}, nil
		},
	}
	mStore := &MockStore{
		OnCount: func(ctx context.Context) (int, error) { return 0, nil },
	}
	s := rag.NewService(mEmbed, mStore, chunker.New(50, 10))

	docs, err := s.FindContext(context.Background(), "what is a graph?", 2)
	if err != nil {
		t.Fatalf("FindContext returned error: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("docs got %v, want empty for an empty store", docs)
	}
	if embedCalled {
		t.Error("embedding must be skipped when the store is empty")
	}
}

func TestFindContext_Failures(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(e *MockEmbedder, v *MockStore)
	}{
		{
			name: "Failure_Count",
			setupMocks: func(e *MockEmbedder, v *MockStore) {
				v.OnCount = func(ctx context.Context) (int, error) {
					return 0, errors.New("store unreachable")
				}
			},
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockStore) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
		},
		{
			name: "Failure_Query",
			setupMocks: func(e *MockEmbedder, v *MockStore) {
				v.OnQuery = func(ctx context.Context, vector []float32, k int) ([]qamodel.ContextDoc, error) {
					return nil, errors.New("db timeout")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mStore := &MockStore{}
			tt.setupMocks(mEmbed, mStore)
			s := rag.NewService(mEmbed, mStore, chunker.New(50, 10))

			_, err := s.FindContext(context.Background(), "what is a graph?", 2)
			if !errors.Is(err, rag.ErrContextLookup) {
				t.Errorf("error got %v, want ErrContextLookup", err)
			}
		})
	}
}

func TestFindContext_PassesKThrough(t *testing.T) {
	mStore := &MockStore{
		OnQuery: func(ctx context.Context, vector []float32, k int) ([]qamodel.ContextDoc, error) {
			if k != 2 {
				t.Errorf("k got %d, want 2", k)
			}
			return []qamodel.ContextDoc{
				{Content: "adjacency lists", Metadata: map[string]string{"source": "lecture_4"}},
			}, nil
		},
	}
	s := rag.NewService(&MockEmbedder{}, mStore, chunker.New(50, 10))

	docs, err := s.FindContext(context.Background(), "what is a graph?", 2)
	if err != nil {
		t.Fatalf("FindContext returned error: %v", err)
	}
	if len(docs) != 1 || docs[0].Content != "adjacency lists" {
		t.Errorf("docs got %v", docs)
	}
}
