package vectorstore

import (
	"context"

	"github.com/vteach/qa-backend/internal/domain/qamodel"
)

// Store holds chunk vectors with their lecture metadata and answers
// nearest-neighbor queries. An empty store answers queries with an empty
// slice, never an error.
type Store interface {
	Upsert(ctx context.Context, records []qamodel.ChunkRecord, vectors [][]float32) error
	Query(ctx context.Context, vector []float32, k int) ([]qamodel.ContextDoc, error)
	Count(ctx context.Context) (int, error)

	// DeleteLecture removes all vectors for one lecture so a reindex
	// replaces rather than accumulates.
	DeleteLecture(ctx context.Context, lectureId int) error
}
