package worker

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
)

func executeJob(indexJob qamodel.IndexJob) {
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, indexJob.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IndexJobTimeout)
	defer cancel()

	log := logger.With("traceId", indexJob.TraceId, "jobId", indexJob.Id)
	log.Debug("Processing index job", "scope", indexJob.Scope)

	indexJob.Status = qamodel.JobStatusRunning
	indexJob.CurrentStep = qamodel.LectureFetch
	saveJobState(ctx, indexJob)

	lectures, err := fetchLectures(ctx, indexJob)
	if err != nil {
		failJob(ctx, indexJob, err)
		return
	}

	indexJob.CurrentStep = qamodel.ChunkingStep
	saveJobState(ctx, indexJob)

	for _, lecture := range lectures {
		indexJob.CurrentStep = qamodel.EmbeddingStep
		saveJobState(ctx, indexJob)

		chunks, err := _indexer.IndexLecture(ctx, lecture)
		if err != nil {
			failJob(ctx, indexJob, fmt.Errorf("lecture %d: %w", lecture.Id, err))
			return
		}

		indexJob.Lectures++
		indexJob.Chunks += chunks
		indexJob.CurrentStep = qamodel.VectorWrite
		saveJobState(ctx, indexJob)
	}

	indexJob.EndTime = time.Now()
	indexJob.Status = qamodel.JobStatusComplete
	indexJob.CurrentStep = qamodel.IndexComplete
	saveJobState(ctx, indexJob)
	log.Info("Index job complete", "lectures", indexJob.Lectures, "chunks", indexJob.Chunks)
}

func fetchLectures(ctx context.Context, indexJob qamodel.IndexJob) ([]qamodel.Lecture, error) {
	if indexJob.Scope == qamodel.ScopeOneLecture {
		lecture, found, err := _lectureStore.GetLecture(ctx, indexJob.LectureId)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("lecture %d not found", indexJob.LectureId)
		}
		return []qamodel.Lecture{lecture}, nil
	}
	return _lectureStore.ListLectures(ctx)
}

func failJob(ctx context.Context, indexJob qamodel.IndexJob, err error) {
	logger.Error("Index job failed", "jobId", indexJob.Id, "error", err)
	indexJob.EndTime = time.Now()
	indexJob.Status = qamodel.JobStatusError
	indexJob.CurrentStep = qamodel.IndexErrorStep
	indexJob.Error = qamodel.JobError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Retry:   true,
	}
	saveJobState(ctx, indexJob)
}

func saveJobState(ctx context.Context, indexJob qamodel.IndexJob) {
	if err := _jobService.JobStore.SaveJob(ctx, indexJob); err != nil {
		logger.Error("Failed to update job status", "jobId", indexJob.Id, "err", err)
	}
}
