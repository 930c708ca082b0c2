package job

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/metrics"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

var logger = logger_i.NewLogger("JobService")

type Service struct {
	JobChannel        chan qamodel.IndexJob
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          qamodel.JobStore
}

type ServiceConfig struct {
	JobChannel        chan qamodel.IndexJob
	DispatcherChannel chan bool
	JobStore          qamodel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
	}
}

// Enqueue registers a new index job and hands it to the worker pool.
// Returns false when the queue is full; the caller should tell the client
// to retry later.
func (s *Service) Enqueue(ctx context.Context, scope qamodel.JobScope, lectureId int) (qamodel.IndexJob, bool) {
	traceId, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	newJob := qamodel.IndexJob{
		Id:          uuid.New().String(),
		TraceId:     traceId,
		Scope:       scope,
		LectureId:   lectureId,
		CreatedTime: time.Now(),
		Status:      qamodel.JobStatusQueued,
		CurrentStep: qamodel.IndexInit,
	}

	select {
	case s.JobChannel <- newJob:
	default:
		return qamodel.IndexJob{}, false
	}

	// the job still runs if this fails; status polling just starts blind
	if err := s.JobStore.SaveJob(ctx, newJob); err != nil {
		logger.Error("Failed to save queued job", "jobId", newJob.Id, "error", err)
	}

	metrics.IncrementJobsInQueue()

	// every few requests, nudge the dispatcher to consider another worker
	count := atomic.AddInt64(&s.RequestCount, 1)
	if count%config.RequestsPerNewWorkerCount == 0 {
		select {
		case s.DispatcherChannel <- true:
		default:
		}
	}
	return newJob, true
}
