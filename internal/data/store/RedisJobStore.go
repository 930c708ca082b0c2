package store

import (
	"context"
	"encoding/json"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/data/redisStore"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

type RedisJobStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisJobStore returns nil when redis is unreachable; the caller falls
// back to the in-memory store.
func GetRedisJobStore(ctx context.Context, addr string) *RedisJobStore {
	redisClient := redisStore.GetRedisStore(ctx, addr, config.RedisJobStoreDB)
	if redisClient == nil {
		return nil
	}
	return &RedisJobStore{
		store:  redisClient,
		logger: logger_i.NewLogger("JobStore"),
	}
}

func (s *RedisJobStore) SaveJob(ctx context.Context, job qamodel.IndexJob) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", job.Id)
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, job.Id, data, config.RedisJobStoreTTL)
	if err == nil {
		log.Debug("Saved job to Redis")
	}
	return err
}

func (s *RedisJobStore) GetJob(ctx context.Context, jobId string) (qamodel.IndexJob, bool) {
	var job qamodel.IndexJob
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", jobId)

	val, err := s.store.Get(ctx, jobId)
	if s.store.IsNil(err) {
		return job, false
	} else if err != nil {
		log.Error("Error reading job from Redis", "error", err)
		return job, false
	}

	if err = json.Unmarshal([]byte(val), &job); err != nil {
		log.Error("Error unmarshalling job", "error", err)
		return job, false
	}
	return job, true
}

func (s *RedisJobStore) DeleteJob(ctx context.Context, jobId string) {
	if err := s.store.Del(ctx, jobId); err != nil {
		s.logger.Error("Error deleting job from Redis", "jobId", jobId, "error", err)
		return
	}
	s.logger.Debug("Job deleted from Redis", "jobId", jobId)
}

func TestJobStore(store *redisStore.Store) *RedisJobStore {
	return &RedisJobStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
