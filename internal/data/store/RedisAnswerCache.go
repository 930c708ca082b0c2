package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/data/redisStore"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

// RedisAnswerCache remembers full answers keyed by the normalized question,
// so repeated questions skip retrieval and generation entirely.
type RedisAnswerCache struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisAnswerCache(ctx context.Context, addr string) *RedisAnswerCache {
	redisClient := redisStore.GetRedisStore(ctx, addr, config.RedisAnswerCacheDB)
	if redisClient == nil {
		return nil
	}
	return &RedisAnswerCache{
		store:  redisClient,
		logger: logger_i.NewLogger("AnswerCache"),
	}
}

func answerKey(question string) string {
	sum := sha256.Sum256([]byte(question))
	return "answer:" + hex.EncodeToString(sum[:])
}

func (c *RedisAnswerCache) Get(ctx context.Context, question string) (qamodel.Answer, bool) {
	var answer qamodel.Answer
	val, err := c.store.Get(ctx, answerKey(question))
	if c.store.IsNil(err) {
		return answer, false
	} else if err != nil {
		c.logger.Error("Error reading answer from Redis", "error", err)
		return answer, false
	}

	if err = json.Unmarshal([]byte(val), &answer); err != nil {
		c.logger.Error("Error unmarshalling cached answer", "error", err)
		return answer, false
	}
	return answer, true
}

func (c *RedisAnswerCache) Save(ctx context.Context, question string, answer qamodel.Answer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, answerKey(question), data, config.RedisAnswerCacheTTL)
}

func TestAnswerCache(store *redisStore.Store) *RedisAnswerCache {
	return &RedisAnswerCache{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
