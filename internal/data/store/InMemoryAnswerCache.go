package store

import (
	"context"
	"sync"

	"github.com/vteach/qa-backend/internal/domain/qamodel"
)

type InMemoryAnswerCache struct {
	cacheMutex *sync.RWMutex
	answers    map[string]qamodel.Answer
}

func InitInMemoryAnswerCache() *InMemoryAnswerCache {
	return &InMemoryAnswerCache{
		cacheMutex: new(sync.RWMutex),
		answers:    make(map[string]qamodel.Answer),
	}
}

func (c *InMemoryAnswerCache) Get(ctx context.Context, question string) (qamodel.Answer, bool) {
	c.cacheMutex.RLock()
	defer c.cacheMutex.RUnlock()
	answer, found := c.answers[question]
	return answer, found
}

func (c *InMemoryAnswerCache) Save(ctx context.Context, question string, answer qamodel.Answer) error {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.answers[question] = answer
	return nil
}
