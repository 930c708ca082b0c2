package openaiembed

import (
	"fmt"
	"net/http"

	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/rag/embedding"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

type client struct {
	api    openai.Client
	model  string
	logger *logger_i.Logger
}

// New returns an OpenAI-backed embedder. The API key comes from the injected
// config, never from ambient environment.
func New(apiKey string, httpClient *http.Client) embedding.Embedder {
	return &client{
		api:    openai.NewClient(option.WithAPIKey(apiKey), option.WithHTTPClient(httpClient)),
		model:  config.OpenAIEmbeddingModel,
		logger: logger_i.NewLogger("openai_embedding"),
	}
}

func (c *client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return c.embed(ctx, texts)
}

func (c *client) embed(ctx context.Context, texts []string) ([][]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.EmbeddingTimeout)
	defer cancel()

	resp, err := c.api.Embeddings.New(callCtx, openai.EmbeddingNewParams{
		Model: c.model,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})
	if err != nil {
		c.logger.Error("Embedding call failed", "error", err)
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
