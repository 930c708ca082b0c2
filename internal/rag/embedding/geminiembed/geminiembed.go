package geminiembed

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/rag/embedding"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

var dimension int32 = config.EmbeddingDimensions

type client struct {
	genAi  *genai.Client
	model  string
	logger *logger_i.Logger
}

func New(ctx context.Context, apiKey string) (embedding.Embedder, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini embedding client: %w", err)
	}
	return &client{
		genAi:  c,
		model:  config.GeminiEmbeddingModel,
		logger: logger_i.NewLogger("gemini_embedding"),
	}, nil
}

func (c *client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	res, err := c.doCall(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embeddings: %w", err)
	}
	return res.Embeddings[0].Values, nil
}

func (c *client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	res, err := c.doCall(ctx, getContent(texts))
	if err != nil && isRateLimited(err) {
		c.logger.Warn("Rate limit hit, retrying in 5 seconds", "error", err)
		time.Sleep(5 * time.Second)
		res, err = c.doCall(ctx, getContent(texts))
	}
	if err != nil {
		c.logger.Error("Batch embedding call failed", "error", err)
		return nil, fmt.Errorf("gemini embeddings: %w", err)
	}

	vectors := make([][]float32, 0, len(res.Embeddings))
	for _, r := range res.Embeddings {
		vectors = append(vectors, r.Values)
	}
	return vectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.EmbeddingTimeout)
	defer cancel()
	return c.genAi.Models.EmbedContent(callCtx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}

func getContent(texts []string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, &genai.Content{
			Parts: []*genai.Part{{Text: t}},
		})
	}
	return contents
}

func isRateLimited(err error) bool {
	if s, ok := status.FromError(err); ok {
		return s.Code() == codes.ResourceExhausted
	}
	return false
}
