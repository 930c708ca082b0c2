package geminillm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/rag/llm"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

type client struct {
	genAi  *genai.Client
	model  string
	logger *logger_i.Logger
}

func New(ctx context.Context, apiKey string) (llm.Provider, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &client{
		genAi:  c,
		model:  config.GeminiChatModel,
		logger: logger_i.NewLogger("gemini_llm"),
	}, nil
}

func (c *client) Generate(ctx context.Context, req llm.Request) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	temperature := float32(req.Temperature)
	result, err := c.genAi.Models.GenerateContent(
		callCtx,
		c.model,
		genai.Text(req.User),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: req.System}},
			},
			Temperature:     &temperature,
			MaxOutputTokens: int32(req.MaxTokens),
		},
	)
	if err != nil {
		c.logger.Error("Generate content failed", "error", err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return result.Text(), nil
}
