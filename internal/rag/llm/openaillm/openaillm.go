package openaillm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/rag/llm"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

type client struct {
	api    openai.Client
	model  string
	logger *logger_i.Logger
}

func New(apiKey string, httpClient *http.Client) llm.Provider {
	return &client{
		api:    openai.NewClient(option.WithAPIKey(apiKey), option.WithHTTPClient(httpClient)),
		model:  config.OpenAIChatModel,
		logger: logger_i.NewLogger("openai_llm"),
	}
}

func (c *client) Generate(ctx context.Context, req llm.Request) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(callCtx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		MaxTokens:   openai.Int(req.MaxTokens),
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		c.logger.Error("Chat completion failed", "error", err)
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion: empty choice list")
	}
	return resp.Choices[0].Message.Content, nil
}
