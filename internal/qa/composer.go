package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/metrics"
	"github.com/vteach/qa-backend/internal/rag/llm"
)

// ErrGeneration marks model-call failures during answer composition.
var ErrGeneration = errors.New("answer generation failed")

// composeAnswer builds the grounded prompt from the retrieved chunks and
// asks the model for an answer. Callers must not invoke it with an empty
// context; the refusal path handles that case.
func composeAnswer(ctx context.Context, provider llm.Provider, question string, contextDocs []qamodel.ContextDoc) (string, error) {
	contents := make([]string, len(contextDocs))
	for i, doc := range contextDocs {
		contents[i] = doc.Content
	}
	contextText := strings.Join(contents, "\n")

	startTime := time.Now()
	answer, err := provider.Generate(ctx, llm.Request{
		System:      SystemPrompt,
		User:        fmt.Sprintf(UserPromptFormat, contextText, question),
		MaxTokens:   config.MaxAnswerTokens,
		Temperature: config.ModelTemperature,
		Timeout:     config.GenerationTimeout,
	})
	metrics.CaptureExecutionMetrics("llmGenerate", time.Since(startTime))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return answer, nil
}
