package qa

import (
	"context"
	"strings"
	"time"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/metrics"
	"github.com/vteach/qa-backend/internal/rag/llm"
	"github.com/vteach/qa-backend/internal/tts"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

// ContextFinder retrieves the chunks most relevant to a question.
type ContextFinder interface {
	FindContext(ctx context.Context, question string, k int) ([]qamodel.ContextDoc, error)
}

// Pipeline orchestrates one question end to end: predefined responses,
// cache lookup, retrieval, generation, speech synthesis and scoring.
type Pipeline struct {
	finder      ContextFinder
	provider    llm.Provider
	synthesizer tts.Synthesizer
	cache       qamodel.AnswerCache
	logger      *logger_i.Logger
}

func NewPipeline(finder ContextFinder, provider llm.Provider, synthesizer tts.Synthesizer, cache qamodel.AnswerCache) *Pipeline {
	return &Pipeline{
		finder:      finder,
		provider:    provider,
		synthesizer: synthesizer,
		cache:       cache,
		logger:      logger_i.NewLogger("qaPipeline"),
	}
}

// Answer never fails the request: every error path degrades to a safe
// fallback answer with confidence 0.0, and a synthesis failure only drops
// the audio.
func (p *Pipeline) Answer(ctx context.Context, question string) qamodel.Answer {
	startTime := time.Now()
	normalized := strings.ToLower(strings.TrimSpace(question))

	if canned, ok := matchPredefined(normalized); ok {
		p.logger.Info("matched predefined question")
		answer := qamodel.Answer{
			Question:        question,
			Answer:          canned,
			ConfidenceScore: 1.0,
			Sources:         []string{PredefinedSource},
			AudioURL:        p.synthesize(ctx, canned),
		}
		metrics.CaptureAnswerMetrics("predefined", time.Since(startTime))
		return answer
	}

	if cached, ok := p.cache.Get(ctx, normalized); ok {
		p.logger.Info("answer served from cache")
		cached.Question = question
		metrics.CaptureAnswerMetrics("cached", time.Since(startTime))
		return cached
	}

	contextDocs, err := p.finder.FindContext(ctx, question, config.RetrievalTopK)
	if err != nil {
		p.logger.Error("context retrieval failed", "error", err)
		metrics.CaptureAnswerMetrics("error", time.Since(startTime))
		return errorAnswer(question)
	}
	if len(contextDocs) == 0 {
		p.logger.Warn("no relevant context found in knowledge base")
		metrics.CaptureAnswerMetrics("refused", time.Since(startTime))
		return qamodel.Answer{
			Question:        question,
			Answer:          InsufficientKnowledgeAnswer,
			ConfidenceScore: 0.0,
			Sources:         []string{},
			AudioURL:        nil,
		}
	}

	answerText, err := composeAnswer(ctx, p.provider, question, contextDocs)
	if err != nil {
		p.logger.Error("generation failed", "error", err)
		metrics.CaptureAnswerMetrics("error", time.Since(startTime))
		return errorAnswer(question)
	}

	// the display answer keeps code blocks, the spoken one replaces them
	speechText, codeBlocks := NormalizeSpeech(answerText)
	if len(codeBlocks) > 0 {
		p.logger.Debug("stripped code blocks from speech text", "count", len(codeBlocks))
	}

	answer := qamodel.Answer{
		Question:        question,
		Answer:          answerText,
		ConfidenceScore: confidenceScore(contextDocs, answerText),
		Sources:         answerSources(contextDocs),
		AudioURL:        p.synthesize(ctx, speechText),
	}

	if err := p.cache.Save(ctx, normalized, answer); err != nil {
		p.logger.Warn("unable to cache answer", "error", err)
	}

	metrics.CaptureAnswerMetrics("answered", time.Since(startTime))
	return answer
}

// synthesize returns the audio URL for text, or nil when synthesis fails.
func (p *Pipeline) synthesize(ctx context.Context, text string) *string {
	fileName, err := p.synthesizer.Convert(ctx, text)
	if err != nil {
		p.logger.Error("speech synthesis failed, answer degrades to text", "error", err)
		return nil
	}
	audioURL := config.AudioRoutePrefix + fileName
	return &audioURL
}

func answerSources(contextDocs []qamodel.ContextDoc) []string {
	sources := make([]string, len(contextDocs))
	for i, doc := range contextDocs {
		source, ok := doc.Metadata["source"]
		if !ok || source == "" {
			source = "unknown"
		}
		sources[i] = source
	}
	return sources
}

func errorAnswer(question string) qamodel.Answer {
	return qamodel.Answer{
		Question:        question,
		Answer:          ProcessingErrorAnswer,
		ConfidenceScore: 0.0,
		Sources:         []string{},
		AudioURL:        nil,
	}
}
