package qa_test

import (
	"context"

	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/rag/llm"
)

// MockFinder implements qa.ContextFinder
type MockFinder struct {
	OnFindContext func(ctx context.Context, question string, k int) ([]qamodel.ContextDoc, error)
}

func (m *MockFinder) FindContext(ctx context.Context, question string, k int) ([]qamodel.ContextDoc, error) {
	if m.OnFindContext != nil {
		return m.OnFindContext(ctx, question, k)
	}
	return []qamodel.ContextDoc{
		{Content: "default context", Metadata: map[string]string{"source": "lecture_1"}},
	}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate    func(ctx context.Context, req llm.Request) (string, error)
	LastRequest   llm.Request
	GenerateCalls int
}

func (m *MockLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.GenerateCalls++
	m.LastRequest = req
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, req)
	}
	return "mocked llm response", nil
}

// MockSynthesizer implements tts.Synthesizer
type MockSynthesizer struct {
	OnConvert    func(ctx context.Context, text string) (string, error)
	LastText     string
	ConvertCalls int
}

func (m *MockSynthesizer) Convert(ctx context.Context, text string) (string, error) {
	m.ConvertCalls++
	m.LastText = text
	if m.OnConvert != nil {
		return m.OnConvert(ctx, text)
	}
	return "answer.mp3", nil
}

// MockCache implements qamodel.AnswerCache
type MockCache struct {
	OnGet     func(ctx context.Context, question string) (qamodel.Answer, bool)
	Saved     map[string]qamodel.Answer
	SaveCalls int
}

func (m *MockCache) Get(ctx context.Context, question string) (qamodel.Answer, bool) {
	if m.OnGet != nil {
		return m.OnGet(ctx, question)
	}
	return qamodel.Answer{}, false
}

func (m *MockCache) Save(ctx context.Context, question string, answer qamodel.Answer) error {
	m.SaveCalls++
	if m.Saved == nil {
		m.Saved = make(map[string]qamodel.Answer)
	}
	m.Saved[question] = answer
	return nil
}
