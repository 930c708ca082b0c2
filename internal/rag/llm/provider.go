package llm

import (
	"context"
	"time"
)

// Request carries one generation call. Timeout bounds the external call;
// exceeding it surfaces as an error the caller may retry.
type Request struct {
	System      string
	User        string
	MaxTokens   int64
	Temperature float64
	Timeout     time.Duration
}

// Provider is the generative-text collaborator. Implementations may stream
// internally but always return the fully assembled text.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
