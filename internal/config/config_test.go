package config

import (
	"errors"
	"testing"
)

func validConfig() Config {
	return Config{
		LLMProvider:       "openai",
		EmbeddingProvider: "openai",
		OpenAIAPIKey:      "sk-test",
		VectorBackend:     "chromem",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(c *Config)
		missingKey string
	}{
		{
			name:   "openai providers with key",
			mutate: func(c *Config) {},
		},
		{
			name: "gemini providers still need the openai key for speech",
			mutate: func(c *Config) {
				c.LLMProvider = "gemini"
				c.EmbeddingProvider = "gemini"
				c.GeminiAPIKey = "g-test"
				c.OpenAIAPIKey = ""
			},
			missingKey: "OPENAI_API_KEY",
		},
		{
			name: "gemini providers with both keys",
			mutate: func(c *Config) {
				c.LLMProvider = "gemini"
				c.EmbeddingProvider = "gemini"
				c.GeminiAPIKey = "g-test"
			},
		},
		{
			name: "gemini provider without gemini key",
			mutate: func(c *Config) {
				c.LLMProvider = "gemini"
			},
			missingKey: "GEMINI_API_KEY",
		},
		{
			name: "qdrant backend without host",
			mutate: func(c *Config) {
				c.VectorBackend = "qdrant"
			},
			missingKey: "QDRANT_HOST",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.validate()
			if tc.missingKey == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}

			var missing *MissingKeyError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingKeyError, got %v", err)
			}
			if missing.Key != tc.missingKey {
				t.Errorf("missing key got %s, want %s", missing.Key, tc.missingKey)
			}
		})
	}
}

func TestLoad_RefusesWithoutOpenAIKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("EMBEDDING_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()

	var missing *MissingKeyError
	if !errors.As(err, &missing) || missing.Key != "OPENAI_API_KEY" {
		t.Fatalf("expected MissingKeyError for OPENAI_API_KEY, got %v", err)
	}
}
