package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// MissingKeyError is the only error allowed to stop the process: a required
// credential is absent and the pipeline must not start degraded.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("required configuration %s is not set", e.Key)
}

// Config is built once in main and handed to every constructor. No component
// reads the process environment on its own.
type Config struct {
	IsProd     bool
	ListenAddr string

	LLMProvider       string //"openai" or "gemini"
	EmbeddingProvider string //"openai" or "gemini"
	OpenAIAPIKey      string
	GeminiAPIKey      string

	VectorBackend   string //"chromem" or "qdrant"
	VectorStorePath string
	CollectionName  string
	QdrantHost      string
	QdrantPort      int

	RedisAddr   string
	DatabaseURL string

	AudioDir    string
	LecturesDir string
}

// Load reads the environment (optionally seeded from .env) into a Config
// and validates that the selected providers have their credentials.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		IsProd:            os.Getenv("APP_ENV") == "production",
		ListenAddr:        envOr("LISTEN_ADDR", ServerListenAddr),
		LLMProvider:       envOr("LLM_PROVIDER", "openai"),
		EmbeddingProvider: envOr("EMBEDDING_PROVIDER", "openai"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		VectorBackend:     envOr("VECTOR_BACKEND", "chromem"),
		VectorStorePath:   envOr("VECTOR_STORE_PATH", "./data/vector_store"),
		CollectionName:    envOr("VECTOR_COLLECTION", DefaultCollectionName),
		QdrantHost:        os.Getenv("QDRANT_HOST"),
		QdrantPort:        envIntOr("QDRANT_PORT", 6334),
		RedisAddr:         envOr("REDIS_ADDR", "127.0.0.1:6379"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AudioDir:          envOr("AUDIO_DIR", "./data/audio/responses"),
		LecturesDir:       envOr("LECTURES_DIR", "./data/lectures"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	// Speech synthesis always goes through OpenAI, so the key is required
	// even when both providers are gemini.
	if c.OpenAIAPIKey == "" {
		return &MissingKeyError{Key: "OPENAI_API_KEY"}
	}
	if c.LLMProvider == "gemini" || c.EmbeddingProvider == "gemini" {
		if c.GeminiAPIKey == "" {
			return &MissingKeyError{Key: "GEMINI_API_KEY"}
		}
	}
	if c.VectorBackend == "qdrant" && c.QdrantHost == "" {
		return &MissingKeyError{Key: "QDRANT_HOST"}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
