package httpclient

import (
	"net/http"

	"github.com/vteach/qa-backend/internal/config"
)

// NewPooled returns an http.Client with connection reuse tuned for the
// embedding/LLM/TTS providers, which all talk to the same few hosts.
func NewPooled() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        config.MaxIdleConns,
			MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
			IdleConnTimeout:     config.IdleConnTimeout,
		},
	}
}
