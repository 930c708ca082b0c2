package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vteach/qa-backend/internal/adapter"
	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

var logRH *logger_i.Logger

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, errorMessage string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, errorMessage, httpCode))
}

func validateContext(ctx context.Context) bool {
	logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY))
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}
