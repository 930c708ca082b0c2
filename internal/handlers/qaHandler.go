package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/vteach/qa-backend/internal/adapter"
	"github.com/vteach/qa-backend/internal/api"
	"github.com/vteach/qa-backend/internal/qa"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

var (
	qaPipeline *qa.Pipeline
	qaOnce     sync.Once
)

func InitQAHandler(pipeline *qa.Pipeline) {
	qaOnce.Do(func() {
		qaPipeline = pipeline
		logRH = logger_i.NewLogger("RequestHandler")
		logRH.Info("Starting QA handler")
	})
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// PostQAHandler godoc
// @Summary      Ask the virtual teacher a question
// @Description  Runs the question through the answer pipeline and returns the answer with sources, confidence and an optional audio URL.
// @Tags         QA
// @Accept       json
// @Produce      json
// @Param        request  body      api.QARequest       true  "The question to answer"
// @Success      200      {object}  api.AnswerResponse  "The generated answer"
// @Failure      400      {object}  api.ErrorResponse   "Missing or empty question"
// @Router       /api/qa [post]
func PostQAHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	var requestData api.QARequest
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logRH.Error("Couldn't close the QA handler reader", "error", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad QA Request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return
	}
	if strings.TrimSpace(requestData.Question) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "question is required")
		return
	}

	answer := qaPipeline.Answer(r.Context(), requestData.Question)
	writeJsonResponse(w, http.StatusOK, adapter.ToAnswerResponse(answer))
}
