package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/vteach/qa-backend/internal/adapter"
	"github.com/vteach/qa-backend/internal/adapter/utils"
	"github.com/vteach/qa-backend/internal/api"
	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/internal/job"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}
		logJH = logger_i.NewLogger("JobHandler")
		logJH.Info("Starting job handler")
	})
}

// PostReindexHandler godoc
// @Summary      Rebuild the lecture index
// @Description  Queues a background job that re-chunks and re-embeds lectures. Without a lecture_id the whole knowledge base is rebuilt.
// @Tags         Indexing
// @Accept       json
// @Produce      json
// @Param        request  body      api.ReindexRequest   false  "Optional single lecture id"
// @Success      202      {object}  api.InitJobResponse  "Job successfully queued"
// @Failure      503      {object}  api.ErrorResponse    "Job queue is full"
// @Router       /api/lectures/reindex [post]
func PostReindexHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logJH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	var requestData api.ReindexRequest
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logJH.Error("Couldn't close the reindex reader", "error", err)
		}
	}(r.Body)

	// an empty body means a full rebuild
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil && err != io.EOF {
		logJH.Warn("Bad reindex request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return
	}

	scope := qamodel.ScopeAllLectures
	lectureId := 0
	if requestData.LectureId != nil {
		if *requestData.LectureId <= 0 {
			WriteErrorResponse(w, http.StatusBadRequest, "", "lecture_id must be positive")
			return
		}
		scope = qamodel.ScopeOneLecture
		lectureId = *requestData.LectureId
	}

	newJob, ok := handlerInstance.service.Enqueue(r.Context(), scope, lectureId)
	if !ok {
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Job queue is full, try again later")
		return
	}

	logJH.Info("Queued index job", "jobId", newJob.Id, "scope", scope)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.Id))
}

// GetJobStatusHandler godoc
// @Summary      Get index job status
// @Description  Retrieves the current status of an index job using its ID.
// @Tags         Indexing
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse    "The current status of the job"
// @Failure      404  {object}  api.ErrorResponse  "Job not found"
// @Router       /api/jobs/{id} [get]
func GetJobStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logJH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	result, isFound := getJobStatus(idString, r.Context().Value(config.TRACE_ID_KEY).(string))
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToJobResponse(result))
}

func getJobStatus(id string, traceId string) (result qamodel.IndexJob, isFound bool) {
	if id == "" {
		logJH.Warn("Empty Job ID")
		return qamodel.IndexJob{}, false
	}
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}
