package middleware

import (
	"net/http"
	"strconv"

	"github.com/vteach/qa-backend/internal/handlers"
	"github.com/vteach/qa-backend/internal/metrics"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var GetHandler = Wrap(handlers.GetHandler)

var PostQAHandler = Wrap(handlers.PostQAHandler)
var GetAudioHandler = Wrap(handlers.GetAudioHandler)
var PostReindexHandler = Wrap(handlers.PostReindexHandler)
var GetJobStatusHandler = Wrap(handlers.GetJobStatusHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	re = rateLimiter(re)
	return re
}
