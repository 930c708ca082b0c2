package adapter

import (
	"fmt"

	"github.com/vteach/qa-backend/internal/api"
	"github.com/vteach/qa-backend/internal/domain/qamodel"
)

func ToAnswerResponse(answer qamodel.Answer) api.AnswerResponse {
	return api.AnswerResponse{
		Question:        answer.Question,
		Answer:          answer.Answer,
		ConfidenceScore: answer.ConfidenceScore,
		Sources:         answer.Sources,
		AudioURL:        answer.AudioURL,
	}
}

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("/api/jobs/%s", id),
	}
}

func ToJobResponse(job qamodel.IndexJob) api.JobResponse {
	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	return api.JobResponse{
		Id:        job.Id,
		Status:    string(job.Status),
		Step:      string(job.CurrentStep),
		Lectures:  job.Lectures,
		Chunks:    job.Chunks,
		Error:     errorPtr,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
	}
}

func BadRequest(id string, errorMessage string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Id: id,
		Error: api.JobOutgoingError{
			Code:    code,
			Message: errorMessage,
			Retry:   false,
		},
	}
}
