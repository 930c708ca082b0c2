package api

import "time"

// requests---------------------

type QARequest struct {
	Question string `json:"question" validate:"required" example:"What is a binary search tree?"`
}

type ReindexRequest struct {
	LectureId *int `json:"lecture_id,omitempty" example:"3"`
}

// responses--------------------

type AnswerResponse struct {
	Question        string   `json:"question"`
	Answer          string   `json:"answer"`
	ConfidenceScore float64  `json:"confidence_score"`
	Sources         []string `json:"sources"`
	AudioURL        *string  `json:"audio_url"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Status    string            `json:"status"`
	Step      string            `json:"current_step"`
	Lectures  int               `json:"lectures_indexed"`
	Chunks    int               `json:"chunks_indexed"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type ErrorResponse struct {
	Id    string           `json:"id,omitempty"`
	Error JobOutgoingError `json:"error"`
}
