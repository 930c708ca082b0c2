package qamodel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string
type JobScope string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IndexInit      InternalStatus = "Init"
	LectureFetch   InternalStatus = "LectureFetch"
	ChunkingStep   InternalStatus = "Chunking"
	EmbeddingStep  InternalStatus = "EmbeddingAPI"
	VectorWrite    InternalStatus = "VectorWrite"
	IndexComplete  InternalStatus = "Complete"
	IndexErrorStep InternalStatus = "Error"

	ScopeAllLectures JobScope = "All"
	ScopeOneLecture  JobScope = "Single"
)

// IndexJob tracks a lecture (re)indexing run through the worker pool.
type IndexJob struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	Scope       JobScope       `json:"scope"`
	LectureId   int            `json:"lecture_id,omitempty"`
	Lectures    int            `json:"lectures_indexed"`
	Chunks      int            `json:"chunks_indexed"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (IndexJob, bool)
	SaveJob(ctx context.Context, job IndexJob) error
	DeleteJob(ctx context.Context, jobId string)
}

// AnswerCache remembers full responses keyed by the normalized question.
type AnswerCache interface {
	Get(ctx context.Context, question string) (Answer, bool)
	Save(ctx context.Context, question string, answer Answer) error
}

// LectureStore is the read path into the persistence layer.
type LectureStore interface {
	ListLectures(ctx context.Context) ([]Lecture, error)
	GetLecture(ctx context.Context, id int) (Lecture, bool, error)
	UpsertLecture(ctx context.Context, title, content string) (int, error)
}
