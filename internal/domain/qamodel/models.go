package qamodel

import "time"

// Lecture is owned by the persistence layer; the pipeline only reads its
// identifier and text for indexing.
type Lecture struct {
	Id        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChunkRecord is a chunk of lecture text prepared for embedding. Ordinals are
// dense starting at zero per lecture.
type ChunkRecord struct {
	LectureId int    `json:"lecture_id"`
	ChunkId   int    `json:"chunk_id"`
	Source    string `json:"source"`
	Text      string `json:"content"`
}

// ContextDoc is a retrieval hit, alive only for the duration of one query.
type ContextDoc struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Score    float32           `json:"score"`
}

// Answer is what the pipeline hands upward to the routing layer.
type Answer struct {
	Question        string   `json:"question"`
	Answer          string   `json:"answer"`
	ConfidenceScore float64  `json:"confidence_score"`
	Sources         []string `json:"sources"`
	AudioURL        *string  `json:"audio_url"`
}
