package store

import "time"

// TurnStatus tags the lifecycle of a conversation turn. A turn is pending
// only while its request is being handled; completed requests leave every
// turn answered or failed.
type TurnStatus string

const (
	TurnPending  TurnStatus = "pending"
	TurnAnswered TurnStatus = "answered"
	TurnFailed   TurnStatus = "failed"
)

type Session struct {
	ID        string    `json:"id"` // opaque UUID held by the client cookie
	Lang      string    `json:"lang"`
	CreatedAt time.Time `json:"created_at"`
}

type Turn struct {
	ID        int64      `json:"id"`
	SessionID string     `json:"session_id"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"` // sanitized display markup, empty while pending
	Status    TurnStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

func (t Turn) Completed() bool {
	return t.Status != TurnPending
}

type ExerciseChunk struct {
	ID            int64     `json:"id"`
	Exercise      string    `json:"exercise"`
	Content       string    `json:"content"`
	Embedding     []float32 `json:"-"`
	EmbeddingJSON string    `json:"-"` // stored as a JSON string in the DB
}
