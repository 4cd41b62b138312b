package model

import "encoding/json"

// SessionRecord is the durable artifact of one finished exam session.
// Built exactly once at finalize time and immutable thereafter; field
// names follow the progress table columns.
type SessionRecord struct {
	ID            string          `json:"id"`
	Simulado      string          `json:"simulado"`
	SimuladoLabel string          `json:"simulado_label"`
	Exam          string          `json:"exam"`
	Mode          string          `json:"mode"`
	Date          string          `json:"date"`
	DateTimestamp int64           `json:"date_timestamp"`
	Duration      int             `json:"duration"`
	Total         int             `json:"total"`
	Correct       int             `json:"correct"`
	Wrong         int             `json:"wrong"`
	Score         int             `json:"score"`
	Passed        bool            `json:"passed"`
	TopicsStats   json.RawMessage `json:"topics_stats,omitempty"`
	WeakTopics    json.RawMessage `json:"weak_topics,omitempty"`
}

// SaveSessionRequest is the payload for storing a session record in the
// remote progress tier. Mirrors SessionRecord with binding rules; the id
// is regenerated server-side when it is not a valid UUID.
type SaveSessionRequest struct {
	ID            string          `json:"id" binding:"required,max=64"`
	Simulado      string          `json:"simulado" binding:"required,max=80"`
	SimuladoLabel string          `json:"simulado_label" binding:"max=160"`
	Exam          string          `json:"exam" binding:"max=20"`
	Mode          string          `json:"mode" binding:"omitempty,oneof=multiple text mixed"`
	Date          string          `json:"date" binding:"max=10"`
	DateTimestamp int64           `json:"date_timestamp" binding:"min=0"`
	Duration      int             `json:"duration" binding:"min=0"`
	Total         int             `json:"total" binding:"min=0"`
	Correct       int             `json:"correct" binding:"min=0"`
	Wrong         int             `json:"wrong" binding:"min=0"`
	Score         int             `json:"score" binding:"min=0,max=100"`
	Passed        bool            `json:"passed"`
	TopicsStats   json.RawMessage `json:"topics_stats"`
	WeakTopics    json.RawMessage `json:"weak_topics"`
}

// Record converts the validated request into a SessionRecord.
func (r *SaveSessionRequest) Record() SessionRecord {
	return SessionRecord{
		ID:            r.ID,
		Simulado:      r.Simulado,
		SimuladoLabel: r.SimuladoLabel,
		Exam:          r.Exam,
		Mode:          r.Mode,
		Date:          r.Date,
		DateTimestamp: r.DateTimestamp,
		Duration:      r.Duration,
		Total:         r.Total,
		Correct:       r.Correct,
		Wrong:         r.Wrong,
		Score:         r.Score,
		Passed:        r.Passed,
		TopicsStats:   r.TopicsStats,
		WeakTopics:    r.WeakTopics,
	}
}
