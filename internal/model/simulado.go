package model

import (
	"time"

	"github.com/google/uuid"
)

// Simulado is a named practice-exam product grouping one or more exams
// (e.g. "LPIC-1" groups exams 101 and 102).
type Simulado struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	IsActive     bool      `json:"is_active"`
	IsPremium    bool      `json:"is_premium"`
	PassingScore int       `json:"passing_score"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Exam is a coded subset of a simulado's question bank.
type Exam struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

// ExamCodeMixed is the sentinel exam code meaning "union of all exam
// subsets of the simulado".
const ExamCodeMixed = "mixed"

// ExamOptions is what the configuration step needs before a session can
// start: the valid exam subsets plus which question types exist, so
// unavailable modes can be disabled up front.
type ExamOptions struct {
	Exams         []Exam         `json:"exams"`
	QuestionTypes []QuestionType `json:"question_types"`
}

// HasType reports whether the simulado has at least one question of type t.
func (o *ExamOptions) HasType(t QuestionType) bool {
	for _, qt := range o.QuestionTypes {
		if qt == t {
			return true
		}
	}
	return false
}
