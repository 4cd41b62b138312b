package model

import "encoding/json"

// QuestionType discriminates how a question is answered and graded.
type QuestionType string

const (
	QuestionTypeMultiple QuestionType = "multiple"
	QuestionTypeText     QuestionType = "text"
)

// Difficulty levels carried by the question bank.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionRow is the wire shape of a question as served by the catalog API.
// The answer field is heterogeneous in the bank: a numeric option index, a
// string (option text or letter code), or an array of accepted strings. It
// is kept raw here and normalized by the qbank client at load time.
type QuestionRow struct {
	ID         string          `json:"id"`
	Type       QuestionType    `json:"type"`
	Question   string          `json:"question"`
	Options    []string        `json:"options"`
	Answer     json.RawMessage `json:"answer"`
	Difficulty Difficulty      `json:"difficulty"`
	Hint       string          `json:"hint,omitempty"`
	Weight     float64         `json:"weight"`
}

// Question is the normalized, engine-facing form of a bank question.
type Question struct {
	ID      string
	Type    QuestionType
	Prompt  string
	Options []string

	// AcceptedAnswers holds the correct answer strings for text questions
	// as delivered by the bank. Grading normalizes both sides before
	// comparing, so these are kept verbatim.
	AcceptedAnswers []string

	// Correct is the resolved correct option index for multiple-choice
	// questions. Nil means resolution failed and the question can never
	// grade as correct.
	Correct *int

	Difficulty Difficulty
	Hint       string

	// Weight is carried from the bank but unused by the default scoring
	// formula, which is an unweighted percentage of correct answers.
	Weight float64
}
