package engine

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/linuxgeek/simulado/internal/model"
)

// Status is the grading state of one question within a session. Once a
// question leaves StatusUnanswered it is terminal: no retry, no change.
type Status string

const (
	StatusUnanswered Status = "unanswered"
	StatusCorrect    Status = "correct"
	StatusIncorrect  Status = "incorrect"
)

var (
	ErrEmptyPool       = errors.New("no questions selected for session")
	ErrQuestionIndex   = errors.New("question index out of range")
	ErrOptionIndex     = errors.New("option index out of range")
	ErrWrongType       = errors.New("answer does not match question type")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrEmptyAnswer     = errors.New("empty answer")
	ErrFinalized       = errors.New("session already finalized")
)

// Answer records what the user submitted for one question.
type Answer struct {
	// OptionIndex is set for multiple-choice answers.
	OptionIndex *int
	// Text is the trimmed free-text submission.
	Text string
}

// Session is one in-progress exam attempt. All transitions are serialized
// behind a mutex: the ticking timer and answer submissions arrive from
// different goroutines, and finalize may fire from both a timeout and a
// manual finish in the same instant.
type Session struct {
	mu        sync.Mutex
	cfg       SessionConfig
	questions []model.Question
	answers   []Answer
	status    []Status
	startedAt time.Time
	finalized bool
	record    *model.SessionRecord
	now       func() time.Time
}

// SessionOption customizes session construction.
type SessionOption func(*Session)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession starts an attempt over an already-selected question sequence.
// The sequence must be non-empty: a zero-question session would divide by
// zero in scoring and is a configuration error upstream.
func NewSession(cfg SessionConfig, questions []model.Question, opts ...SessionOption) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyPool
	}
	s := &Session{
		cfg:       cfg,
		questions: questions,
		answers:   make([]Answer, len(questions)),
		status:    make([]Status, len(questions)),
		now:       time.Now,
	}
	for i := range s.status {
		s.status[i] = StatusUnanswered
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	return s, nil
}

// Config returns the session's configuration.
func (s *Session) Config() SessionConfig { return s.cfg }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Question returns the question at index i.
func (s *Session) Question(i int) (model.Question, error) {
	if i < 0 || i >= len(s.questions) {
		return model.Question{}, ErrQuestionIndex
	}
	return s.questions[i], nil
}

// StartedAt returns the session start timestamp.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Status returns the grading state of question i.
func (s *Session) Status(i int) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.status) {
		return StatusUnanswered
	}
	return s.status[i]
}

// SelectOption submits a multiple-choice pick for question i and grades
// it immediately. The result is terminal: a second submission for the
// same question fails with ErrAlreadyAnswered.
func (s *Session) SelectOption(i, optionIndex int) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return StatusUnanswered, ErrFinalized
	}
	if i < 0 || i >= len(s.questions) {
		return StatusUnanswered, ErrQuestionIndex
	}
	q := &s.questions[i]
	if q.Type != model.QuestionTypeMultiple {
		return StatusUnanswered, ErrWrongType
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return StatusUnanswered, ErrOptionIndex
	}
	if s.status[i] != StatusUnanswered {
		return s.status[i], ErrAlreadyAnswered
	}

	idx := optionIndex
	s.answers[i] = Answer{OptionIndex: &idx}
	s.status[i] = gradeOption(q, optionIndex)
	return s.status[i], nil
}

// SubmitText submits a free-text answer for question i and grades it
// immediately. A submission that is empty after trimming is rejected
// without consuming the question's single attempt.
func (s *Session) SubmitText(i int, text string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return StatusUnanswered, ErrFinalized
	}
	if i < 0 || i >= len(s.questions) {
		return StatusUnanswered, ErrQuestionIndex
	}
	q := &s.questions[i]
	if q.Type != model.QuestionTypeText {
		return StatusUnanswered, ErrWrongType
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return StatusUnanswered, ErrEmptyAnswer
	}
	if s.status[i] != StatusUnanswered {
		return s.status[i], ErrAlreadyAnswered
	}

	s.answers[i] = Answer{Text: trimmed}
	s.status[i] = gradeText(q, trimmed)
	return s.status[i], nil
}

// Answer returns what was submitted for question i, if anything.
func (s *Session) Answer(i int) (Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.answers) {
		return Answer{}, false
	}
	return s.answers[i], s.status[i] != StatusUnanswered
}

// Progress reports how many questions have been answered and how many of
// those graded correct.
func (s *Session) Progress() (answered, correct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.status {
		switch st {
		case StatusCorrect:
			answered++
			correct++
		case StatusIncorrect:
			answered++
		}
	}
	return answered, correct
}

// Elapsed returns wall-clock time since the session started.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.startedAt)
}

// Finalized reports whether the session has been finalized.
func (s *Session) Finalized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalized
}

// Finalize closes the session and builds its record. Idempotent: the
// timer's forced finish and a manual finish can both land here, and the
// second caller gets the same record back with no side effects.
// Unanswered questions stay unanswered: they count in the total but in
// neither the correct nor the wrong tally.
func (s *Session) Finalize() model.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return *s.record
	}

	var correct, wrong int
	for _, st := range s.status {
		switch st {
		case StatusCorrect:
			correct++
		case StatusIncorrect:
			wrong++
		}
	}

	rec := buildRecord(s.cfg, len(s.questions), correct, wrong, s.startedAt, s.now())
	s.finalized = true
	s.record = &rec
	return rec
}
