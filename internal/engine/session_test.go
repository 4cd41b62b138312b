package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/linuxgeek/simulado/internal/model"
)

func intPtr(n int) *int { return &n }

func mcq(id string, correct int) model.Question {
	return model.Question{
		ID:      id,
		Type:    model.QuestionTypeMultiple,
		Prompt:  "pick one",
		Options: []string{"alpha", "beta", "gamma", "delta"},
		Correct: intPtr(correct),
	}
}

func textq(id string, accepted ...string) model.Question {
	return model.Question{
		ID:              id,
		Type:            model.QuestionTypeText,
		Prompt:          "type it",
		AcceptedAnswers: accepted,
	}
}

// fakeClock is a manual clock for deterministic duration and timestamp
// assertions.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)}
}

func TestNewSessionRejectsEmptyPool(t *testing.T) {
	_, err := NewSession(SessionConfig{}, nil)
	if !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("err = %v, want ErrEmptyPool", err)
	}
}

func TestSelectOptionGradesAndLocks(t *testing.T) {
	s, err := NewSession(SessionConfig{}, []model.Question{mcq("q1", 2)})
	if err != nil {
		t.Fatal(err)
	}

	status, err := s.SelectOption(0, 2)
	if err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if status != StatusCorrect {
		t.Fatalf("status = %q, want correct", status)
	}

	// Second pick must not change the grade.
	status, err = s.SelectOption(0, 0)
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("err = %v, want ErrAlreadyAnswered", err)
	}
	if status != StatusCorrect {
		t.Fatalf("status after retry = %q, want correct", status)
	}
}

func TestSelectOptionErrors(t *testing.T) {
	s, _ := NewSession(SessionConfig{}, []model.Question{mcq("q1", 0), textq("q2", "yes")})

	tests := []struct {
		name   string
		q, opt int
		want   error
	}{
		{"question index negative", -1, 0, ErrQuestionIndex},
		{"question index past end", 2, 0, ErrQuestionIndex},
		{"option index negative", 0, -1, ErrOptionIndex},
		{"option index past end", 0, 4, ErrOptionIndex},
		{"text question", 1, 0, ErrWrongType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.SelectOption(tt.q, tt.opt); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSubmitTextGrading(t *testing.T) {
	tests := []struct {
		name     string
		accepted []string
		text     string
		want     Status
	}{
		{"exact", []string{"chmod"}, "chmod", StatusCorrect},
		{"case and padding", []string{"chmod"}, "  CHMOD  ", StatusCorrect},
		{"inner whitespace collapsed", []string{"ls -la"}, "ls   -la", StatusCorrect},
		{"second accepted answer", []string{"grep", "egrep"}, "egrep", StatusCorrect},
		{"wrong answer", []string{"chmod"}, "chown", StatusIncorrect},
		{"no accepted answers", nil, "anything", StatusIncorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := NewSession(SessionConfig{}, []model.Question{textq("q1", tt.accepted...)})
			status, err := s.SubmitText(0, tt.text)
			if err != nil {
				t.Fatalf("SubmitText: %v", err)
			}
			if status != tt.want {
				t.Fatalf("status = %q, want %q", status, tt.want)
			}
		})
	}
}

func TestSubmitTextEmptyKeepsAttempt(t *testing.T) {
	s, _ := NewSession(SessionConfig{}, []model.Question{textq("q1", "kernel")})

	if _, err := s.SubmitText(0, "   "); !errors.Is(err, ErrEmptyAnswer) {
		t.Fatalf("err = %v, want ErrEmptyAnswer", err)
	}
	if got := s.Status(0); got != StatusUnanswered {
		t.Fatalf("status after empty submit = %q, want unanswered", got)
	}

	// The attempt is still available.
	status, err := s.SubmitText(0, "kernel")
	if err != nil {
		t.Fatalf("SubmitText: %v", err)
	}
	if status != StatusCorrect {
		t.Fatalf("status = %q, want correct", status)
	}
}

func TestSubmitTextWrongType(t *testing.T) {
	s, _ := NewSession(SessionConfig{}, []model.Question{mcq("q1", 0)})
	if _, err := s.SubmitText(0, "beta"); !errors.Is(err, ErrWrongType) {
		t.Fatalf("err = %v, want ErrWrongType", err)
	}
}

func TestUnresolvedCorrectIndexNeverGradesCorrect(t *testing.T) {
	q := mcq("q1", 0)
	q.Correct = nil
	s, _ := NewSession(SessionConfig{}, []model.Question{q})

	status, err := s.SelectOption(0, 0)
	if err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if status != StatusIncorrect {
		t.Fatalf("status = %q, want incorrect", status)
	}
}

func TestProgressCountsOnlyGraded(t *testing.T) {
	s, _ := NewSession(SessionConfig{}, []model.Question{
		mcq("q1", 0), mcq("q2", 1), mcq("q3", 2),
	})
	s.SelectOption(0, 0) // correct
	s.SelectOption(1, 0) // incorrect

	answered, correct := s.Progress()
	if answered != 2 || correct != 1 {
		t.Fatalf("Progress() = (%d, %d), want (2, 1)", answered, correct)
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	s, _ := NewSession(SessionConfig{Simulado: "lpic1"},
		[]model.Question{mcq("q1", 0)}, WithClock(clock.Now))

	s.SelectOption(0, 0)
	clock.Advance(90 * time.Second)

	first := s.Finalize()
	clock.Advance(time.Hour)
	second := s.Finalize()

	if first.ID != second.ID {
		t.Fatalf("second finalize built a new record: %s vs %s", first.ID, second.ID)
	}
	if second.Duration != first.Duration {
		t.Fatalf("second finalize changed duration: %d vs %d", second.Duration, first.Duration)
	}
	if !s.Finalized() {
		t.Fatal("Finalized() = false after Finalize")
	}
}

func TestFinalizedSessionRejectsAnswers(t *testing.T) {
	s, _ := NewSession(SessionConfig{}, []model.Question{mcq("q1", 0), textq("q2", "x")})
	s.Finalize()

	if _, err := s.SelectOption(0, 0); !errors.Is(err, ErrFinalized) {
		t.Fatalf("SelectOption err = %v, want ErrFinalized", err)
	}
	if _, err := s.SubmitText(1, "x"); !errors.Is(err, ErrFinalized) {
		t.Fatalf("SubmitText err = %v, want ErrFinalized", err)
	}
}

func TestFinalizeUnansweredStayUnanswered(t *testing.T) {
	s, _ := NewSession(SessionConfig{}, []model.Question{
		mcq("q1", 0), mcq("q2", 1), mcq("q3", 2), mcq("q4", 3),
	})
	s.SelectOption(0, 0) // correct
	s.SelectOption(1, 0) // incorrect

	rec := s.Finalize()
	if rec.Total != 4 {
		t.Fatalf("Total = %d, want 4", rec.Total)
	}
	if rec.Correct != 1 || rec.Wrong != 1 {
		t.Fatalf("Correct/Wrong = %d/%d, want 1/1", rec.Correct, rec.Wrong)
	}
	if rec.Correct+rec.Wrong > rec.Total {
		t.Fatalf("correct+wrong = %d exceeds total %d", rec.Correct+rec.Wrong, rec.Total)
	}
}
