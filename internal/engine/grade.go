package engine

import (
	"strings"

	"github.com/linuxgeek/simulado/internal/model"
)

// NormalizeAnswer canonicalizes a free-text answer for comparison: trim,
// lowercase, collapse internal whitespace runs to a single space.
func NormalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// gradeOption grades a multiple-choice pick. A question with an
// unresolved correct index grades every pick incorrect.
func gradeOption(q *model.Question, optionIndex int) Status {
	if q.Correct != nil && optionIndex == *q.Correct {
		return StatusCorrect
	}
	return StatusIncorrect
}

// gradeText grades a free-text submission by normalized membership in the
// accepted-answer set.
func gradeText(q *model.Question, submitted string) Status {
	want := NormalizeAnswer(submitted)
	for _, accepted := range q.AcceptedAnswers {
		if NormalizeAnswer(accepted) == want {
			return StatusCorrect
		}
	}
	return StatusIncorrect
}
