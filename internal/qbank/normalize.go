package qbank

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/linuxgeek/simulado/internal/model"
)

// Normalize converts wire questions into the engine-facing form, resolving
// the heterogeneous answer field once at load time. Questions whose
// correct answer cannot be resolved keep Correct == nil and can never
// grade as correct.
func Normalize(rows []model.QuestionRow) []model.Question {
	questions := make([]model.Question, 0, len(rows))
	for _, row := range rows {
		q := model.Question{
			ID:              row.ID,
			Type:            row.Type,
			Prompt:          row.Question,
			Options:         row.Options,
			AcceptedAnswers: answerStrings(row.Answer),
			Difficulty:      row.Difficulty,
			Hint:            row.Hint,
			Weight:          row.Weight,
		}
		if q.Weight == 0 {
			q.Weight = 1
		}
		if q.Type == model.QuestionTypeMultiple {
			q.Correct = ResolveCorrectIndex(row.Answer, row.Options)
		}
		questions = append(questions, q)
	}
	return questions
}

// ResolveCorrectIndex derives the correct option index from a raw answer
// value, which banks store as a numeric index, an option text, or a letter
// code. Resolution order:
//
//  1. integer within [0, len(options)) → that index;
//  2. otherwise take the first array element or the scalar string, trimmed;
//  3. case-insensitive trimmed match against the option texts;
//  4. single letter a–f (optionally followed by a dot) → positional index,
//     if within range.
//
// Anything else returns nil: the question is unscorable, never silently
// marked correct.
func ResolveCorrectIndex(raw json.RawMessage, options []string) *int {
	if len(options) == 0 || len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		idx := int(n)
		if float64(idx) == n && idx >= 0 && idx < len(options) {
			return &idx
		}
		return nil
	}

	text := firstAnswerText(raw)
	if text == "" {
		return nil
	}

	want := strings.ToLower(text)
	for i, opt := range options {
		if strings.ToLower(strings.TrimSpace(opt)) == want {
			idx := i
			return &idx
		}
	}

	letter := strings.TrimSuffix(want, ".")
	if len(letter) == 1 && letter[0] >= 'a' && letter[0] <= 'f' {
		idx := int(letter[0] - 'a')
		if idx < len(options) {
			return &idx
		}
	}
	return nil
}

// answerStrings decodes the raw answer into the accepted-answer list used
// for text grading: arrays are kept element-wise, scalars become a
// one-element list.
func answerStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var arr []any
	if err := json.Unmarshal(raw, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			out = append(out, stringify(v))
		}
		return out
	}

	var v any
	if err := json.Unmarshal(raw, &v); err == nil && v != nil {
		return []string{stringify(v)}
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		raw, _ := json.Marshal(t)
		return string(raw)
	}
}

// firstAnswerText extracts the trimmed scalar answer text: the first
// element when the answer is an array, the whole string otherwise.
func firstAnswerText(raw json.RawMessage) string {
	var arr []any
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) == 0 {
			return ""
		}
		return strings.TrimSpace(stringify(arr[0]))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}
