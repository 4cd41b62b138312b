package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/linuxgeek/simulado/internal/model"
)

// PassThreshold is the fixed passing score percent. The catalog carries a
// per-simulado passing_score column, but the engine does not consult it:
// scores and pass flags stay comparable across every simulado a user has
// ever run.
const PassThreshold = 70

// NewRecordID returns a fresh UUID for a session record, falling back to
// a millisecond-timestamp string when the entropy source fails.
func NewRecordID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	return id.String()
}

// buildRecord aggregates the final score and outcome counts into the
// durable session record. Pure over its inputs apart from ID generation.
func buildRecord(cfg SessionConfig, total, correct, wrong int, startedAt, finishedAt time.Time) model.SessionRecord {
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}

	duration := int(finishedAt.Sub(startedAt).Seconds())
	if duration < 0 {
		duration = 0
	}

	return model.SessionRecord{
		ID:            NewRecordID(),
		Simulado:      cfg.Simulado,
		SimuladoLabel: cfg.SimuladoLabel,
		Exam:          cfg.ExamCode,
		Mode:          string(cfg.Mode),
		Date:          finishedAt.UTC().Format("2006-01-02"),
		DateTimestamp: finishedAt.UnixMilli(),
		Duration:      duration,
		Total:         total,
		Correct:       correct,
		Wrong:         wrong,
		Score:         score,
		Passed:        score >= PassThreshold,
		// Reserved extension fields: no topic aggregation yet.
		TopicsStats: json.RawMessage(`{}`),
		WeakTopics:  json.RawMessage(`[]`),
	}
}
