package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linuxgeek/simulado/internal/model"
)

// ProgressRepository handles the remote tier of session-record storage.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Insert stores one session record for a user. Keyed by the record UUID:
// re-sending the same record is a no-op, which keeps client retries safe.
func (r *ProgressRepository) Insert(ctx context.Context, userID uuid.UUID, rec *model.SessionRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO progress_sessions
		   (id, user_id, simulado, simulado_label, exam, mode, date,
		    date_timestamp, duration, total, correct, wrong, score, passed,
		    topics_stats, weak_topics)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, userID, rec.Simulado, rec.SimuladoLabel, rec.Exam, rec.Mode,
		rec.Date, rec.DateTimestamp, rec.Duration, rec.Total, rec.Correct,
		rec.Wrong, rec.Score, rec.Passed,
		nullableJSON(rec.TopicsStats), nullableJSON(rec.WeakTopics),
	)
	return err
}

// ListByUser retrieves all session records for a user, most recent first.
func (r *ProgressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SessionRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, simulado, simulado_label, exam, mode, date,
		        date_timestamp, duration, total, correct, wrong, score, passed,
		        topics_stats, weak_topics
		 FROM progress_sessions
		 WHERE user_id = $1
		 ORDER BY date_timestamp DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.SessionRecord
	for rows.Next() {
		var (
			rec         model.SessionRecord
			id          uuid.UUID
			topicsStats []byte
			weakTopics  []byte
		)
		if err := rows.Scan(&id, &rec.Simulado, &rec.SimuladoLabel, &rec.Exam, &rec.Mode,
			&rec.Date, &rec.DateTimestamp, &rec.Duration, &rec.Total, &rec.Correct,
			&rec.Wrong, &rec.Score, &rec.Passed, &topicsStats, &weakTopics); err != nil {
			return nil, err
		}
		rec.ID = id.String()
		rec.TopicsStats = topicsStats
		rec.WeakTopics = weakTopics
		records = append(records, rec)
	}
	return records, rows.Err()
}

// nullableJSON maps empty raw JSON to NULL instead of the empty string,
// which jsonb columns reject.
func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
