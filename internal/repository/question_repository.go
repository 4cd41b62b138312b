package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linuxgeek/simulado/internal/model"
)

// QuestionRepository handles question bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListBySimulado retrieves the active questions of a simulado. An empty or
// "mixed" examCode returns the union of all exam subsets; otherwise only
// questions of the exam with that code.
func (r *QuestionRepository) ListBySimulado(ctx context.Context, simuladoID uuid.UUID, examCode string) ([]model.QuestionRow, error) {
	query := `
		SELECT q.id, q.type, q.question, q.options, q.answer, q.difficulty, q.hint, q.weight
		FROM questions q
		JOIN exams e ON q.exam_id = e.id
		WHERE e.simulado_id = $1 AND q.is_active`
	args := []any{simuladoID}

	if examCode != "" && examCode != model.ExamCodeMixed {
		args = append(args, examCode)
		query += fmt.Sprintf(" AND e.code = $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.QuestionRow
	for rows.Next() {
		var (
			q       model.QuestionRow
			id      uuid.UUID
			options []byte
			answer  []byte
			hint    *string
		)
		if err := rows.Scan(&id, &q.Type, &q.Question, &options, &answer, &q.Difficulty, &hint, &q.Weight); err != nil {
			return nil, err
		}
		q.ID = id.String()
		if len(options) > 0 {
			if err := json.Unmarshal(options, &q.Options); err != nil {
				return nil, fmt.Errorf("decode options for question %s: %w", q.ID, err)
			}
		}
		// answer stays raw: the bank stores indexes, strings and arrays
		// and the client resolves them.
		q.Answer = json.RawMessage(answer)
		if hint != nil {
			q.Hint = *hint
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
