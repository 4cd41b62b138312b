package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linuxgeek/simulado/internal/model"
)

// SimuladoRepository handles simulado and exam catalog data access.
type SimuladoRepository struct {
	pool *pgxpool.Pool
}

// NewSimuladoRepository creates a new SimuladoRepository.
func NewSimuladoRepository(pool *pgxpool.Pool) *SimuladoRepository {
	return &SimuladoRepository{pool: pool}
}

// ListActive retrieves all active simulados with the columns the
// configuration screen needs.
func (r *SimuladoRepository) ListActive(ctx context.Context) ([]model.Simulado, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, slug, title, is_active, is_premium, passing_score, created_at
		 FROM simulados
		 WHERE is_active
		 ORDER BY slug`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sims []model.Simulado
	for rows.Next() {
		var s model.Simulado
		if err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.IsActive, &s.IsPremium, &s.PassingScore, &s.CreatedAt); err != nil {
			return nil, err
		}
		sims = append(sims, s)
	}
	return sims, rows.Err()
}

// GetBySlug retrieves one active simulado by its slug.
func (r *SimuladoRepository) GetBySlug(ctx context.Context, slug string) (*model.Simulado, error) {
	s := &model.Simulado{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, slug, title, is_active, is_premium, passing_score, created_at
		 FROM simulados
		 WHERE slug = $1 AND is_active`, slug,
	).Scan(&s.ID, &s.Slug, &s.Title, &s.IsActive, &s.IsPremium, &s.PassingScore, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListExams retrieves the exam subsets of a simulado, ordered by code.
func (r *SimuladoRepository) ListExams(ctx context.Context, simuladoID uuid.UUID) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code FROM exams WHERE simulado_id = $1 ORDER BY code`, simuladoID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Code); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// ListQuestionTypes returns the distinct question types present among the
// active questions of a simulado, so the configuration step can disable
// modes with no questions behind them.
func (r *SimuladoRepository) ListQuestionTypes(ctx context.Context, simuladoID uuid.UUID) ([]model.QuestionType, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT q.type
		 FROM questions q
		 JOIN exams e ON q.exam_id = e.id
		 WHERE e.simulado_id = $1 AND q.is_active
		 ORDER BY q.type`, simuladoID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []model.QuestionType
	for rows.Next() {
		var t model.QuestionType
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
