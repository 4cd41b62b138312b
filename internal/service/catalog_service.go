package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/linuxgeek/simulado/internal/config"
	"github.com/linuxgeek/simulado/internal/model"
	"github.com/linuxgeek/simulado/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Domain errors
var (
	ErrSimuladoNotFound = errors.New("simulado not found")
)

// CatalogService serves the read side of the question bank: simulados,
// exam subsets and question pools, with hot payloads cached in Redis.
type CatalogService struct {
	simRepo *repository.SimuladoRepository
	qRepo   *repository.QuestionRepository
	rdb     *redis.Client
	log     zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	simRepo *repository.SimuladoRepository,
	qRepo *repository.QuestionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		simRepo: simRepo,
		qRepo:   qRepo,
		rdb:     rdb,
		log:     log.With().Str("component", "catalog_service").Logger(),
	}
}

// ListSimulados returns all active simulados.
func (s *CatalogService) ListSimulados(ctx context.Context) ([]model.Simulado, error) {
	return s.simRepo.ListActive(ctx)
}

// ExamOptions returns the exam subsets of a simulado plus the question
// types present, cache-first with a PostgreSQL fallback that self-heals
// the cache.
func (s *CatalogService) ExamOptions(ctx context.Context, slug string) (*model.ExamOptions, error) {
	key := config.CacheKey.ExamOptionsKey(slug)
	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var opts model.ExamOptions
		if err := json.Unmarshal(data, &opts); err == nil {
			return &opts, nil
		}
		// Corrupt cache entry: fall through to the database.
	}

	sim, err := s.simRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSimuladoNotFound
		}
		return nil, fmt.Errorf("get simulado: %w", err)
	}

	opts, err := s.buildExamOptions(ctx, sim)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(opts); err == nil {
		_ = s.rdb.Set(ctx, key, raw, 0).Err()
	}
	return opts, nil
}

// QuestionPool returns the active questions of a simulado, optionally
// filtered by exam code ("" or "mixed" means the whole bank). Cache-first
// with self-healing fallback.
func (s *CatalogService) QuestionPool(ctx context.Context, slug, examCode string) ([]model.QuestionRow, error) {
	if examCode == "" {
		examCode = model.ExamCodeMixed
	}

	key := config.CacheKey.QuestionPoolKey(slug, examCode)
	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var pool []model.QuestionRow
		if err := json.Unmarshal(data, &pool); err == nil {
			return pool, nil
		}
	}

	sim, err := s.simRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSimuladoNotFound
		}
		return nil, fmt.Errorf("get simulado: %w", err)
	}

	pool, err := s.qRepo.ListBySimulado(ctx, sim.ID, examCode)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if pool == nil {
		// Found but empty is a valid state, distinct from not-found.
		pool = []model.QuestionRow{}
	}

	if raw, err := json.Marshal(pool); err == nil {
		_ = s.rdb.Set(ctx, key, raw, 0).Err()
	}
	return pool, nil
}

// WarmSimuladoCache loads one simulado's exam options and question pools
// (mixed plus one per exam code) from PostgreSQL into Redis.
func (s *CatalogService) WarmSimuladoCache(ctx context.Context, sim *model.Simulado) error {
	opts, err := s.buildExamOptions(ctx, sim)
	if err != nil {
		return err
	}

	pools := map[string][]model.QuestionRow{}
	codes := []string{model.ExamCodeMixed}
	for _, e := range opts.Exams {
		codes = append(codes, e.Code)
	}
	for _, code := range codes {
		pool, err := s.qRepo.ListBySimulado(ctx, sim.ID, code)
		if err != nil {
			return fmt.Errorf("list questions for %s/%s: %w", sim.Slug, code, err)
		}
		if pool == nil {
			pool = []model.QuestionRow{}
		}
		pools[code] = pool
	}

	// Cache everything atomically via pipeline.
	pipe := s.rdb.Pipeline()
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("marshal exam options: %w", err)
	}
	pipe.Set(ctx, config.CacheKey.ExamOptionsKey(sim.Slug), optsJSON, 0)
	for code, pool := range pools {
		poolJSON, err := json.Marshal(pool)
		if err != nil {
			return fmt.Errorf("marshal pool %s: %w", code, err)
		}
		pipe.Set(ctx, config.CacheKey.QuestionPoolKey(sim.Slug, code), poolJSON, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Debug().
		Str("simulado", sim.Slug).
		Int("pools", len(pools)).
		Msg("Cache warmed")
	return nil
}

// PrewarmAllCaches loads every active simulado into Redis on startup, so
// the first wave of clients never races lazy loading.
func (s *CatalogService) PrewarmAllCaches(ctx context.Context) error {
	sims, err := s.simRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list simulados: %w", err)
	}
	if len(sims) == 0 {
		s.log.Info().Msg("No active simulados to prewarm")
		return nil
	}

	warmed := 0
	for i := range sims {
		if err := s.WarmSimuladoCache(ctx, &sims[i]); err != nil {
			s.log.Warn().
				Err(err).
				Str("simulado", sims[i].Slug).
				Msg("Failed to warm simulado, skipping")
			continue
		}
		warmed++
	}

	s.log.Info().
		Int("warmed", warmed).
		Int("total", len(sims)).
		Msg("Prewarming complete")
	return nil
}

func (s *CatalogService) buildExamOptions(ctx context.Context, sim *model.Simulado) (*model.ExamOptions, error) {
	exams, err := s.simRepo.ListExams(ctx, sim.ID)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	types, err := s.simRepo.ListQuestionTypes(ctx, sim.ID)
	if err != nil {
		return nil, fmt.Errorf("list question types: %w", err)
	}
	if len(types) == 0 {
		// Banks predating the text type carry no type column at all;
		// multiple is the historical default.
		types = []model.QuestionType{model.QuestionTypeMultiple}
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	return &model.ExamOptions{Exams: exams, QuestionTypes: types}, nil
}
