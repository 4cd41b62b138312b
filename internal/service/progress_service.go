package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/linuxgeek/simulado/internal/model"
	"github.com/linuxgeek/simulado/internal/repository"
	"github.com/rs/zerolog"
)

// ProgressService handles the remote tier of session-record persistence.
type ProgressService struct {
	repo *repository.ProgressRepository
	log  zerolog.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(repo *repository.ProgressRepository, log zerolog.Logger) *ProgressService {
	return &ProgressService{
		repo: repo,
		log:  log.With().Str("component", "progress_service").Logger(),
	}
}

// Save stores one session record for a user. Records whose id is not a
// valid UUID (clients without an entropy source fall back to a timestamp
// string) get a fresh UUID assigned here before insert.
func (s *ProgressService) Save(ctx context.Context, userID uuid.UUID, rec model.SessionRecord) (*model.SessionRecord, error) {
	if _, err := uuid.Parse(rec.ID); err != nil {
		rec.ID = uuid.New().String()
	}

	if err := s.repo.Insert(ctx, userID, &rec); err != nil {
		return nil, fmt.Errorf("insert session record: %w", err)
	}

	s.log.Debug().
		Str("record_id", rec.ID).
		Str("simulado", rec.Simulado).
		Int("score", rec.Score).
		Msg("Session record stored")
	return &rec, nil
}

// List retrieves all session records for a user, most recent first.
func (s *ProgressService) List(ctx context.Context, userID uuid.UUID) ([]model.SessionRecord, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list session records: %w", err)
	}
	if records == nil {
		records = []model.SessionRecord{}
	}
	return records, nil
}
