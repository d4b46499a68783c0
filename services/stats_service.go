package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/amin-97/sport-vibe/models"
	"github.com/amin-97/sport-vibe/repositories"
)

type StatsService interface {
	ImportStatLines(ctx context.Context, lines []models.CareerStatLine) error
	PlayerCareer(ctx context.Context, playerID string) ([]models.CareerStatLine, error)
	PlayerSeason(ctx context.Context, playerID, seasonID string) (*models.CareerStatLine, error)
}

type statsService struct {
	statsRepo repositories.CareerStatsRepository
}

func NewStatsService(statsRepo repositories.CareerStatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

// ImportStatLines validates and upserts a batch of season rows. Rows whose
// rebound totals do not reconcile are rejected before anything is written.
func (s *statsService) ImportStatLines(ctx context.Context, lines []models.CareerStatLine) error {
	for _, line := range lines {
		if line.PlayerID == "" || line.SeasonID == "" {
			return fmt.Errorf("%w: player_id and season_id are required", ErrValidationFailed)
		}
		if !line.ReboundsConsistent() {
			return fmt.Errorf("%w: player %s season %s", ErrReboundMismatch, line.PlayerID, line.SeasonID)
		}
	}

	for i := range lines {
		if err := s.statsRepo.Upsert(ctx, &lines[i]); err != nil {
			return fmt.Errorf("failed to import stat line for player %s: %w", lines[i].PlayerID, err)
		}
	}
	return nil
}

func (s *statsService) PlayerCareer(ctx context.Context, playerID string) ([]models.CareerStatLine, error) {
	lines, err := s.statsRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load player career stats: %w", err)
	}
	return lines, nil
}

func (s *statsService) PlayerSeason(ctx context.Context, playerID, seasonID string) (*models.CareerStatLine, error) {
	line, err := s.statsRepo.GetSeason(ctx, playerID, seasonID)
	if err != nil {
		if errors.Is(err, repositories.ErrStatLineNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load player season stats: %w", err)
	}
	return line, nil
}
