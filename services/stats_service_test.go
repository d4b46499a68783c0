package services

import (
	"context"
	"testing"

	"github.com/amin-97/sport-vibe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsRepo struct {
	upserted []models.CareerStatLine
}

func (f *fakeStatsRepo) Upsert(_ context.Context, line *models.CareerStatLine) error {
	f.upserted = append(f.upserted, *line)
	return nil
}

func (f *fakeStatsRepo) ListByPlayer(_ context.Context, playerID string) ([]models.CareerStatLine, error) {
	var out []models.CareerStatLine
	for _, line := range f.upserted {
		if line.PlayerID == playerID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (f *fakeStatsRepo) GetSeason(_ context.Context, playerID, seasonID string) (*models.CareerStatLine, error) {
	for i := range f.upserted {
		if f.upserted[i].PlayerID == playerID && f.upserted[i].SeasonID == seasonID {
			return &f.upserted[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStatsRepo) DeleteByPlayer(_ context.Context, playerID string) error {
	return nil
}

func statLine(playerID, seasonID string, oreb, dreb, reb int) models.CareerStatLine {
	return models.CareerStatLine{
		PlayerID:   playerID,
		PlayerName: "Test Player",
		SeasonID:   seasonID,
		TeamID:     "LAL",
		OREB:       oreb,
		DREB:       dreb,
		REB:        reb,
	}
}

func TestImportStatLines_UpsertsValidBatch(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewStatsService(repo)

	lines := []models.CareerStatLine{
		statLine("p1", "2022-23", 50, 200, 250),
		statLine("p1", "2023-24", 60, 240, 300),
	}

	require.NoError(t, svc.ImportStatLines(context.Background(), lines))
	assert.Len(t, repo.upserted, 2)
}

func TestImportStatLines_ReboundMismatchRejectsWholeBatch(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewStatsService(repo)

	lines := []models.CareerStatLine{
		statLine("p1", "2022-23", 50, 200, 250),
		statLine("p1", "2023-24", 60, 240, 299), // REB != OREB + DREB
	}

	err := svc.ImportStatLines(context.Background(), lines)
	require.ErrorIs(t, err, ErrReboundMismatch)

	// Nothing written: the bad row is caught before any upsert.
	assert.Empty(t, repo.upserted)
}

func TestImportStatLines_RequiresPlayerAndSeason(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewStatsService(repo)

	err := svc.ImportStatLines(context.Background(), []models.CareerStatLine{
		statLine("", "2023-24", 0, 0, 0),
	})
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Empty(t, repo.upserted)
}
