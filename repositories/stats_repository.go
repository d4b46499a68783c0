package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amin-97/sport-vibe/models"
)

var ErrStatLineNotFound = errors.New("career stat line not found")

type CareerStatsRepository interface {
	Upsert(ctx context.Context, line *models.CareerStatLine) error
	ListByPlayer(ctx context.Context, playerID string) ([]models.CareerStatLine, error)
	GetSeason(ctx context.Context, playerID, seasonID string) (*models.CareerStatLine, error)
	DeleteByPlayer(ctx context.Context, playerID string) error
}

type postgresCareerStatsRepository struct {
	db *sql.DB
}

func NewPostgresCareerStatsRepository(db *sql.DB) CareerStatsRepository {
	return &postgresCareerStatsRepository{db: db}
}

const statColumns = `id, player_id, player_name, season_id, team_id, team_abbreviation, player_age,
	gp, gs, min, fgm, fga, fg_pct, fg3m, fg3a, fg3_pct, ftm, fta, ft_pct,
	oreb, dreb, reb, ast, stl, blk, tov, pf, pts, created_at`

// Upsert inserts or replaces the stat line for (player_id, season_id).
// Season re-imports overwrite in place.
func (r *postgresCareerStatsRepository) Upsert(ctx context.Context, line *models.CareerStatLine) error {
	query := `
		INSERT INTO career_stats
			(player_id, player_name, season_id, team_id, team_abbreviation, player_age,
			 gp, gs, min, fgm, fga, fg_pct, fg3m, fg3a, fg3_pct, ftm, fta, ft_pct,
			 oreb, dreb, reb, ast, stl, blk, tov, pf, pts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			 $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		ON CONFLICT (player_id, season_id) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			team_id = EXCLUDED.team_id,
			team_abbreviation = EXCLUDED.team_abbreviation,
			player_age = EXCLUDED.player_age,
			gp = EXCLUDED.gp, gs = EXCLUDED.gs, min = EXCLUDED.min,
			fgm = EXCLUDED.fgm, fga = EXCLUDED.fga, fg_pct = EXCLUDED.fg_pct,
			fg3m = EXCLUDED.fg3m, fg3a = EXCLUDED.fg3a, fg3_pct = EXCLUDED.fg3_pct,
			ftm = EXCLUDED.ftm, fta = EXCLUDED.fta, ft_pct = EXCLUDED.ft_pct,
			oreb = EXCLUDED.oreb, dreb = EXCLUDED.dreb, reb = EXCLUDED.reb,
			ast = EXCLUDED.ast, stl = EXCLUDED.stl, blk = EXCLUDED.blk,
			tov = EXCLUDED.tov, pf = EXCLUDED.pf, pts = EXCLUDED.pts
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		line.PlayerID, line.PlayerName, line.SeasonID, line.TeamID, line.TeamAbbreviation, line.PlayerAge,
		line.GP, line.GS, line.MIN, line.FGM, line.FGA, line.FGPct,
		line.FG3M, line.FG3A, line.FG3Pct, line.FTM, line.FTA, line.FTPct,
		line.OREB, line.DREB, line.REB, line.AST, line.STL, line.BLK,
		line.TOV, line.PF, line.PTS,
	).Scan(&line.ID, &line.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert career stat line: %w", err)
	}
	return nil
}

func (r *postgresCareerStatsRepository) scanLine(rowScanner interface {
	Scan(dest ...interface{}) error
}, s *models.CareerStatLine) error {
	return rowScanner.Scan(
		&s.ID, &s.PlayerID, &s.PlayerName, &s.SeasonID, &s.TeamID, &s.TeamAbbreviation, &s.PlayerAge,
		&s.GP, &s.GS, &s.MIN, &s.FGM, &s.FGA, &s.FGPct,
		&s.FG3M, &s.FG3A, &s.FG3Pct, &s.FTM, &s.FTA, &s.FTPct,
		&s.OREB, &s.DREB, &s.REB, &s.AST, &s.STL, &s.BLK,
		&s.TOV, &s.PF, &s.PTS, &s.CreatedAt,
	)
}

func (r *postgresCareerStatsRepository) ListByPlayer(ctx context.Context, playerID string) ([]models.CareerStatLine, error) {
	query := `SELECT ` + statColumns + ` FROM career_stats WHERE player_id = $1 ORDER BY season_id ASC`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list career stats: %w", err)
	}
	defer rows.Close()

	lines := make([]models.CareerStatLine, 0)
	for rows.Next() {
		var s models.CareerStatLine
		if err := r.scanLine(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan career stat row: %w", err)
		}
		lines = append(lines, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating career stat rows: %w", err)
	}
	return lines, nil
}

func (r *postgresCareerStatsRepository) GetSeason(ctx context.Context, playerID, seasonID string) (*models.CareerStatLine, error) {
	query := `SELECT ` + statColumns + ` FROM career_stats WHERE player_id = $1 AND season_id = $2`
	s := &models.CareerStatLine{}
	row := r.db.QueryRowContext(ctx, query, playerID, seasonID)
	if err := r.scanLine(row, s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatLineNotFound
		}
		return nil, fmt.Errorf("failed to find career stat line: %w", err)
	}
	return s, nil
}

func (r *postgresCareerStatsRepository) DeleteByPlayer(ctx context.Context, playerID string) error {
	query := `DELETE FROM career_stats WHERE player_id = $1`
	result, err := r.db.ExecContext(ctx, query, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete career stats: %w", err)
	}
	return checkAffectedRows(result, ErrStatLineNotFound)
}
