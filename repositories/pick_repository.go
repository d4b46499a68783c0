package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amin-97/sport-vibe/models"
	"github.com/lib/pq"
)

var (
	ErrDraftPickNotFound    = errors.New("draft pick not found")
	ErrDraftPickTeamInvalid = errors.New("draft pick team conflict or invalid")
)

type DraftPickRepository interface {
	Create(ctx context.Context, pick *models.DraftPick) error
	GetByID(ctx context.Context, id string) (*models.DraftPick, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.DraftPick, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.DraftPick, error)
	// TransferToTeam reassigns pick ownership inside the caller's
	// transaction.
	TransferToTeam(ctx context.Context, exec SQLExecutor, pickID, newTeamID string) error
}

type postgresDraftPickRepository struct {
	db *sql.DB
}

func NewPostgresDraftPickRepository(db *sql.DB) DraftPickRepository {
	return &postgresDraftPickRepository{db: db}
}

const pickColumns = `id, team_id, year, round, protection, swap`

func (r *postgresDraftPickRepository) scanPick(rowScanner interface {
	Scan(dest ...interface{}) error
}, p *models.DraftPick) error {
	return rowScanner.Scan(&p.ID, &p.TeamID, &p.Year, &p.Round, &p.Protection, &p.Swap)
}

func (r *postgresDraftPickRepository) Create(ctx context.Context, pick *models.DraftPick) error {
	query := `
		INSERT INTO draft_picks (id, team_id, year, round, protection, swap)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		pick.ID, pick.TeamID, pick.Year, pick.Round, pick.Protection, pick.Swap)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "draft_picks_team_id_fkey" {
				return ErrDraftPickTeamInvalid
			}
		}
		return fmt.Errorf("failed to create draft pick: %w", err)
	}
	return nil
}

func (r *postgresDraftPickRepository) GetByID(ctx context.Context, id string) (*models.DraftPick, error) {
	query := `SELECT ` + pickColumns + ` FROM draft_picks WHERE id = $1`
	p := &models.DraftPick{}
	row := r.db.QueryRowContext(ctx, query, id)
	if err := r.scanPick(row, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDraftPickNotFound
		}
		return nil, fmt.Errorf("failed to find draft pick: %w", err)
	}
	return p, nil
}

func (r *postgresDraftPickRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.DraftPick, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft picks: %w", err)
	}
	defer rows.Close()

	picks := make([]models.DraftPick, 0)
	for rows.Next() {
		var p models.DraftPick
		if err := r.scanPick(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan draft pick row: %w", err)
		}
		picks = append(picks, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating draft pick rows: %w", err)
	}
	return picks, nil
}

func (r *postgresDraftPickRepository) ListByTeam(ctx context.Context, teamID string) ([]models.DraftPick, error) {
	query := `SELECT ` + pickColumns + ` FROM draft_picks WHERE team_id = $1 ORDER BY year ASC, round ASC`
	return r.list(ctx, query, teamID)
}

func (r *postgresDraftPickRepository) ListByIDs(ctx context.Context, ids []string) ([]models.DraftPick, error) {
	query := `SELECT ` + pickColumns + ` FROM draft_picks WHERE id = ANY($1)`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *postgresDraftPickRepository) TransferToTeam(ctx context.Context, exec SQLExecutor, pickID, newTeamID string) error {
	if exec == nil {
		exec = r.db
	}
	query := `UPDATE draft_picks SET team_id = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, newTeamID, pickID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "draft_picks_team_id_fkey" {
				return ErrDraftPickTeamInvalid
			}
		}
		return fmt.Errorf("failed to transfer draft pick: %w", err)
	}
	return checkAffectedRows(result, ErrDraftPickNotFound)
}
