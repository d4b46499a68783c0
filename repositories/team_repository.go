package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amin-97/sport-vibe/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*models.Team, error)
	GetByAbbreviation(ctx context.Context, abbreviation string) (*models.Team, error)
	List(ctx context.Context, conference *models.Conference) ([]*models.Team, error)
	UpdateTotalSalary(ctx context.Context, exec SQLExecutor, id string, totalSalary int64) error
	UpdateLogoKey(ctx context.Context, id string, logoKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, full_name, abbreviation, nickname, city, state, year_founded, conference, division, total_salary, created_at, logo_key`

func (r *postgresTeamRepository) scanTeam(rowScanner interface {
	Scan(dest ...interface{}) error
}, t *models.Team) error {
	return rowScanner.Scan(
		&t.ID,
		&t.FullName,
		&t.Abbreviation,
		&t.Nickname,
		&t.City,
		&t.State,
		&t.YearFounded,
		&t.Conference,
		&t.Division,
		&t.TotalSalary,
		&t.CreatedAt,
		&t.LogoKey,
	)
}

func (r *postgresTeamRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Team, error) {
	t := &models.Team{}
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := r.scanTeam(row, t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresTeamRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE abbreviation = $1`
	return r.findOne(ctx, query, abbreviation)
}

func (r *postgresTeamRepository) List(ctx context.Context, conference *models.Conference) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams`
	args := []interface{}{}
	if conference != nil {
		query += ` WHERE conference = $1`
		args = append(args, *conference)
	}
	query += ` ORDER BY full_name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := r.scanTeam(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) UpdateTotalSalary(ctx context.Context, exec SQLExecutor, id string, totalSalary int64) error {
	if exec == nil {
		exec = r.db
	}
	query := `UPDATE teams SET total_salary = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, totalSalary, id)
	if err != nil {
		return fmt.Errorf("failed to update team total salary: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update team logo: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
