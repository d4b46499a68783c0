package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/amin-97/sport-vibe/models"
	"github.com/lib/pq"
)

var (
	ErrWrestlingResultNotFound     = errors.New("wrestling result not found")
	ErrWrestlingResultSlugConflict = errors.New("wrestling result slug already in use")
)

type WrestlingResultFilter struct {
	Promotion *models.Promotion
	Status    *models.ContentStatus
	Limit     int
	Offset    int
}

type WrestlingResultRepository interface {
	Create(ctx context.Context, result *models.WrestlingResult) error
	GetBySlug(ctx context.Context, slug string) (*models.WrestlingResult, error)
	GetByID(ctx context.Context, id int) (*models.WrestlingResult, error)
	List(ctx context.Context, filter WrestlingResultFilter) ([]*models.WrestlingResult, error)
	Update(ctx context.Context, result *models.WrestlingResult) error
	UpdateCoverKey(ctx context.Context, id int, coverKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresWrestlingResultRepository struct {
	db *sql.DB
}

func NewPostgresWrestlingResultRepository(db *sql.DB) WrestlingResultRepository {
	return &postgresWrestlingResultRepository{db: db}
}

const wrestlingColumns = `id, name, slug, date, venue, promotion, matches, author_id, status, created_at, updated_at, cover_key`

func (r *postgresWrestlingResultRepository) Create(ctx context.Context, result *models.WrestlingResult) error {
	matchesJSON, err := json.Marshal(result.Matches)
	if err != nil {
		return fmt.Errorf("failed to marshal wrestling matches: %w", err)
	}

	query := `
		INSERT INTO wrestling_results (name, slug, date, venue, promotion, matches, author_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		result.Name,
		result.Slug,
		result.Date,
		result.Venue,
		result.Promotion,
		matchesJSON,
		result.AuthorID,
		result.Status,
	).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "wrestling_results_slug_key" {
				return ErrWrestlingResultSlugConflict
			}
		}
		return fmt.Errorf("failed to create wrestling result: %w", err)
	}
	return nil
}

func (r *postgresWrestlingResultRepository) scanResult(rowScanner interface {
	Scan(dest ...interface{}) error
}) (*models.WrestlingResult, error) {
	var w models.WrestlingResult
	var matchesJSON []byte

	err := rowScanner.Scan(
		&w.ID,
		&w.Name,
		&w.Slug,
		&w.Date,
		&w.Venue,
		&w.Promotion,
		&matchesJSON,
		&w.AuthorID,
		&w.Status,
		&w.CreatedAt,
		&w.UpdatedAt,
		&w.CoverKey,
	)
	if err != nil {
		return nil, err
	}

	if len(matchesJSON) > 0 {
		if err := json.Unmarshal(matchesJSON, &w.Matches); err != nil {
			return nil, fmt.Errorf("failed to unmarshal wrestling matches: %w", err)
		}
	}
	return &w, nil
}

func (r *postgresWrestlingResultRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.WrestlingResult, error) {
	w, err := r.scanResult(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWrestlingResultNotFound
		}
		return nil, fmt.Errorf("failed to find wrestling result: %w", err)
	}
	return w, nil
}

func (r *postgresWrestlingResultRepository) GetBySlug(ctx context.Context, slug string) (*models.WrestlingResult, error) {
	query := `SELECT ` + wrestlingColumns + ` FROM wrestling_results WHERE slug = $1`
	return r.findOne(ctx, query, slug)
}

func (r *postgresWrestlingResultRepository) GetByID(ctx context.Context, id int) (*models.WrestlingResult, error) {
	query := `SELECT ` + wrestlingColumns + ` FROM wrestling_results WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresWrestlingResultRepository) List(ctx context.Context, filter WrestlingResultFilter) ([]*models.WrestlingResult, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + wrestlingColumns + ` FROM wrestling_results`)

	var conditions []string
	var args []interface{}
	if filter.Promotion != nil {
		args = append(args, *filter.Promotion)
		conditions = append(conditions, fmt.Sprintf("promotion = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY date DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wrestling results: %w", err)
	}
	defer rows.Close()

	results := make([]*models.WrestlingResult, 0)
	for rows.Next() {
		w, err := r.scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wrestling result row: %w", err)
		}
		results = append(results, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wrestling result rows: %w", err)
	}
	return results, nil
}

func (r *postgresWrestlingResultRepository) Update(ctx context.Context, result *models.WrestlingResult) error {
	matchesJSON, err := json.Marshal(result.Matches)
	if err != nil {
		return fmt.Errorf("failed to marshal wrestling matches: %w", err)
	}

	query := `
		UPDATE wrestling_results
		SET name = $1, date = $2, venue = $3, promotion = $4, matches = $5,
			status = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query,
		result.Name,
		result.Date,
		result.Venue,
		result.Promotion,
		matchesJSON,
		result.Status,
		result.ID,
	).Scan(&result.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWrestlingResultNotFound
		}
		return fmt.Errorf("failed to update wrestling result: %w", err)
	}
	return nil
}

func (r *postgresWrestlingResultRepository) UpdateCoverKey(ctx context.Context, id int, coverKey *string) error {
	query := `UPDATE wrestling_results SET cover_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, coverKey, id)
	if err != nil {
		return fmt.Errorf("failed to update wrestling result cover: %w", err)
	}
	return checkAffectedRows(result, ErrWrestlingResultNotFound)
}

func (r *postgresWrestlingResultRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM wrestling_results WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete wrestling result: %w", err)
	}
	return checkAffectedRows(result, ErrWrestlingResultNotFound)
}
