package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/amin-97/sport-vibe/models"
	"github.com/lib/pq"
)

var (
	ErrEditorialNotFound      = errors.New("editorial not found")
	ErrEditorialSlugConflict  = errors.New("editorial slug already in use")
	ErrEditorialAuthorInvalid = errors.New("editorial author conflict or invalid")
)

type EditorialFilter struct {
	League *models.League
	Status *models.ContentStatus
	Limit  int
	Offset int
}

type EditorialRepository interface {
	Create(ctx context.Context, editorial *models.Editorial) error
	GetBySlug(ctx context.Context, slug string) (*models.Editorial, error)
	GetByID(ctx context.Context, id int) (*models.Editorial, error)
	List(ctx context.Context, filter EditorialFilter) ([]*models.Editorial, error)
	Update(ctx context.Context, editorial *models.Editorial) error
	UpdateCoverKey(ctx context.Context, id int, coverKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresEditorialRepository struct {
	db *sql.DB
}

func NewPostgresEditorialRepository(db *sql.DB) EditorialRepository {
	return &postgresEditorialRepository{db: db}
}

const editorialColumns = `id, league, title, slug, summary, content, key_arguments, topics,
	author_id, status, created_at, updated_at, cover_key`

func (r *postgresEditorialRepository) Create(ctx context.Context, editorial *models.Editorial) error {
	query := `
		INSERT INTO editorials
			(league, title, slug, summary, content, key_arguments, topics, author_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		editorial.League,
		editorial.Title,
		editorial.Slug,
		editorial.Summary,
		editorial.Content,
		pq.Array(editorial.KeyArguments),
		pq.Array(editorial.Topics),
		editorial.AuthorID,
		editorial.Status,
	).Scan(&editorial.ID, &editorial.CreatedAt, &editorial.UpdatedAt)

	if err != nil {
		return mapEditorialError(err)
	}
	return nil
}

func mapEditorialError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "editorials_slug_key" {
				return ErrEditorialSlugConflict
			}
		case "23503":
			if pqErr.Constraint == "editorials_author_id_fkey" {
				return ErrEditorialAuthorInvalid
			}
		}
	}
	return fmt.Errorf("editorial repository: %w", err)
}

func (r *postgresEditorialRepository) scanEditorial(rowScanner interface {
	Scan(dest ...interface{}) error
}, e *models.Editorial) error {
	return rowScanner.Scan(
		&e.ID,
		&e.League,
		&e.Title,
		&e.Slug,
		&e.Summary,
		&e.Content,
		pq.Array(&e.KeyArguments),
		pq.Array(&e.Topics),
		&e.AuthorID,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.CoverKey,
	)
}

func (r *postgresEditorialRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Editorial, error) {
	e := &models.Editorial{}
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := r.scanEditorial(row, e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEditorialNotFound
		}
		return nil, fmt.Errorf("failed to find editorial: %w", err)
	}
	return e, nil
}

func (r *postgresEditorialRepository) GetBySlug(ctx context.Context, slug string) (*models.Editorial, error) {
	query := `SELECT ` + editorialColumns + ` FROM editorials WHERE slug = $1`
	return r.findOne(ctx, query, slug)
}

func (r *postgresEditorialRepository) GetByID(ctx context.Context, id int) (*models.Editorial, error) {
	query := `SELECT ` + editorialColumns + ` FROM editorials WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresEditorialRepository) List(ctx context.Context, filter EditorialFilter) ([]*models.Editorial, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + editorialColumns + ` FROM editorials`)

	var conditions []string
	var args []interface{}
	if filter.League != nil {
		args = append(args, *filter.League)
		conditions = append(conditions, fmt.Sprintf("league = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")
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
		return nil, fmt.Errorf("failed to list editorials: %w", err)
	}
	defer rows.Close()

	editorials := make([]*models.Editorial, 0)
	for rows.Next() {
		var e models.Editorial
		if err := r.scanEditorial(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan editorial row: %w", err)
		}
		editorials = append(editorials, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating editorial rows: %w", err)
	}
	return editorials, nil
}

func (r *postgresEditorialRepository) Update(ctx context.Context, editorial *models.Editorial) error {
	query := `
		UPDATE editorials
		SET title = $1, summary = $2, content = $3, key_arguments = $4,
			topics = $5, status = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		editorial.Title,
		editorial.Summary,
		editorial.Content,
		pq.Array(editorial.KeyArguments),
		pq.Array(editorial.Topics),
		editorial.Status,
		editorial.ID,
	).Scan(&editorial.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEditorialNotFound
		}
		return mapEditorialError(err)
	}
	return nil
}

func (r *postgresEditorialRepository) UpdateCoverKey(ctx context.Context, id int, coverKey *string) error {
	query := `UPDATE editorials SET cover_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, coverKey, id)
	if err != nil {
		return fmt.Errorf("failed to update editorial cover: %w", err)
	}
	return checkAffectedRows(result, ErrEditorialNotFound)
}

func (r *postgresEditorialRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM editorials WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete editorial: %w", err)
	}
	return checkAffectedRows(result, ErrEditorialNotFound)
}
