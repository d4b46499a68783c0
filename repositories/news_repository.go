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
	ErrNewsNotFound      = errors.New("news article not found")
	ErrNewsSlugConflict  = errors.New("news slug already in use")
	ErrNewsAuthorInvalid = errors.New("news author conflict or invalid")
)

// NewsFilter narrows List queries. Nil fields are skipped.
type NewsFilter struct {
	League   *models.League
	Category *models.NewsCategory
	Status   *models.ContentStatus
	Featured *bool
	Limit    int
	Offset   int
}

type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	GetBySlug(ctx context.Context, slug string) (*models.News, error)
	GetByID(ctx context.Context, id int) (*models.News, error)
	List(ctx context.Context, filter NewsFilter) ([]*models.News, error)
	Update(ctx context.Context, news *models.News) error
	UpdateCoverKey(ctx context.Context, id int, coverKey *string) error
	IncrementViews(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

type postgresNewsRepository struct {
	db *sql.DB
}

func NewPostgresNewsRepository(db *sql.DB) NewsRepository {
	return &postgresNewsRepository{db: db}
}

const newsColumns = `id, league, title, slug, description, content, category,
	tags, teams, players, author_id, status, featured, views, created_at, updated_at, cover_key`

func (r *postgresNewsRepository) Create(ctx context.Context, news *models.News) error {
	query := `
		INSERT INTO news
			(league, title, slug, description, content, category, tags, teams, players,
			 author_id, status, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, views, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		news.League,
		news.Title,
		news.Slug,
		news.Description,
		news.Content,
		news.Category,
		pq.Array(news.Tags),
		pq.Array(news.Teams),
		pq.Array(news.Players),
		news.AuthorID,
		news.Status,
		news.Featured,
	).Scan(&news.ID, &news.Views, &news.CreatedAt, &news.UpdatedAt)

	if err != nil {
		return mapNewsError(err)
	}
	return nil
}

func mapNewsError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "news_slug_key" {
				return ErrNewsSlugConflict
			}
		case "23503":
			if pqErr.Constraint == "news_author_id_fkey" {
				return ErrNewsAuthorInvalid
			}
		}
	}
	return fmt.Errorf("news repository: %w", err)
}

func (r *postgresNewsRepository) scanNews(rowScanner interface {
	Scan(dest ...interface{}) error
}, n *models.News) error {
	return rowScanner.Scan(
		&n.ID,
		&n.League,
		&n.Title,
		&n.Slug,
		&n.Description,
		&n.Content,
		&n.Category,
		pq.Array(&n.Tags),
		pq.Array(&n.Teams),
		pq.Array(&n.Players),
		&n.AuthorID,
		&n.Status,
		&n.Featured,
		&n.Views,
		&n.CreatedAt,
		&n.UpdatedAt,
		&n.CoverKey,
	)
}

func (r *postgresNewsRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.News, error) {
	n := &models.News{}
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := r.scanNews(row, n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to find news article: %w", err)
	}
	return n, nil
}

func (r *postgresNewsRepository) GetBySlug(ctx context.Context, slug string) (*models.News, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE slug = $1`
	return r.findOne(ctx, query, slug)
}

func (r *postgresNewsRepository) GetByID(ctx context.Context, id int) (*models.News, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresNewsRepository) List(ctx context.Context, filter NewsFilter) ([]*models.News, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + newsColumns + ` FROM news`)

	var conditions []string
	var args []interface{}
	addCondition := func(column string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.League != nil {
		addCondition("league", *filter.League)
	}
	if filter.Category != nil {
		addCondition("category", *filter.Category)
	}
	if filter.Status != nil {
		addCondition("status", *filter.Status)
	}
	if filter.Featured != nil {
		addCondition("featured", *filter.Featured)
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
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	articles := make([]*models.News, 0)
	for rows.Next() {
		var n models.News
		if err := r.scanNews(rows, &n); err != nil {
			return nil, fmt.Errorf("failed to scan news row: %w", err)
		}
		articles = append(articles, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news rows: %w", err)
	}
	return articles, nil
}

func (r *postgresNewsRepository) Update(ctx context.Context, news *models.News) error {
	query := `
		UPDATE news
		SET title = $1, description = $2, content = $3, category = $4,
			tags = $5, teams = $6, players = $7, status = $8, featured = $9,
			updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		news.Title,
		news.Description,
		news.Content,
		news.Category,
		pq.Array(news.Tags),
		pq.Array(news.Teams),
		pq.Array(news.Players),
		news.Status,
		news.Featured,
		news.ID,
	).Scan(&news.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNewsNotFound
		}
		return mapNewsError(err)
	}
	return nil
}

func (r *postgresNewsRepository) UpdateCoverKey(ctx context.Context, id int, coverKey *string) error {
	query := `UPDATE news SET cover_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, coverKey, id)
	if err != nil {
		return fmt.Errorf("failed to update news cover: %w", err)
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}

func (r *postgresNewsRepository) IncrementViews(ctx context.Context, id int) error {
	query := `UPDATE news SET views = views + 1 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment news views: %w", err)
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}

func (r *postgresNewsRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM news WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete news article: %w", err)
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}
