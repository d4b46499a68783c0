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
	ErrTradeExceptionNotFound    = errors.New("trade exception not found")
	ErrTradeExceptionTeamInvalid = errors.New("trade exception team conflict or invalid")
)

// TradeExceptionRepository persists the exception ledger. Expired rows are
// never deleted by the engine; expiry is a read-time filter applied by the
// ledger itself, so List methods return everything.
type TradeExceptionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, exception *models.TradeException) error
	ListByTeam(ctx context.Context, teamID string) ([]models.TradeException, error)
	ListAll(ctx context.Context) ([]models.TradeException, error)
	UpdateAmount(ctx context.Context, exec SQLExecutor, id string, amount int64) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresTradeExceptionRepository struct {
	db *sql.DB
}

func NewPostgresTradeExceptionRepository(db *sql.DB) TradeExceptionRepository {
	return &postgresTradeExceptionRepository{db: db}
}

const exceptionColumns = `id, team_id, amount, original_player, created_at, expires_at`

func (r *postgresTradeExceptionRepository) Create(ctx context.Context, exec SQLExecutor, exception *models.TradeException) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO trade_exceptions (id, team_id, amount, original_player, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := exec.ExecContext(ctx, query,
		exception.ID,
		exception.TeamID,
		exception.Amount,
		exception.OriginalPlayer,
		exception.CreatedAt,
		exception.ExpiresAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "trade_exceptions_team_id_fkey" {
				return ErrTradeExceptionTeamInvalid
			}
		}
		return fmt.Errorf("failed to create trade exception: %w", err)
	}
	return nil
}

func (r *postgresTradeExceptionRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.TradeException, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trade exceptions: %w", err)
	}
	defer rows.Close()

	exceptions := make([]models.TradeException, 0)
	for rows.Next() {
		var e models.TradeException
		if err := rows.Scan(&e.ID, &e.TeamID, &e.Amount, &e.OriginalPlayer, &e.CreatedAt, &e.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade exception row: %w", err)
		}
		exceptions = append(exceptions, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade exception rows: %w", err)
	}
	return exceptions, nil
}

func (r *postgresTradeExceptionRepository) ListByTeam(ctx context.Context, teamID string) ([]models.TradeException, error) {
	query := `SELECT ` + exceptionColumns + ` FROM trade_exceptions WHERE team_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, teamID)
}

func (r *postgresTradeExceptionRepository) ListAll(ctx context.Context) ([]models.TradeException, error) {
	query := `SELECT ` + exceptionColumns + ` FROM trade_exceptions ORDER BY created_at ASC`
	return r.list(ctx, query)
}

func (r *postgresTradeExceptionRepository) UpdateAmount(ctx context.Context, exec SQLExecutor, id string, amount int64) error {
	if exec == nil {
		exec = r.db
	}
	query := `UPDATE trade_exceptions SET amount = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to update trade exception amount: %w", err)
	}
	return checkAffectedRows(result, ErrTradeExceptionNotFound)
}

func (r *postgresTradeExceptionRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	if exec == nil {
		exec = r.db
	}
	query := `DELETE FROM trade_exceptions WHERE id = $1`
	result, err := exec.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade exception: %w", err)
	}
	return checkAffectedRows(result, ErrTradeExceptionNotFound)
}
