package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amin-97/sport-vibe/models"
	"github.com/lib/pq"
)

var (
	ErrTradeNotFound    = errors.New("trade not found")
	ErrTradeUserInvalid = errors.New("trade executing user conflict or invalid")
)

// TradeRepository stores the trade history. Player and pick packages are
// JSONB snapshots so history survives later roster changes.
type TradeRepository interface {
	Create(ctx context.Context, exec SQLExecutor, trade *models.Trade) error
	GetByID(ctx context.Context, id int) (*models.Trade, error)
	List(ctx context.Context, limit, offset int) ([]*models.Trade, error)
	ListByTeam(ctx context.Context, teamID string, limit int) ([]*models.Trade, error)
}

type postgresTradeRepository struct {
	db *sql.DB
}

func NewPostgresTradeRepository(db *sql.DB) TradeRepository {
	return &postgresTradeRepository{db: db}
}

func (r *postgresTradeRepository) Create(ctx context.Context, exec SQLExecutor, trade *models.Trade) error {
	if exec == nil {
		exec = r.db
	}

	playersJSON, err := json.Marshal(trade.TradedPlayers)
	if err != nil {
		return fmt.Errorf("failed to marshal traded players: %w", err)
	}
	picksJSON, err := json.Marshal(trade.TradedPicks)
	if err != nil {
		return fmt.Errorf("failed to marshal traded picks: %w", err)
	}

	query := `
		INSERT INTO trades (team_ids, traded_players, traded_picks, executed_by, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err = exec.QueryRowContext(ctx, query,
		pq.Array(trade.TeamIDs),
		playersJSON,
		picksJSON,
		trade.ExecutedBy,
		trade.Status,
	).Scan(&trade.ID, &trade.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "trades_executed_by_fkey" {
				return ErrTradeUserInvalid
			}
		}
		return fmt.Errorf("failed to create trade: %w", err)
	}
	return nil
}

func (r *postgresTradeRepository) scanTrade(rowScanner interface {
	Scan(dest ...interface{}) error
}) (*models.Trade, error) {
	var t models.Trade
	var playersJSON, picksJSON []byte

	err := rowScanner.Scan(
		&t.ID,
		pq.Array(&t.TeamIDs),
		&playersJSON,
		&picksJSON,
		&t.ExecutedBy,
		&t.Status,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(playersJSON, &t.TradedPlayers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal traded players: %w", err)
	}
	if len(picksJSON) > 0 {
		if err := json.Unmarshal(picksJSON, &t.TradedPicks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal traded picks: %w", err)
		}
	}
	return &t, nil
}

const tradeColumns = `id, team_ids, traded_players, traded_picks, executed_by, status, created_at`

func (r *postgresTradeRepository) GetByID(ctx context.Context, id int) (*models.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE id = $1`
	t, err := r.scanTrade(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("failed to find trade: %w", err)
	}
	return t, nil
}

func (r *postgresTradeRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Trade, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	trades := make([]*models.Trade, 0)
	for rows.Next() {
		t, err := r.scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		trades = append(trades, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

func (r *postgresTradeRepository) List(ctx context.Context, limit, offset int) ([]*models.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *postgresTradeRepository) ListByTeam(ctx context.Context, teamID string, limit int) ([]*models.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE $1 = ANY(team_ids) ORDER BY created_at DESC LIMIT $2`
	return r.list(ctx, query, teamID, limit)
}
