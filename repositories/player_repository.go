package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amin-97/sport-vibe/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Player, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Player, error)
	// TransferToTeam moves a player to a new team and stamps the trade
	// date, inside the caller's transaction.
	TransferToTeam(ctx context.Context, exec SQLExecutor, playerID, newTeamID string, tradedAt time.Time) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, team_id, name, number, position, salary, contract_type,
	contract_sign_date, last_trade_date, extension_date,
	no_trade_clause, bird_rights, sign_and_trade, taxpayer_mle, bi_annual`

func (r *postgresPlayerRepository) scanPlayer(rowScanner interface {
	Scan(dest ...interface{}) error
}, p *models.Player) error {
	return rowScanner.Scan(
		&p.ID,
		&p.TeamID,
		&p.Name,
		&p.Number,
		&p.Position,
		&p.Salary,
		&p.ContractType,
		&p.ContractSignDate,
		&p.LastTradeDate,
		&p.ExtensionDate,
		&p.NoTradeClause,
		&p.BirdRights,
		&p.SignAndTrade,
		&p.TaxpayerMLE,
		&p.BiAnnual,
	)
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players
			(id, team_id, name, number, position, salary, contract_type,
			 contract_sign_date, last_trade_date, extension_date,
			 no_trade_clause, bird_rights, sign_and_trade, taxpayer_mle, bi_annual)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		player.ID,
		player.TeamID,
		player.Name,
		player.Number,
		player.Position,
		player.Salary,
		player.ContractType,
		player.ContractSignDate,
		player.LastTradeDate,
		player.ExtensionDate,
		player.NoTradeClause,
		player.BirdRights,
		player.SignAndTrade,
		player.TaxpayerMLE,
		player.BiAnnual,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "players_team_id_fkey" {
				return ErrPlayerTeamInvalid
			}
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	p := &models.Player{}
	row := r.db.QueryRowContext(ctx, query, id)
	if err := r.scanPlayer(row, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to find player: %w", err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := r.scanPlayer(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = $1 ORDER BY salary DESC`
	return r.list(ctx, query, teamID)
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY($1)`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *postgresPlayerRepository) TransferToTeam(ctx context.Context, exec SQLExecutor, playerID, newTeamID string, tradedAt time.Time) error {
	if exec == nil {
		exec = r.db
	}
	query := `UPDATE players SET team_id = $1, last_trade_date = $2 WHERE id = $3`
	result, err := exec.ExecContext(ctx, query, newTeamID, tradedAt, playerID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "players_team_id_fkey" {
				return ErrPlayerTeamInvalid
			}
		}
		return fmt.Errorf("failed to transfer player: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
