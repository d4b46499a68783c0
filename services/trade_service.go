package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amin-97/sport-vibe/live"
	"github.com/amin-97/sport-vibe/models"
	"github.com/amin-97/sport-vibe/repositories"
	"github.com/amin-97/sport-vibe/traderules"
)

// TradeDeskRoom is the hub room trade events broadcast to.
const TradeDeskRoom = "trade-desk"

// TradeAssetInput names one outgoing asset. ToTeamID may be empty in a
// two-team trade, where the destination is unambiguous.
type TradeAssetInput struct {
	ID       string `json:"id"`
	ToTeamID string `json:"to_team_id,omitempty"`
}

type TradeTeamInput struct {
	TeamID  string            `json:"team_id"`
	Players []TradeAssetInput `json:"players,omitempty"`
	Picks   []TradeAssetInput `json:"picks,omitempty"`
}

type TradeInput struct {
	Teams []TradeTeamInput `json:"teams"`
}

// ValidationReport pairs the rule-engine result with the per-team salary
// context the trade desk displays alongside it.
type ValidationReport struct {
	Result   traderules.Result                `json:"result"`
	Salaries map[string]traderules.SalaryInfo `json:"salaries"`
}

type TradeService interface {
	ValidateTrade(ctx context.Context, input TradeInput) (*ValidationReport, error)
	ExecuteTrade(ctx context.Context, input TradeInput, executedBy int) (*models.Trade, *ValidationReport, error)
	GetTrade(ctx context.Context, id int) (*models.Trade, error)
	ListTrades(ctx context.Context, limit, offset int) ([]*models.Trade, error)
	ListTeamTrades(ctx context.Context, teamID string, limit int) ([]*models.Trade, error)
	TeamExceptions(ctx context.Context, teamID string) ([]models.TradeException, error)
	ListExceptions(ctx context.Context) ([]models.TradeException, error)
}

type tradeService struct {
	db            *sql.DB
	teamRepo      repositories.TeamRepository
	playerRepo    repositories.PlayerRepository
	pickRepo      repositories.DraftPickRepository
	exceptionRepo repositories.TradeExceptionRepository
	tradeRepo     repositories.TradeRepository
	rules         traderules.Config
	hub           *live.Hub
	logger        *slog.Logger
}

func NewTradeService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	pickRepo repositories.DraftPickRepository,
	exceptionRepo repositories.TradeExceptionRepository,
	tradeRepo repositories.TradeRepository,
	rules traderules.Config,
	hub *live.Hub,
	logger *slog.Logger,
) TradeService {
	return &tradeService{
		db:            db,
		teamRepo:      teamRepo,
		playerRepo:    playerRepo,
		pickRepo:      pickRepo,
		exceptionRepo: exceptionRepo,
		tradeRepo:     tradeRepo,
		rules:         rules,
		hub:           hub,
		logger:        logger,
	}
}

// assembledTrade carries the fully-resolved proposal plus the routing the
// execution step needs.
type assembledTrade struct {
	proposal traderules.TradeProposal
	// destinations maps asset ID to receiving team ID.
	playerDest map[string]string
	pickDest   map[string]string
	ledger     *traderules.ExceptionLedger
}

func (s *tradeService) assemble(ctx context.Context, input TradeInput) (*assembledTrade, error) {
	if len(input.Teams) < 2 {
		return nil, ErrTradeTeamsRequired
	}

	a := &assembledTrade{
		proposal: traderules.TradeProposal{
			OutgoingPlayers: make(map[string][]models.Player),
			OutgoingPicks:   make(map[string][]models.DraftPick),
		},
		playerDest: make(map[string]string),
		pickDest:   make(map[string]string),
		ledger:     traderules.NewExceptionLedger(s.rules),
	}

	teamIDs := make(map[string]bool, len(input.Teams))
	for _, teamInput := range input.Teams {
		// A duplicate entry would load the team's exceptions twice and
		// inflate its salary-match allowance.
		if teamIDs[teamInput.TeamID] {
			return nil, fmt.Errorf("%w: team %s appears more than once", ErrValidationFailed, teamInput.TeamID)
		}
		teamIDs[teamInput.TeamID] = true
	}

	for _, teamInput := range input.Teams {
		team, err := s.teamRepo.GetByID(ctx, teamInput.TeamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrTradeTeamUnknown, teamInput.TeamID)
			}
			return nil, fmt.Errorf("failed to load team %s: %w", teamInput.TeamID, err)
		}

		team.Roster, err = s.playerRepo.ListByTeam(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load roster for %s: %w", team.ID, err)
		}
		team.FuturePicks, err = s.pickRepo.ListByTeam(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load picks for %s: %w", team.ID, err)
		}
		a.proposal.Teams = append(a.proposal.Teams, team)

		exceptions, err := s.exceptionRepo.ListByTeam(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load trade exceptions for %s: %w", team.ID, err)
		}
		a.ledger.Load(exceptions)

		rosterByID := make(map[string]models.Player, len(team.Roster))
		for _, p := range team.Roster {
			rosterByID[p.ID] = p
		}
		for _, asset := range teamInput.Players {
			player, ok := rosterByID[asset.ID]
			if !ok {
				return nil, fmt.Errorf("%w: player %s is not on team %s", ErrTradeAssetMismatch, asset.ID, team.ID)
			}
			dest, err := resolveDestination(asset, team.ID, input.Teams, teamIDs)
			if err != nil {
				return nil, err
			}
			a.proposal.OutgoingPlayers[team.ID] = append(a.proposal.OutgoingPlayers[team.ID], player)
			a.playerDest[player.ID] = dest
		}

		picksByID := make(map[string]models.DraftPick, len(team.FuturePicks))
		for _, p := range team.FuturePicks {
			picksByID[p.ID] = p
		}
		for _, asset := range teamInput.Picks {
			pick, ok := picksByID[asset.ID]
			if !ok {
				return nil, fmt.Errorf("%w: pick %s is not owned by team %s", ErrTradeAssetMismatch, asset.ID, team.ID)
			}
			dest, err := resolveDestination(asset, team.ID, input.Teams, teamIDs)
			if err != nil {
				return nil, err
			}
			a.proposal.OutgoingPicks[team.ID] = append(a.proposal.OutgoingPicks[team.ID], pick)
			a.pickDest[pick.ID] = dest
		}
	}

	return a, nil
}

// resolveDestination picks the receiving team for an asset. Two-team trades
// infer it; larger trades must route every asset explicitly.
func resolveDestination(asset TradeAssetInput, fromTeamID string, teams []TradeTeamInput, known map[string]bool) (string, error) {
	if asset.ToTeamID != "" {
		if !known[asset.ToTeamID] || asset.ToTeamID == fromTeamID {
			return "", fmt.Errorf("%w: invalid destination %s for asset %s", ErrValidationFailed, asset.ToTeamID, asset.ID)
		}
		return asset.ToTeamID, nil
	}
	if len(teams) == 2 {
		for _, t := range teams {
			if t.TeamID != fromTeamID {
				return t.TeamID, nil
			}
		}
	}
	return "", fmt.Errorf("%w: asset %s needs an explicit destination in a multi-team trade", ErrValidationFailed, asset.ID)
}

func (s *tradeService) report(a *assembledTrade, validator *traderules.TradeValidator, result traderules.Result) *ValidationReport {
	salaries := make(map[string]traderules.SalaryInfo, len(a.proposal.Teams))
	for _, team := range a.proposal.Teams {
		salaries[team.ID] = validator.SalaryCalculator().CalculateTeamSalary(team.ID, team.Roster)
	}
	return &ValidationReport{Result: result, Salaries: salaries}
}

func (s *tradeService) ValidateTrade(ctx context.Context, input TradeInput) (*ValidationReport, error) {
	a, err := s.assemble(ctx, input)
	if err != nil {
		return nil, err
	}

	validator := traderules.NewTradeValidator(s.rules, a.ledger)
	result := validator.ValidateTrade(a.proposal, time.Now())

	report := s.report(a, validator, result)
	s.hub.BroadcastToRoom(TradeDeskRoom, live.EventTradeValidated, report)
	return report, nil
}

func (s *tradeService) ExecuteTrade(ctx context.Context, input TradeInput, executedBy int) (*models.Trade, *ValidationReport, error) {
	a, err := s.assemble(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	validator := traderules.NewTradeValidator(s.rules, a.ledger)
	now := time.Now()
	result := validator.ValidateTrade(a.proposal, now)
	report := s.report(a, validator, result)
	if !result.IsValid() {
		return nil, report, ErrTradeInvalid
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin trade transaction: %w", err)
	}
	defer tx.Rollback()

	trade := &models.Trade{
		TradedPlayers: make(map[string][]models.TradedPlayer),
		TradedPicks:   make(map[string][]models.DraftPick),
		ExecutedBy:    executedBy,
		Status:        models.TradeCompleted,
	}

	for _, team := range a.proposal.Teams {
		trade.TeamIDs = append(trade.TeamIDs, team.ID)

		for _, player := range a.proposal.OutgoingPlayers[team.ID] {
			dest := a.playerDest[player.ID]
			if err := s.playerRepo.TransferToTeam(ctx, tx, player.ID, dest, now); err != nil {
				return nil, nil, fmt.Errorf("failed to transfer player %s: %w", player.ID, err)
			}
			trade.TradedPlayers[team.ID] = append(trade.TradedPlayers[team.ID], models.TradedPlayer{
				PlayerID: player.ID,
				Name:     player.Name,
				FromTeam: team.ID,
				Number:   player.Number,
				Position: player.Position,
				Salary:   player.Salary,
			})
		}

		for _, pick := range a.proposal.OutgoingPicks[team.ID] {
			if err := s.pickRepo.TransferToTeam(ctx, tx, pick.ID, a.pickDest[pick.ID]); err != nil {
				return nil, nil, fmt.Errorf("failed to transfer pick %s: %w", pick.ID, err)
			}
			trade.TradedPicks[team.ID] = append(trade.TradedPicks[team.ID], pick)
		}

		if err := s.settleExceptions(ctx, tx, a, validator, team, now); err != nil {
			return nil, nil, err
		}
	}

	if err := s.tradeRepo.Create(ctx, tx, trade); err != nil {
		return nil, nil, fmt.Errorf("failed to record trade: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit trade: %w", err)
	}

	s.logger.InfoContext(ctx, "trade executed",
		slog.Int("trade_id", trade.ID),
		slog.Any("teams", trade.TeamIDs),
		slog.Int("executed_by", executedBy))
	s.hub.BroadcastToRoom(TradeDeskRoom, live.EventTradeExecuted, trade)

	return trade, report, nil
}

// settleExceptions updates the persisted ledger for one side of the trade:
// an outgoing surplus banks a new exception, an incoming overage beyond the
// team's own match allowance spends existing ones, oldest first.
func (s *tradeService) settleExceptions(
	ctx context.Context,
	tx repositories.SQLExecutor,
	a *assembledTrade,
	validator *traderules.TradeValidator,
	team *models.Team,
	now time.Time,
) error {
	var outgoingSalary, incomingSalary int64
	var largestOutgoing models.Player
	for _, p := range a.proposal.OutgoingPlayers[team.ID] {
		outgoingSalary += p.Salary
		if p.Salary > largestOutgoing.Salary {
			largestOutgoing = p
		}
	}
	for playerID, dest := range a.playerDest {
		if dest != team.ID {
			continue
		}
		for _, players := range a.proposal.OutgoingPlayers {
			for _, p := range players {
				if p.ID == playerID {
					incomingSalary += p.Salary
				}
			}
		}
	}

	if outgoingSalary > incomingSalary {
		exception := a.ledger.Create(team.ID, outgoingSalary, incomingSalary, largestOutgoing.Name, now)
		if exception != nil {
			if err := s.exceptionRepo.Create(ctx, tx, exception); err != nil {
				return fmt.Errorf("failed to persist trade exception for %s: %w", team.ID, err)
			}
		}
		return nil
	}

	info := validator.SalaryCalculator().CalculateTeamSalary(team.ID, team.Roster)
	overage := incomingSalary - traderules.MatchAllowance(s.rules, info, outgoingSalary)
	if overage <= 0 {
		return nil
	}

	consumed := a.ledger.Consume(team.ID, overage, now)
	for _, usage := range consumed.Used {
		remaining := false
		for _, e := range a.ledger.TeamExceptions(team.ID) {
			if e.ID == usage.ExceptionID {
				remaining = true
				if err := s.exceptionRepo.UpdateAmount(ctx, tx, e.ID, e.Amount); err != nil {
					return fmt.Errorf("failed to update trade exception %s: %w", e.ID, err)
				}
				break
			}
		}
		if !remaining {
			if err := s.exceptionRepo.Delete(ctx, tx, usage.ExceptionID); err != nil {
				return fmt.Errorf("failed to delete spent trade exception %s: %w", usage.ExceptionID, err)
			}
		}
	}
	return nil
}

func (s *tradeService) GetTrade(ctx context.Context, id int) (*models.Trade, error) {
	trade, err := s.tradeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTradeNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return trade, nil
}

func (s *tradeService) ListTrades(ctx context.Context, limit, offset int) ([]*models.Trade, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	trades, err := s.tradeRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

func (s *tradeService) ListTeamTrades(ctx context.Context, teamID string, limit int) ([]*models.Trade, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	trades, err := s.tradeRepo.ListByTeam(ctx, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list team trades: %w", err)
	}
	return trades, nil
}

// TeamExceptions returns the team's active exception balances.
func (s *tradeService) TeamExceptions(ctx context.Context, teamID string) ([]models.TradeException, error) {
	exceptions, err := s.exceptionRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trade exceptions: %w", err)
	}
	ledger := traderules.NewExceptionLedger(s.rules)
	ledger.Load(exceptions)
	return ledger.ActiveExceptions(teamID, time.Now()), nil
}

// ListExceptions returns every persisted exception across the league, expired
// rows included, for the trade desk's league-wide view.
func (s *tradeService) ListExceptions(ctx context.Context) ([]models.TradeException, error) {
	exceptions, err := s.exceptionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trade exceptions: %w", err)
	}
	return exceptions, nil
}
