package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/amin-97/sport-vibe/models"
	"github.com/amin-97/sport-vibe/repositories"
	"github.com/amin-97/sport-vibe/storage"
	"github.com/amin-97/sport-vibe/traderules"
	"golang.org/x/sync/errgroup"
)

// salaryRefreshConcurrency bounds how many teams recompute at once during a
// scheduled refresh.
const salaryRefreshConcurrency = 8

type TeamService interface {
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	GetTeamByAbbreviation(ctx context.Context, abbreviation string) (*models.Team, error)
	ListTeams(ctx context.Context, conference *models.Conference) ([]*models.Team, error)
	GetTeamRoster(ctx context.Context, id string) ([]models.Player, error)
	GetTeamPicks(ctx context.Context, id string) ([]models.DraftPick, error)
	AddPlayer(ctx context.Context, teamID string, player *models.Player) error
	AddDraftPick(ctx context.Context, teamID string, pick *models.DraftPick) error
	GetTeamSalary(ctx context.Context, id string) (traderules.SalaryInfo, error)
	RefreshAllTeamSalaries(ctx context.Context) error
	UploadLogo(ctx context.Context, teamID string, contentType string, reader io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	pickRepo   repositories.DraftPickRepository
	salary     *traderules.SalaryCalculator
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	pickRepo repositories.DraftPickRepository,
	salary *traderules.SalaryCalculator,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		pickRepo:   pickRepo,
		salary:     salary,
		uploader:   uploader,
		logger:     logger,
	}
}

// GetTeam loads a team with its current roster and future picks attached.
func (s *teamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if err := s.attachAssets(ctx, team); err != nil {
		return nil, err
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) GetTeamByAbbreviation(ctx context.Context, abbreviation string) (*models.Team, error) {
	team, err := s.teamRepo.GetByAbbreviation(ctx, abbreviation)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if err := s.attachAssets(ctx, team); err != nil {
		return nil, err
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) attachAssets(ctx context.Context, team *models.Team) error {
	roster, err := s.playerRepo.ListByTeam(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("failed to load roster for team %s: %w", team.ID, err)
	}
	picks, err := s.pickRepo.ListByTeam(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("failed to load picks for team %s: %w", team.ID, err)
	}
	team.Roster = roster
	team.FuturePicks = picks
	return nil
}

func (s *teamService) ListTeams(ctx context.Context, conference *models.Conference) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, conference)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		populateTeamLogoURL(team, s.uploader)
	}
	return teams, nil
}

func (s *teamService) GetTeamRoster(ctx context.Context, id string) ([]models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	roster, err := s.playerRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for team %s: %w", id, err)
	}
	return roster, nil
}

func (s *teamService) GetTeamPicks(ctx context.Context, id string) ([]models.DraftPick, error) {
	if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	picks, err := s.pickRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for team %s: %w", id, err)
	}
	return picks, nil
}

// AddPlayer registers a roster entry for a team. Admin surface used to seed
// and correct rosters.
func (s *teamService) AddPlayer(ctx context.Context, teamID string, player *models.Player) error {
	if player.Name == "" {
		return fmt.Errorf("%w: player name is required", ErrValidationFailed)
	}
	if player.Salary < 0 {
		return fmt.Errorf("%w: player salary must not be negative", ErrValidationFailed)
	}
	if !player.ContractType.Valid() {
		return fmt.Errorf("%w: unknown contract type %q", ErrValidationFailed, player.ContractType)
	}

	player.TeamID = teamID
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// AddDraftPick registers a future pick for a team.
func (s *teamService) AddDraftPick(ctx context.Context, teamID string, pick *models.DraftPick) error {
	if pick.Year < time.Now().Year() {
		return fmt.Errorf("%w: pick year %d is in the past", ErrValidationFailed, pick.Year)
	}
	if pick.Round != models.FirstRound && pick.Round != models.SecondRound {
		return fmt.Errorf("%w: unknown pick round %q", ErrValidationFailed, pick.Round)
	}

	pick.TeamID = teamID
	if err := s.pickRepo.Create(ctx, pick); err != nil {
		if errors.Is(err, repositories.ErrDraftPickTeamInvalid) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to create draft pick: %w", err)
	}
	return nil
}

// GetTeamSalary recomputes the team's cap sheet from its live roster.
func (s *teamService) GetTeamSalary(ctx context.Context, id string) (traderules.SalaryInfo, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return traderules.SalaryInfo{}, err
	}
	return s.salary.CalculateTeamSalary(team.ID, team.Roster), nil
}

// RefreshAllTeamSalaries recomputes every team's total from its roster and
// persists the cached aggregate. Run by the scheduler.
func (s *teamService) RefreshAllTeamSalaries(ctx context.Context) error {
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list teams for salary refresh: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(salaryRefreshConcurrency)

	for _, team := range teams {
		team := team
		g.Go(func() error {
			roster, err := s.playerRepo.ListByTeam(gctx, team.ID)
			if err != nil {
				return fmt.Errorf("failed to load roster for %s: %w", team.ID, err)
			}
			info := s.salary.CalculateTeamSalary(team.ID, roster)
			if info.Total == team.TotalSalary {
				return nil
			}
			if err := s.teamRepo.UpdateTotalSalary(gctx, nil, team.ID, info.Total); err != nil {
				return fmt.Errorf("failed to persist salary for %s: %w", team.ID, err)
			}
			s.logger.InfoContext(gctx, "team salary refreshed",
				slog.String("team_id", team.ID),
				slog.Int64("total_salary", info.Total))
			return nil
		})
	}

	return g.Wait()
}

func (s *teamService) UploadLogo(ctx context.Context, teamID string, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("teams/%s/logo%s", team.ID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, team.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save team logo key: %w", err)
	}

	team.LogoKey = &result.Key
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}
