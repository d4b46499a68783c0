package traderules

import (
	"fmt"
	"time"

	"github.com/amin-97/sport-vibe/models"
)

// TradeProposal is an ephemeral multi-team trade. Outgoing assets are keyed
// by the sending team's ID; a team's incoming assets are derived as the
// union of every other team's outgoing.
type TradeProposal struct {
	Teams           []*models.Team
	OutgoingPlayers map[string][]models.Player
	OutgoingPicks   map[string][]models.DraftPick
}

// TradeValidator composes the cap calculator, exception ledger, roster and
// pick validators to answer whether a multi-team trade is legal.
//
// All evaluation is pure and synchronous over the snapshot it is handed; the
// ledger is the only stateful collaborator and is owned by the caller's
// trading session.
type TradeValidator struct {
	cfg    Config
	salary *SalaryCalculator
	roster *RosterValidator
	picks  *PickValidator
	ledger *ExceptionLedger
}

// NewTradeValidator builds a validator. The ledger may be nil when no
// exceptions are in play.
func NewTradeValidator(cfg Config, ledger *ExceptionLedger) *TradeValidator {
	salary := NewSalaryCalculator(cfg)
	return &TradeValidator{
		cfg:    cfg,
		salary: salary,
		roster: NewRosterValidator(cfg, salary),
		picks:  NewPickValidator(cfg),
		ledger: ledger,
	}
}

// SalaryCalculator exposes the validator's calculator so callers share its
// memoization within a session.
func (v *TradeValidator) SalaryCalculator() *SalaryCalculator { return v.salary }

// RosterValidator exposes the composition validator.
func (v *TradeValidator) RosterValidator() *RosterValidator { return v.roster }

// PickValidator exposes the draft-pick validator.
func (v *TradeValidator) PickValidator() *PickValidator { return v.picks }

// ValidateTrade evaluates the full rule set against the proposal. Malformed
// input and empty trades short-circuit with a single error; every other rule
// runs to completion so the caller sees all violations in one pass.
func (v *TradeValidator) ValidateTrade(proposal TradeProposal, now time.Time) Result {
	var result Result

	if malformed := v.checkWellFormed(proposal); len(malformed) > 0 {
		result.add(malformed...)
		return result
	}

	if !v.hasAssets(proposal) {
		result.add(errorViolation(RuleEmptyTrade, "",
			"trade must include at least one player or draft pick", nil))
		return result
	}

	anyPicks := false
	for _, picks := range proposal.OutgoingPicks {
		if len(picks) > 0 {
			anyPicks = true
			break
		}
	}

	for _, team := range proposal.Teams {
		outgoing := proposal.OutgoingPlayers[team.ID]
		incoming := v.incomingPlayers(proposal, team.ID)

		outgoingSalary := totalSalary(outgoing)
		incomingSalary := totalSalary(incoming)

		result.add(v.checkSalaryMatch(team, outgoingSalary, incomingSalary, now)...)

		projection := v.roster.ProjectRosterAfterTrade(team.ID, team.Roster, incoming, outgoing)
		result.add(projection.Violations...)

		if projection.SalaryInfo.IsOverApron && v.salary.CheckHardCapTriggers(incoming) {
			result.add(errorViolation(RuleHardCap, team.ID,
				fmt.Sprintf("%s cannot exceed the hard cap due to trade restrictions", team.FullName),
				map[string]any{"total_salary": projection.SalaryInfo.Total, "hard_cap": v.cfg.TaxApron}))
		}

		result.add(v.roster.CheckPositionalBalance(team.ID, projection.Roster)...)

		if anyPicks {
			outPicks := proposal.OutgoingPicks[team.ID]
			inPicks := v.incomingPicks(proposal, team.ID)
			result.add(v.picks.ValidateAllPickRules(team.ID, team.FuturePicks, outPicks, inPicks, now.Year())...)
		}
	}

	for teamID, players := range proposal.OutgoingPlayers {
		for _, player := range players {
			result.add(v.checkPlayerRestrictions(teamID, player, now)...)
		}
	}

	return result
}

// checkWellFormed rejects inputs the rule set cannot meaningfully evaluate:
// unknown teams in the outgoing maps, a player outgoing for more than one
// team, negative salaries, unknown contract types.
func (v *TradeValidator) checkWellFormed(proposal TradeProposal) []Violation {
	var violations []Violation

	if len(proposal.Teams) == 0 {
		return []Violation{errorViolation(RuleMalformedInput, "",
			"trade proposal names no teams", nil)}
	}

	known := make(map[string]bool, len(proposal.Teams))
	for _, team := range proposal.Teams {
		if team == nil || team.ID == "" {
			return []Violation{errorViolation(RuleMalformedInput, "",
				"trade proposal contains a team without an identifier", nil)}
		}
		if known[team.ID] {
			return []Violation{errorViolation(RuleMalformedInput, team.ID,
				fmt.Sprintf("team %s appears more than once in the proposal", team.ID), nil)}
		}
		known[team.ID] = true
	}

	seenPlayers := make(map[string]string)
	for teamID, players := range proposal.OutgoingPlayers {
		if !known[teamID] {
			violations = append(violations, errorViolation(RuleMalformedInput, teamID,
				fmt.Sprintf("outgoing players reference unknown team %s", teamID), nil))
			continue
		}
		for _, player := range players {
			if prior, dup := seenPlayers[player.ID]; dup {
				violations = append(violations, errorViolation(RuleMalformedInput, teamID,
					fmt.Sprintf("player %s is outgoing for both %s and %s", player.Name, prior, teamID),
					map[string]any{"player_id": player.ID}))
			}
			seenPlayers[player.ID] = teamID

			if player.Salary < 0 {
				violations = append(violations, errorViolation(RuleMalformedInput, teamID,
					fmt.Sprintf("player %s has a negative salary", player.Name),
					map[string]any{"player_id": player.ID, "salary": player.Salary}))
			}
			if !player.ContractType.Valid() {
				violations = append(violations, errorViolation(RuleMalformedInput, teamID,
					fmt.Sprintf("player %s has unknown contract type %q", player.Name, player.ContractType),
					map[string]any{"player_id": player.ID}))
			}
		}
	}

	for teamID := range proposal.OutgoingPicks {
		if !known[teamID] {
			violations = append(violations, errorViolation(RuleMalformedInput, teamID,
				fmt.Sprintf("outgoing picks reference unknown team %s", teamID), nil))
		}
	}

	return violations
}

func (v *TradeValidator) hasAssets(proposal TradeProposal) bool {
	for _, players := range proposal.OutgoingPlayers {
		if len(players) > 0 {
			return true
		}
	}
	for _, picks := range proposal.OutgoingPicks {
		if len(picks) > 0 {
			return true
		}
	}
	return false
}

func (v *TradeValidator) incomingPlayers(proposal TradeProposal, teamID string) []models.Player {
	var incoming []models.Player
	for otherID, players := range proposal.OutgoingPlayers {
		if otherID != teamID {
			incoming = append(incoming, players...)
		}
	}
	return incoming
}

func (v *TradeValidator) incomingPicks(proposal TradeProposal, teamID string) []models.DraftPick {
	var incoming []models.DraftPick
	for otherID, picks := range proposal.OutgoingPicks {
		if otherID != teamID {
			incoming = append(incoming, picks...)
		}
	}
	return incoming
}

// checkSalaryMatch applies the salary-matching rule for one team. Teams
// under the cap absorb up to cap space plus outgoing; over-the-cap teams are
// bound by the outgoing-salary brackets. Any active exception balance raises
// the allowance.
func (v *TradeValidator) checkSalaryMatch(team *models.Team, outgoingSalary, incomingSalary int64, now time.Time) []Violation {
	info := v.salary.CalculateTeamSalary(team.ID, team.Roster)

	maxIncoming := MatchAllowance(v.cfg, info, outgoingSalary)
	if v.ledger != nil {
		maxIncoming += v.ledger.AvailableAmount(team.ID, now)
	}

	if incomingSalary > maxIncoming {
		return []Violation{errorViolation(RuleSalaryMatch, team.ID,
			fmt.Sprintf("%s cannot take back $%d in salary; maximum allowed is $%d", team.FullName, incomingSalary, maxIncoming),
			map[string]any{
				"incoming_salary": incomingSalary,
				"outgoing_salary": outgoingSalary,
				"max_incoming":    maxIncoming,
				"over_cap":        info.IsOverCap,
			})}
	}
	return nil
}

// checkPlayerRestrictions applies the per-player trade windows. Recent
// signings, trades and extensions block; no-trade clauses and Bird-rights
// impact only warn.
func (v *TradeValidator) checkPlayerRestrictions(teamID string, player models.Player, now time.Time) []Violation {
	var violations []Violation

	if player.ContractSignDate != nil {
		if days := daysSince(*player.ContractSignDate, now); days < v.cfg.SignRestrictionDays {
			eligible := player.ContractSignDate.AddDate(0, 0, v.cfg.SignRestrictionDays)
			violations = append(violations, errorViolation(RuleRecentlySigned, teamID,
				fmt.Sprintf("%s cannot be traded until %s (%d days after signing)",
					player.Name, eligible.Format("2006-01-02"), v.cfg.SignRestrictionDays),
				map[string]any{"player_id": player.ID, "days_since": days, "window_days": v.cfg.SignRestrictionDays}))
		}
	}

	if player.LastTradeDate != nil {
		if days := daysSince(*player.LastTradeDate, now); days < v.cfg.TradeRestrictionDays {
			eligible := player.LastTradeDate.AddDate(0, 0, v.cfg.TradeRestrictionDays)
			violations = append(violations, errorViolation(RuleRecentlyTraded, teamID,
				fmt.Sprintf("%s cannot be traded until %s (%d days after last trade)",
					player.Name, eligible.Format("2006-01-02"), v.cfg.TradeRestrictionDays),
				map[string]any{"player_id": player.ID, "days_since": days, "window_days": v.cfg.TradeRestrictionDays}))
		}
	}

	if player.ExtensionDate != nil {
		if days := daysSince(*player.ExtensionDate, now); days < v.cfg.ExtensionRestrictionDays {
			eligible := player.ExtensionDate.AddDate(0, 0, v.cfg.ExtensionRestrictionDays)
			violations = append(violations, errorViolation(RuleRecentlyExtended, teamID,
				fmt.Sprintf("%s cannot be traded until %s (%d days after extension)",
					player.Name, eligible.Format("2006-01-02"), v.cfg.ExtensionRestrictionDays),
				map[string]any{"player_id": player.ID, "days_since": days, "window_days": v.cfg.ExtensionRestrictionDays}))
		}
	}

	if player.NoTradeClause {
		violations = append(violations, warningViolation(RuleNoTradeClause, teamID,
			fmt.Sprintf("%s has a no-trade clause and must approve the trade", player.Name),
			map[string]any{"player_id": player.ID}))
	}

	if player.BirdRights {
		violations = append(violations, warningViolation(RuleBirdRights, teamID,
			fmt.Sprintf("trading %s will affect Bird rights status", player.Name),
			map[string]any{"player_id": player.ID}))
	}

	return violations
}

// MatchAllowance returns the maximum incoming salary a team can absorb on
// outgoing salary alone, before any trade-exception balance. Teams under the
// cap absorb up to cap space plus outgoing; over-the-cap teams follow the
// outgoing-salary brackets.
func MatchAllowance(cfg Config, info SalaryInfo, outgoingSalary int64) int64 {
	if !info.IsOverCap {
		return info.CapSpace + outgoingSalary
	}
	switch {
	case outgoingSalary <= cfg.MatchSmallMax:
		return int64(float64(outgoingSalary) * cfg.MatchSmallMult)
	case outgoingSalary <= cfg.MatchMidMax:
		return outgoingSalary + cfg.MatchMidAdd
	default:
		return int64(float64(outgoingSalary) * cfg.MatchLargeMult)
	}
}

func totalSalary(players []models.Player) int64 {
	var total int64
	for _, p := range players {
		total += p.Salary
	}
	return total
}

func daysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}
