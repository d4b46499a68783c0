package traderules

import (
	"testing"
	"time"

	"github.com/amin-97/sport-vibe/models"
)

var validationTime = time.Date(2024, 2, 8, 12, 0, 0, 0, time.UTC)

// teamWithSpace builds a 14-man standard roster whose total sits capSpace
// dollars under the salary cap.
func teamWithSpace(id string, capSpace int64) *models.Team {
	cfg := DefaultConfig()
	total := cfg.SalaryCap - capSpace
	return &models.Team{
		ID:       id,
		FullName: "Team " + id,
		Roster:   standardRoster(id, 14, total/14),
	}
}

// teamOverCap builds a 14-man roster comfortably above the cap.
func teamOverCap(id string) *models.Team {
	return &models.Team{
		ID:       id,
		FullName: "Team " + id,
		Roster:   standardRoster(id, 14, 11_000_000), // 154M total
	}
}

func errorsByRule(result Result, rule RuleID) []Violation {
	var matched []Violation
	for _, v := range result.Errors {
		if v.RuleID == rule {
			matched = append(matched, v)
		}
	}
	return matched
}

func warningsByRule(result Result, rule RuleID) []Violation {
	var matched []Violation
	for _, v := range result.Warnings {
		if v.RuleID == rule {
			matched = append(matched, v)
		}
	}
	return matched
}

// outgoingOf pulls n players off the team's roster as the outgoing package,
// overriding their salaries to the given amounts.
func outgoingOf(team *models.Team, salaries ...int64) []models.Player {
	players := make([]models.Player, len(salaries))
	for i, salary := range salaries {
		players[i] = team.Roster[i]
		players[i].Salary = salary
		team.Roster[i].Salary = salary
	}
	return players
}

func TestValidateTrade_EmptyTrade(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	result := v.ValidateTrade(TradeProposal{
		Teams:           []*models.Team{teamOverCap("BOS"), teamOverCap("LAL")},
		OutgoingPlayers: map[string][]models.Player{},
		OutgoingPicks:   map[string][]models.DraftPick{},
	}, validationTime)

	if result.IsValid() {
		t.Fatal("empty trade must be invalid")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors, want exactly 1: %v", len(result.Errors), result.Errors)
	}
	if result.Errors[0].RuleID != RuleEmptyTrade {
		t.Errorf("rule = %s, want %s", result.Errors[0].RuleID, RuleEmptyTrade)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("empty trade should skip all further checks, got warnings %v", result.Warnings)
	}
}

func TestValidateTrade_UnderCapTeamWithinCapSpace(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	// A has $10M in cap space, sends $5M out, takes $8M back: allowed,
	// since 8M <= 10M + 5M.
	teamA := teamWithSpace("A", 10_000_000)
	teamB := teamOverCap("B")

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamA, teamB},
		OutgoingPlayers: map[string][]models.Player{
			"A": outgoingOf(teamA, 5_000_000),
			"B": outgoingOf(teamB, 8_000_000),
		},
	}, validationTime)

	if violations := errorsByRule(result, RuleSalaryMatch); len(violations) > 0 {
		for _, violation := range violations {
			if violation.TeamID == "A" {
				t.Errorf("team A should pass the salary match: %+v", violation)
			}
		}
	}
}

func TestValidateTrade_OverCapBracketViolation(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	// B is over the cap and sends $6M: allowance is 6M * 1.75 = $10.5M,
	// so $11M incoming fails.
	teamB := teamOverCap("B")
	teamC := teamOverCap("C")

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPlayers: map[string][]models.Player{
			"B": outgoingOf(teamB, 6_000_000),
			"C": outgoingOf(teamC, 11_000_000),
		},
	}, validationTime)

	matched := errorsByRule(result, RuleSalaryMatch)
	var forB *Violation
	for i := range matched {
		if matched[i].TeamID == "B" {
			forB = &matched[i]
		}
	}
	if forB == nil {
		t.Fatalf("expected a salary match error for team B, got %v", result.Errors)
	}
	if forB.Data["max_incoming"] != int64(10_500_000) {
		t.Errorf("max_incoming = %v, want 10500000", forB.Data["max_incoming"])
	}
	if forB.Data["incoming_salary"] != int64(11_000_000) {
		t.Errorf("incoming_salary = %v, want 11000000", forB.Data["incoming_salary"])
	}
}

func TestValidateTrade_ExceptionRaisesAllowance(t *testing.T) {
	cfg := DefaultConfig()
	ledger := NewExceptionLedger(cfg)
	ledger.Load([]models.TradeException{{
		ID:        "te-1",
		TeamID:    "B",
		Amount:    1_000_000,
		CreatedAt: validationTime.AddDate(0, -2, 0),
		ExpiresAt: validationTime.AddDate(0, 10, 0),
	}})

	v := NewTradeValidator(cfg, ledger)
	teamB := teamOverCap("B")
	teamC := teamOverCap("C")

	// 6M out allows 10.5M; the banked 1M exception lifts it to 11.5M, so
	// the same 11M package now matches.
	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPlayers: map[string][]models.Player{
			"B": outgoingOf(teamB, 6_000_000),
			"C": outgoingOf(teamC, 11_000_000),
		},
	}, validationTime)

	for _, violation := range errorsByRule(result, RuleSalaryMatch) {
		if violation.TeamID == "B" {
			t.Errorf("exception balance should cover the overage: %+v", violation)
		}
	}
}

func TestValidateTrade_MidAndLargeBrackets(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	tests := []struct {
		name     string
		outgoing int64
		incoming int64
		legal    bool
	}{
		{"mid bracket within", 10_000_000, 15_000_000, true},
		{"mid bracket over", 10_000_000, 15_000_001, false},
		{"large bracket within", 20_000_000, 25_000_000, true},
		{"large bracket over", 20_000_000, 25_000_001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teamB := teamOverCap("B")
			teamC := teamOverCap("C")

			result := v.ValidateTrade(TradeProposal{
				Teams: []*models.Team{teamB, teamC},
				OutgoingPlayers: map[string][]models.Player{
					"B": outgoingOf(teamB, tt.outgoing),
					"C": outgoingOf(teamC, tt.incoming),
				},
			}, validationTime)

			var hasError bool
			for _, violation := range errorsByRule(result, RuleSalaryMatch) {
				if violation.TeamID == "B" {
					hasError = true
				}
			}
			if hasError == tt.legal {
				t.Errorf("legal = %v, want %v (errors: %v)", !hasError, tt.legal, result.Errors)
			}
		})
	}
}

func TestValidateTrade_RecentlySignedPlayerBlocks(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	teamB := teamOverCap("B")
	teamC := teamOverCap("C")

	outgoing := outgoingOf(teamB, 6_000_000)
	signDate := validationTime.AddDate(0, 0, -10)
	outgoing[0].ContractSignDate = &signDate

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPlayers: map[string][]models.Player{
			"B": outgoing,
			"C": outgoingOf(teamC, 6_000_000),
		},
	}, validationTime)

	if len(errorsByRule(result, RuleRecentlySigned)) != 1 {
		t.Errorf("expected one recently-signed error, got %v", result.Errors)
	}
}

func TestValidateTrade_RestrictionWindows(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	tests := []struct {
		name     string
		mutate   func(p *models.Player)
		wantRule RuleID
	}{
		{"traded 30 days ago", func(p *models.Player) {
			d := validationTime.AddDate(0, 0, -30)
			p.LastTradeDate = &d
		}, RuleRecentlyTraded},
		{"extended 100 days ago", func(p *models.Player) {
			d := validationTime.AddDate(0, 0, -100)
			p.ExtensionDate = &d
		}, RuleRecentlyExtended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teamB := teamOverCap("B")
			teamC := teamOverCap("C")

			outgoing := outgoingOf(teamB, 6_000_000)
			tt.mutate(&outgoing[0])

			result := v.ValidateTrade(TradeProposal{
				Teams: []*models.Team{teamB, teamC},
				OutgoingPlayers: map[string][]models.Player{
					"B": outgoing,
					"C": outgoingOf(teamC, 6_000_000),
				},
			}, validationTime)

			if len(errorsByRule(result, tt.wantRule)) != 1 {
				t.Errorf("expected one %s error, got %v", tt.wantRule, result.Errors)
			}
		})
	}
}

func TestValidateTrade_WindowJustExpiredIsLegal(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	teamB := teamOverCap("B")
	teamC := teamOverCap("C")

	outgoing := outgoingOf(teamB, 6_000_000)
	signDate := validationTime.AddDate(0, 0, -61)
	outgoing[0].ContractSignDate = &signDate

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPlayers: map[string][]models.Player{
			"B": outgoing,
			"C": outgoingOf(teamC, 6_000_000),
		},
	}, validationTime)

	if len(errorsByRule(result, RuleRecentlySigned)) != 0 {
		t.Errorf("61-day-old signing should be tradeable, got %v", result.Errors)
	}
}

func TestValidateTrade_NoTradeClauseWarnsWithoutBlocking(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	teamB := teamOverCap("B")
	teamC := teamOverCap("C")

	outgoing := outgoingOf(teamB, 6_000_000)
	outgoing[0].NoTradeClause = true
	outgoing[0].BirdRights = true

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPlayers: map[string][]models.Player{
			"B": outgoing,
			"C": outgoingOf(teamC, 6_000_000),
		},
	}, validationTime)

	if len(warningsByRule(result, RuleNoTradeClause)) != 1 {
		t.Errorf("expected a no-trade-clause warning, got %v", result.Warnings)
	}
	if len(warningsByRule(result, RuleBirdRights)) != 1 {
		t.Errorf("expected a Bird-rights warning, got %v", result.Warnings)
	}
	if !result.IsValid() {
		t.Errorf("warnings must not block legality, errors: %v", result.Errors)
	}
}

func TestValidateTrade_RosterBelowMinimum(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	// B sends two players and takes one back: 13 standard contracts left.
	teamB := teamOverCap("B")
	teamC := &models.Team{
		ID:       "C",
		FullName: "Team C",
		Roster:   standardRoster("C", 15, 10_000_000),
	}

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPlayers: map[string][]models.Player{
			"B": outgoingOf(teamB, 5_000_000, 5_000_000),
			"C": outgoingOf(teamC, 9_000_000),
		},
	}, validationTime)

	var forB []Violation
	for _, violation := range errorsByRule(result, RuleRosterMin) {
		if violation.TeamID == "B" {
			forB = append(forB, violation)
		}
	}
	if len(forB) != 1 {
		t.Fatalf("expected one roster-minimum error for B, got %v", result.Errors)
	}
	if forB[0].Data["minimum"] != 14 {
		t.Errorf("minimum = %v, want 14", forB[0].Data["minimum"])
	}
}

func TestValidateTrade_StepienThroughOrchestrator(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	year := validationTime.Year()
	var existingYears []int
	for y := year; y <= year+7; y++ {
		if y != year+1 {
			existingYears = append(existingYears, y)
		}
	}

	teamB := teamOverCap("B")
	teamB.FuturePicks = firstRoundPicks("B", existingYears...)
	teamC := teamOverCap("C")

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPlayers: map[string][]models.Player{
			"B": outgoingOf(teamB, 6_000_000),
			"C": outgoingOf(teamC, 6_000_000),
		},
		OutgoingPicks: map[string][]models.DraftPick{
			"B": firstRoundPicks("B", year),
		},
	}, validationTime)

	var stepien []Violation
	for _, violation := range errorsByRule(result, RuleStepien) {
		if violation.TeamID == "B" {
			stepien = append(stepien, violation)
		}
	}
	if len(stepien) != 1 {
		t.Fatalf("expected one Stepien violation for B, got %v", result.Errors)
	}
	if stepien[0].Data["window_end"] != year+1 {
		t.Errorf("window_end = %v, want %d", stepien[0].Data["window_end"], year+1)
	}
}

func TestValidateTrade_PickOnlyTradeIsAnAsset(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	year := validationTime.Year()
	teamB := teamOverCap("B")
	teamB.FuturePicks = firstRoundPicks("B", year, year+1, year+2, year+3, year+4, year+5, year+6, year+7)
	teamC := teamOverCap("C")
	teamC.FuturePicks = firstRoundPicks("C", year, year+1, year+2, year+3, year+4, year+5, year+6, year+7)

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPicks: map[string][]models.DraftPick{
			"B": firstRoundPicks("B", year+2),
			"C": firstRoundPicks("C", year+3),
		},
	}, validationTime)

	if len(errorsByRule(result, RuleEmptyTrade)) != 0 {
		t.Errorf("pick-only trade is not empty, got %v", result.Errors)
	}
	if !result.IsValid() {
		t.Errorf("balanced pick swap should be legal, errors: %v", result.Errors)
	}
}

func TestValidateTrade_DuplicateTeamEntryIsMalformed(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	teamB := teamOverCap("B")
	teamC := teamOverCap("C")

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC, teamB},
		OutgoingPlayers: map[string][]models.Player{
			"B": outgoingOf(teamB, 6_000_000),
			"C": outgoingOf(teamC, 6_000_000),
		},
	}, validationTime)

	if result.IsValid() {
		t.Fatal("a proposal listing the same team twice must be rejected")
	}
	if matched := errorsByRule(result, RuleMalformedInput); len(matched) != 1 {
		t.Fatalf("got %d %s violations, want 1", len(matched), RuleMalformedInput)
	}
	for _, violation := range result.Errors {
		if violation.RuleID != RuleMalformedInput {
			t.Errorf("duplicate team must skip rule evaluation, saw %s", violation.RuleID)
		}
	}
}

func TestValidateTrade_MalformedInputShortCircuits(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	teamB := teamOverCap("B")
	teamC := teamOverCap("C")

	outgoing := outgoingOf(teamB, 6_000_000)
	outgoing[0].Salary = -1

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPlayers: map[string][]models.Player{
			"B": outgoing,
			"C": outgoingOf(teamC, 6_000_000),
		},
	}, validationTime)

	if result.IsValid() {
		t.Fatal("negative salary must be rejected")
	}
	for _, violation := range result.Errors {
		if violation.RuleID != RuleMalformedInput {
			t.Errorf("malformed input must skip rule evaluation, saw %s", violation.RuleID)
		}
	}
}

func TestValidateTrade_DuplicateOutgoingPlayer(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	teamB := teamOverCap("B")
	teamC := teamOverCap("C")

	shared := teamB.Roster[0]
	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPlayers: map[string][]models.Player{
			"B": {shared},
			"C": {shared},
		},
	}, validationTime)

	if len(errorsByRule(result, RuleMalformedInput)) == 0 {
		t.Errorf("player outgoing for two teams must be malformed, got %v", result.Errors)
	}
}

func TestValidateTrade_HardCapTrigger(t *testing.T) {
	v := NewTradeValidator(DefaultConfig(), nil)

	// B is already over the apron; the incoming player arrives via
	// sign-and-trade, which hard-caps B.
	teamB := &models.Team{
		ID:       "B",
		FullName: "Team B",
		Roster:   standardRoster("B", 14, 13_000_000), // 182M, over the apron
	}
	teamC := teamOverCap("C")

	incoming := outgoingOf(teamC, 13_000_000)
	incoming[0].SignAndTrade = true

	result := v.ValidateTrade(TradeProposal{
		Teams: []*models.Team{teamB, teamC},
		OutgoingPlayers: map[string][]models.Player{
			"B": outgoingOf(teamB, 13_000_000),
			"C": incoming,
		},
	}, validationTime)

	if len(errorsByRule(result, RuleHardCap)) != 1 {
		t.Errorf("expected a hard-cap error for B, got %v", result.Errors)
	}
}
