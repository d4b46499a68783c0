package traderules

import (
	"fmt"

	"github.com/amin-97/sport-vibe/models"
)

// RosterProjection is the result of applying a hypothetical trade to a
// roster: the projected roster, its salary picture, and any composition
// violations.
type RosterProjection struct {
	Roster     []models.Player `json:"roster"`
	IsValid    bool            `json:"is_valid"`
	SalaryInfo SalaryInfo      `json:"salary_info"`
	Violations []Violation     `json:"violations,omitempty"`
}

// RosterSpots counts open slots per contract category. Negative values mean
// the category is over its quota.
type RosterSpots struct {
	Standard  int `json:"standard"`
	TwoWay    int `json:"two_way"`
	Exhibit10 int `json:"exhibit_10"`
}

// RosterValidator checks contract-type quotas and roster bounds.
type RosterValidator struct {
	cfg    Config
	salary *SalaryCalculator
}

func NewRosterValidator(cfg Config, salary *SalaryCalculator) *RosterValidator {
	return &RosterValidator{cfg: cfg, salary: salary}
}

// CountByContract tallies the roster by contract type.
func (v *RosterValidator) CountByContract(roster []models.Player) map[models.ContractType]int {
	counts := make(map[models.ContractType]int)
	for _, p := range roster {
		counts[p.ContractType]++
	}
	return counts
}

// ValidateRoster reports every quota breach independently; nothing
// short-circuits.
func (v *RosterValidator) ValidateRoster(teamID string, roster []models.Player) []Violation {
	counts := v.CountByContract(roster)
	var violations []Violation

	standard := counts[models.ContractStandard]
	if standard < v.cfg.MinRosterSize {
		violations = append(violations, errorViolation(RuleRosterMin, teamID,
			fmt.Sprintf("team must have at least %d players on standard contracts", v.cfg.MinRosterSize),
			map[string]any{"standard_count": standard, "minimum": v.cfg.MinRosterSize}))
	}
	if standard > v.cfg.MaxRosterSize {
		violations = append(violations, errorViolation(RuleRosterMax, teamID,
			fmt.Sprintf("team cannot have more than %d players on standard contracts", v.cfg.MaxRosterSize),
			map[string]any{"standard_count": standard, "maximum": v.cfg.MaxRosterSize}))
	}

	if twoWay := counts[models.ContractTwoWay]; twoWay > v.cfg.TwoWayMax {
		violations = append(violations, errorViolation(RuleTwoWayLimit, teamID,
			fmt.Sprintf("team cannot have more than %d players on two-way contracts", v.cfg.TwoWayMax),
			map[string]any{"two_way_count": twoWay, "maximum": v.cfg.TwoWayMax}))
	}

	if exhibit10 := counts[models.ContractExhibit10]; exhibit10 > v.cfg.Exhibit10Max {
		violations = append(violations, errorViolation(RuleExhibit10Limit, teamID,
			fmt.Sprintf("team cannot have more than %d players on Exhibit 10 contracts", v.cfg.Exhibit10Max),
			map[string]any{"exhibit_10_count": exhibit10, "maximum": v.cfg.Exhibit10Max}))
	}

	return violations
}

// ProjectRosterAfterTrade removes outgoing players (matched by ID), appends
// incoming players, and revalidates composition and salary.
func (v *RosterValidator) ProjectRosterAfterTrade(teamID string, current, incoming, outgoing []models.Player) RosterProjection {
	outgoingIDs := make(map[string]struct{}, len(outgoing))
	for _, p := range outgoing {
		outgoingIDs[p.ID] = struct{}{}
	}

	projected := make([]models.Player, 0, len(current)+len(incoming))
	for _, p := range current {
		if _, gone := outgoingIDs[p.ID]; !gone {
			projected = append(projected, p)
		}
	}
	projected = append(projected, incoming...)

	violations := v.ValidateRoster(teamID, projected)

	return RosterProjection{
		Roster:     projected,
		IsValid:    len(violations) == 0,
		SalaryInfo: v.salary.CalculateTeamSalary(teamID, projected),
		Violations: violations,
	}
}

// CheckPositionalBalance produces advisory warnings for thin PG, C and SF
// depth. It never blocks a trade.
func (v *RosterValidator) CheckPositionalBalance(teamID string, roster []models.Player) []Violation {
	positions := make(map[string]int)
	for _, p := range roster {
		positions[p.Position]++
	}

	var warnings []Violation
	for _, pos := range []struct {
		code string
		name string
	}{
		{"PG", "point guard"},
		{"C", "center"},
		{"SF", "small forward"},
	} {
		if positions[pos.code] < v.cfg.MinPositionDepth {
			warnings = append(warnings, warningViolation(RulePositionDepth, teamID,
				fmt.Sprintf("low %s depth", pos.name),
				map[string]any{"position": pos.code, "count": positions[pos.code], "minimum": v.cfg.MinPositionDepth}))
		}
	}
	return warnings
}

// AvailableSpots returns the open slots per contract category.
func (v *RosterValidator) AvailableSpots(roster []models.Player) RosterSpots {
	counts := v.CountByContract(roster)
	return RosterSpots{
		Standard:  v.cfg.MaxRosterSize - counts[models.ContractStandard],
		TwoWay:    v.cfg.TwoWayMax - counts[models.ContractTwoWay],
		Exhibit10: v.cfg.Exhibit10Max - counts[models.ContractExhibit10],
	}
}

// CanAddPlayer reports whether a single player fits the roster's open slots.
// Contract types without a slot quota are never addable this way.
func (v *RosterValidator) CanAddPlayer(roster []models.Player, player models.Player) bool {
	spots := v.AvailableSpots(roster)
	switch player.ContractType {
	case models.ContractStandard:
		return spots.Standard > 0
	case models.ContractTwoWay:
		return spots.TwoWay > 0
	case models.ContractExhibit10:
		return spots.Exhibit10 > 0
	default:
		return false
	}
}
