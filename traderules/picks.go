package traderules

import (
	"fmt"

	"github.com/amin-97/sport-vibe/models"
)

// PickValidator enforces draft-pick trading rules. All checks run
// independently and their violations are concatenated.
type PickValidator struct {
	cfg Config
}

func NewPickValidator(cfg Config) *PickValidator {
	return &PickValidator{cfg: cfg}
}

// ValidatePickYears flags every traded pick dated before the current year or
// more than MaxFutureYears ahead.
func (v *PickValidator) ValidatePickYears(teamID string, picks []models.DraftPick, currentYear int) []Violation {
	var violations []Violation
	for _, pick := range picks {
		if pick.Year < currentYear {
			violations = append(violations, errorViolation(RulePickYearBounds, teamID,
				fmt.Sprintf("invalid year for draft pick: %d", pick.Year),
				map[string]any{"pick_id": pick.ID, "year": pick.Year, "current_year": currentYear}))
		}
		if pick.Year > currentYear+v.cfg.MaxFutureYears {
			violations = append(violations, errorViolation(RulePickYearBounds, teamID,
				fmt.Sprintf("cannot trade picks more than %d years in the future", v.cfg.MaxFutureYears),
				map[string]any{"pick_id": pick.ID, "year": pick.Year, "max_year": currentYear + v.cfg.MaxFutureYears}))
		}
	}
	return violations
}

// ValidateStepienRule checks that the projected pick set never leaves the
// team without a first-round pick in two consecutive years. The projection
// is existing ∪ incoming − outgoing, keyed by year; a later insertion wins
// on collision.
func (v *PickValidator) ValidateStepienRule(teamID string, existing, outgoing, incoming []models.DraftPick, currentYear int) []Violation {
	firstRounders := make(map[int]models.DraftPick)

	for _, pick := range existing {
		if pick.Round == models.FirstRound {
			firstRounders[pick.Year] = pick
		}
	}
	for _, pick := range outgoing {
		if pick.Round == models.FirstRound {
			delete(firstRounders, pick.Year)
		}
	}
	for _, pick := range incoming {
		if pick.Round == models.FirstRound {
			firstRounders[pick.Year] = pick
		}
	}

	var violations []Violation
	for year := currentYear; year < currentYear+v.cfg.MaxFutureYears-1; year++ {
		_, hasThis := firstRounders[year]
		_, hasNext := firstRounders[year+1]
		if !hasThis && !hasNext {
			violations = append(violations, errorViolation(RuleStepien, teamID,
				fmt.Sprintf("team must have at least one first-round pick in every two-year period (%d-%d)", year, year+1),
				map[string]any{"window_start": year, "window_end": year + 1}))
		}
	}
	return violations
}

// ValidatePickProtections allows at most one protection descriptor per
// (year, round) across the traded picks.
func (v *PickValidator) ValidatePickProtections(teamID string, picks []models.DraftPick) []Violation {
	protections := make(map[string]*string)
	var violations []Violation

	for _, pick := range picks {
		key := fmt.Sprintf("%d-%s", pick.Year, pick.Round)
		if prior, ok := protections[key]; ok && prior != nil && *prior != "" {
			violations = append(violations, errorViolation(RulePickProtectionDupe, teamID,
				fmt.Sprintf("multiple pick protections for %d %s", pick.Year, pick.Round),
				map[string]any{"year": pick.Year, "round": string(pick.Round)}))
		}
		protections[key] = pick.Protection
	}
	return violations
}

// ValidatePickSwaps allows at most one swap-flagged pick per year across the
// traded picks.
func (v *PickValidator) ValidatePickSwaps(teamID string, picks []models.DraftPick) []Violation {
	seen := make(map[int]bool)
	var violations []Violation

	for _, pick := range picks {
		if !pick.Swap {
			continue
		}
		if seen[pick.Year] {
			violations = append(violations, errorViolation(RulePickSwapDupe, teamID,
				fmt.Sprintf("multiple pick swaps for %d", pick.Year),
				map[string]any{"year": pick.Year}))
		}
		seen[pick.Year] = true
	}
	return violations
}

// ValidateAllPickRules runs every pick rule for one team and concatenates
// the violations.
func (v *PickValidator) ValidateAllPickRules(teamID string, existing, outgoing, incoming []models.DraftPick, currentYear int) []Violation {
	traded := make([]models.DraftPick, 0, len(outgoing)+len(incoming))
	traded = append(traded, outgoing...)
	traded = append(traded, incoming...)

	var violations []Violation
	violations = append(violations, v.ValidatePickYears(teamID, traded, currentYear)...)
	violations = append(violations, v.ValidateStepienRule(teamID, existing, outgoing, incoming, currentYear)...)
	violations = append(violations, v.ValidatePickProtections(teamID, traded)...)
	violations = append(violations, v.ValidatePickSwaps(teamID, traded)...)
	return violations
}
