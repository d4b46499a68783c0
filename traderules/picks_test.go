package traderules

import (
	"testing"

	"github.com/amin-97/sport-vibe/models"
)

const pickTestYear = 2024

func firstRoundPicks(teamID string, years ...int) []models.DraftPick {
	picks := make([]models.DraftPick, 0, len(years))
	for _, y := range years {
		picks = append(picks, models.DraftPick{
			ID:     teamID + "-fr-" + string(rune('a'+len(picks))),
			TeamID: teamID,
			Year:   y,
			Round:  models.FirstRound,
		})
	}
	return picks
}

func TestValidatePickYears(t *testing.T) {
	v := NewPickValidator(DefaultConfig())

	tests := []struct {
		name       string
		years      []int
		wantErrors int
	}{
		{"all in bounds", []int{pickTestYear, pickTestYear + 3, pickTestYear + 7}, 0},
		{"one in the past", []int{pickTestYear - 1, pickTestYear + 1}, 1},
		{"one too far out", []int{pickTestYear + 8}, 1},
		{"each violation reported", []int{pickTestYear - 2, pickTestYear + 9}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidatePickYears("ATL", firstRoundPicks("ATL", tt.years...), pickTestYear)
			if len(got) != tt.wantErrors {
				t.Errorf("got %d violations, want %d: %v", len(got), tt.wantErrors, got)
			}
			for _, violation := range got {
				if violation.RuleID != RulePickYearBounds {
					t.Errorf("rule = %s, want %s", violation.RuleID, RulePickYearBounds)
				}
			}
		})
	}
}

func TestValidateStepienRule(t *testing.T) {
	v := NewPickValidator(DefaultConfig())

	// Firsts in every year of the horizon except Y+1; trading away the Y
	// pick leaves the (Y, Y+1) window empty.
	var existingYears []int
	for y := pickTestYear; y <= pickTestYear+7; y++ {
		if y != pickTestYear+1 {
			existingYears = append(existingYears, y)
		}
	}
	existing := firstRoundPicks("CLE", existingYears...)
	outgoing := firstRoundPicks("CLE", pickTestYear)

	got := v.ValidateStepienRule("CLE", existing, outgoing, nil, pickTestYear)
	if len(got) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(got), got)
	}
	if got[0].RuleID != RuleStepien {
		t.Errorf("rule = %s, want %s", got[0].RuleID, RuleStepien)
	}
	if got[0].Data["window_end"] != pickTestYear+1 {
		t.Errorf("window_end = %v, want %d", got[0].Data["window_end"], pickTestYear+1)
	}
}

func TestValidateStepienRule_IncomingPickRestoresCoverage(t *testing.T) {
	v := NewPickValidator(DefaultConfig())

	var existingYears []int
	for y := pickTestYear; y <= pickTestYear+7; y++ {
		if y != pickTestYear+1 {
			existingYears = append(existingYears, y)
		}
	}
	existing := firstRoundPicks("CLE", existingYears...)
	outgoing := firstRoundPicks("CLE", pickTestYear)
	incoming := firstRoundPicks("LAC", pickTestYear+1)

	if got := v.ValidateStepienRule("CLE", existing, outgoing, incoming, pickTestYear); len(got) != 0 {
		t.Errorf("unexpected violations with incoming coverage: %v", got)
	}
}

func TestValidateStepienRule_SecondRoundersIgnored(t *testing.T) {
	v := NewPickValidator(DefaultConfig())

	seconds := make([]models.DraftPick, 0, 8)
	for y := pickTestYear; y <= pickTestYear+7; y++ {
		seconds = append(seconds, models.DraftPick{
			ID: "sr", TeamID: "HOU", Year: y, Round: models.SecondRound,
		})
	}

	got := v.ValidateStepienRule("HOU", seconds, nil, nil, pickTestYear)
	// No first-rounders at all: every two-year window in the horizon fails.
	if len(got) == 0 {
		t.Fatal("expected Stepien violations when the team holds only second-rounders")
	}
}

func TestValidatePickProtections(t *testing.T) {
	v := NewPickValidator(DefaultConfig())
	top4 := "Top-4 protected"
	lottery := "Lottery protected"

	picks := []models.DraftPick{
		{ID: "a", Year: pickTestYear + 1, Round: models.FirstRound, Protection: &top4},
		{ID: "b", Year: pickTestYear + 1, Round: models.FirstRound, Protection: &lottery},
		{ID: "c", Year: pickTestYear + 2, Round: models.FirstRound, Protection: &top4},
	}

	got := v.ValidatePickProtections("MIN", picks)
	if len(got) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(got), got)
	}
	if got[0].RuleID != RulePickProtectionDupe {
		t.Errorf("rule = %s, want %s", got[0].RuleID, RulePickProtectionDupe)
	}

	// Same year, different round: no conflict.
	mixed := []models.DraftPick{
		{ID: "d", Year: pickTestYear + 1, Round: models.FirstRound, Protection: &top4},
		{ID: "e", Year: pickTestYear + 1, Round: models.SecondRound, Protection: &top4},
	}
	if got := v.ValidatePickProtections("MIN", mixed); len(got) != 0 {
		t.Errorf("unexpected violations across rounds: %v", got)
	}
}

func TestValidatePickSwaps(t *testing.T) {
	v := NewPickValidator(DefaultConfig())

	picks := []models.DraftPick{
		{ID: "a", Year: pickTestYear + 1, Round: models.FirstRound, Swap: true},
		{ID: "b", Year: pickTestYear + 1, Round: models.SecondRound, Swap: true},
		{ID: "c", Year: pickTestYear + 2, Round: models.FirstRound, Swap: true},
		{ID: "d", Year: pickTestYear + 2, Round: models.FirstRound},
	}

	got := v.ValidatePickSwaps("DET", picks)
	if len(got) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(got), got)
	}
	if got[0].Data["year"] != pickTestYear+1 {
		t.Errorf("year = %v, want %d", got[0].Data["year"], pickTestYear+1)
	}
}

func TestValidateAllPickRules_Concatenates(t *testing.T) {
	v := NewPickValidator(DefaultConfig())
	top4 := "Top-4 protected"

	existing := firstRoundPicks("TOR", pickTestYear)
	outgoing := []models.DraftPick{
		{ID: "x", Year: pickTestYear - 1, Round: models.FirstRound, Protection: &top4, Swap: true},
		{ID: "y", Year: pickTestYear - 1, Round: models.FirstRound, Protection: &top4, Swap: true},
	}

	got := v.ValidateAllPickRules("TOR", existing, outgoing, nil, pickTestYear)

	counts := make(map[RuleID]int)
	for _, violation := range got {
		counts[violation.RuleID]++
	}
	if counts[RulePickYearBounds] != 2 {
		t.Errorf("pick year violations = %d, want 2", counts[RulePickYearBounds])
	}
	if counts[RulePickProtectionDupe] != 1 {
		t.Errorf("protection violations = %d, want 1", counts[RulePickProtectionDupe])
	}
	if counts[RulePickSwapDupe] != 1 {
		t.Errorf("swap violations = %d, want 1", counts[RulePickSwapDupe])
	}
	if counts[RuleStepien] == 0 {
		t.Error("expected Stepien violations in concatenated output")
	}
}
