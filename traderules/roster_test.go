package traderules

import (
	"reflect"
	"testing"

	"github.com/amin-97/sport-vibe/models"
)

func newRosterValidator() *RosterValidator {
	cfg := DefaultConfig()
	return NewRosterValidator(cfg, NewSalaryCalculator(cfg))
}

func withContract(players []models.Player, ct models.ContractType) []models.Player {
	out := make([]models.Player, len(players))
	for i, p := range players {
		p.ContractType = ct
		p.ID = p.ID + "-" + string(ct)
		out[i] = p
	}
	return out
}

func rulesOf(violations []Violation) []RuleID {
	if len(violations) == 0 {
		return nil
	}
	ids := make([]RuleID, 0, len(violations))
	for _, v := range violations {
		ids = append(ids, v.RuleID)
	}
	return ids
}

func TestValidateRoster_Quotas(t *testing.T) {
	v := newRosterValidator()

	tests := []struct {
		name      string
		standard  int
		twoWay    int
		exhibit10 int
		wantRules []RuleID
	}{
		{"valid minimum", 14, 0, 0, nil},
		{"valid maximum", 15, 2, 6, nil},
		{"below minimum", 13, 0, 0, []RuleID{RuleRosterMin}},
		{"above maximum", 16, 0, 0, []RuleID{RuleRosterMax}},
		{"too many two-way", 14, 3, 0, []RuleID{RuleTwoWayLimit}},
		{"too many exhibit 10", 14, 0, 7, []RuleID{RuleExhibit10Limit}},
		{"multiple breaches reported together", 13, 3, 7,
			[]RuleID{RuleRosterMin, RuleTwoWayLimit, RuleExhibit10Limit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := standardRoster("DEN", tt.standard, 2_000_000)
			roster = append(roster, withContract(standardRoster("DEN-2w", tt.twoWay, 500_000), models.ContractTwoWay)...)
			roster = append(roster, withContract(standardRoster("DEN-e10", tt.exhibit10, 100_000), models.ContractExhibit10)...)

			got := v.ValidateRoster("DEN", roster)
			if !reflect.DeepEqual(rulesOf(got), tt.wantRules) {
				t.Errorf("rules = %v, want %v", rulesOf(got), tt.wantRules)
			}
		})
	}
}

func TestValidateRoster_MinimumConveysBound(t *testing.T) {
	v := newRosterValidator()

	got := v.ValidateRoster("POR", standardRoster("POR", 13, 2_000_000))
	if len(got) != 1 {
		t.Fatalf("got %d violations, want 1", len(got))
	}
	if got[0].RuleID != RuleRosterMin {
		t.Errorf("rule = %s, want %s", got[0].RuleID, RuleRosterMin)
	}
	if got[0].Data["minimum"] != 14 {
		t.Errorf("minimum = %v, want 14", got[0].Data["minimum"])
	}
}

func TestValidateRoster_Idempotent(t *testing.T) {
	v := newRosterValidator()
	roster := standardRoster("UTA", 13, 2_000_000)

	first := v.ValidateRoster("UTA", roster)
	second := v.ValidateRoster("UTA", roster)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated validation differs: %v vs %v", first, second)
	}
}

func TestProjectRosterAfterTrade(t *testing.T) {
	v := newRosterValidator()

	current := standardRoster("GSW", 14, 8_000_000)
	outgoing := []models.Player{current[0], current[1]}
	incoming := standardRoster("IN", 2, 12_000_000)

	projection := v.ProjectRosterAfterTrade("GSW", current, incoming, outgoing)

	if len(projection.Roster) != 14 {
		t.Fatalf("projected roster size = %d, want 14", len(projection.Roster))
	}
	for _, p := range projection.Roster {
		if p.ID == outgoing[0].ID || p.ID == outgoing[1].ID {
			t.Errorf("outgoing player %s still on projected roster", p.ID)
		}
	}

	wantTotal := int64(12*8_000_000 + 2*12_000_000)
	if projection.SalaryInfo.Total != wantTotal {
		t.Errorf("projected total = %d, want %d", projection.SalaryInfo.Total, wantTotal)
	}
	if !projection.IsValid {
		t.Errorf("projection unexpectedly invalid: %v", projection.Violations)
	}
}

func TestProjectRosterAfterTrade_DropsBelowMinimum(t *testing.T) {
	v := newRosterValidator()

	current := standardRoster("WAS", 14, 3_000_000)
	projection := v.ProjectRosterAfterTrade("WAS", current, nil, []models.Player{current[0]})

	if projection.IsValid {
		t.Fatal("expected invalid projection at 13 standard contracts")
	}
	if projection.Violations[0].RuleID != RuleRosterMin {
		t.Errorf("rule = %s, want %s", projection.Violations[0].RuleID, RuleRosterMin)
	}
}

func TestCheckPositionalBalance(t *testing.T) {
	v := newRosterValidator()

	// Two of everything: no warnings.
	balanced := append(standardRoster("IND", 10, 1_000_000), standardRoster("IND-b", 10, 1_000_000)...)
	if warnings := v.CheckPositionalBalance("IND", balanced); len(warnings) != 0 {
		t.Errorf("unexpected warnings for balanced roster: %v", warnings)
	}

	// All shooting guards: PG, C and SF depth all flagged, as warnings only.
	var thin []models.Player
	for _, p := range standardRoster("IND", 14, 1_000_000) {
		p.Position = "SG"
		thin = append(thin, p)
	}
	warnings := v.CheckPositionalBalance("IND", thin)
	if len(warnings) != 3 {
		t.Fatalf("got %d warnings, want 3", len(warnings))
	}
	for _, w := range warnings {
		if w.Severity != SeverityWarning {
			t.Errorf("positional depth produced severity %s, want warning", w.Severity)
		}
		if w.RuleID != RulePositionDepth {
			t.Errorf("rule = %s, want %s", w.RuleID, RulePositionDepth)
		}
	}
}

func TestAvailableSpotsAndCanAddPlayer(t *testing.T) {
	v := newRosterValidator()

	roster := standardRoster("MEM", 15, 1_000_000)
	roster = append(roster, withContract(standardRoster("MEM-2w", 1, 500_000), models.ContractTwoWay)...)

	spots := v.AvailableSpots(roster)
	if spots.Standard != 0 || spots.TwoWay != 1 || spots.Exhibit10 != 6 {
		t.Errorf("spots = %+v, want {0 1 6}", spots)
	}

	if v.CanAddPlayer(roster, models.Player{ID: "x", ContractType: models.ContractStandard}) {
		t.Error("standard slot should be full at 15")
	}
	if !v.CanAddPlayer(roster, models.Player{ID: "y", ContractType: models.ContractTwoWay}) {
		t.Error("two-way slot should be open")
	}
	if v.CanAddPlayer(roster, models.Player{ID: "z", ContractType: models.ContractDeadCap}) {
		t.Error("dead-cap entries are not addable through roster spots")
	}
}
