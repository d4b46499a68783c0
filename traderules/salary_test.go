package traderules

import (
	"fmt"
	"testing"

	"github.com/amin-97/sport-vibe/models"
)

func standardRoster(teamID string, count int, salaryEach int64) []models.Player {
	positions := []string{"PG", "SG", "SF", "PF", "C"}
	roster := make([]models.Player, 0, count)
	for i := 0; i < count; i++ {
		roster = append(roster, models.Player{
			ID:           fmt.Sprintf("%s-p%d", teamID, i),
			TeamID:       teamID,
			Name:         fmt.Sprintf("Player %d", i),
			Position:     positions[i%len(positions)],
			Salary:       salaryEach,
			ContractType: models.ContractStandard,
		})
	}
	return roster
}

func TestCalculateTeamSalary_TotalsAndFlags(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name        string
		total       int64
		isOverCap   bool
		isOverTax   bool
		isOverApron bool
	}{
		{"under cap", 120_000_000, false, false, false},
		{"over cap under tax", 150_000_000, true, false, false},
		{"over tax under apron", 170_000_000, true, true, false},
		{"over apron", 180_000_000, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewSalaryCalculator(cfg)
			roster := standardRoster("BOS", 10, tt.total/10)

			info := calc.CalculateTeamSalary("BOS", roster)

			if info.Total != tt.total {
				t.Errorf("Total = %d, want %d", info.Total, tt.total)
			}
			if info.IsOverCap != tt.isOverCap {
				t.Errorf("IsOverCap = %v, want %v", info.IsOverCap, tt.isOverCap)
			}
			if info.IsOverTax != tt.isOverTax {
				t.Errorf("IsOverTax = %v, want %v", info.IsOverTax, tt.isOverTax)
			}
			if info.IsOverApron != tt.isOverApron {
				t.Errorf("IsOverApron = %v, want %v", info.IsOverApron, tt.isOverApron)
			}

			wantCapSpace := max64(0, cfg.SalaryCap-tt.total)
			if info.CapSpace != wantCapSpace {
				t.Errorf("CapSpace = %d, want %d", info.CapSpace, wantCapSpace)
			}
		})
	}
}

func TestCalculateTeamSalary_ContractCategories(t *testing.T) {
	calc := NewSalaryCalculator(DefaultConfig())

	roster := []models.Player{
		{ID: "p1", Salary: 30_000_000, ContractType: models.ContractGuaranteed},
		{ID: "p2", Salary: 20_000_000, ContractType: models.ContractGuaranteed},
		{ID: "p3", Salary: 5_000_000, ContractType: models.ContractNonGuaranteed},
		{ID: "p4", Salary: 2_000_000, ContractType: models.ContractDeadCap},
		{ID: "p5", Salary: 10_000_000, ContractType: models.ContractStandard},
	}

	info := calc.CalculateTeamSalary("LAL", roster)

	if info.Guaranteed != 50_000_000 {
		t.Errorf("Guaranteed = %d, want 50000000", info.Guaranteed)
	}
	if info.NonGuaranteed != 5_000_000 {
		t.Errorf("NonGuaranteed = %d, want 5000000", info.NonGuaranteed)
	}
	if info.DeadCap != 2_000_000 {
		t.Errorf("DeadCap = %d, want 2000000", info.DeadCap)
	}
	if info.Total != 67_000_000 {
		t.Errorf("Total = %d, want 67000000", info.Total)
	}
}

func TestCalculateTeamSalary_NoStaleCacheOnRosterChange(t *testing.T) {
	calc := NewSalaryCalculator(DefaultConfig())
	roster := standardRoster("MIA", 5, 10_000_000)

	first := calc.CalculateTeamSalary("MIA", roster)
	if first.Total != 50_000_000 {
		t.Fatalf("Total = %d, want 50000000", first.Total)
	}

	// Same team ID, changed roster content: the memo must not serve the old
	// figure.
	roster[0].Salary = 20_000_000
	second := calc.CalculateTeamSalary("MIA", roster)
	if second.Total != 60_000_000 {
		t.Errorf("Total after roster change = %d, want 60000000", second.Total)
	}
}

func TestCalculateLuxuryTax(t *testing.T) {
	cfg := DefaultConfig()
	calc := NewSalaryCalculator(cfg)

	tests := []struct {
		name  string
		total int64
		want  float64
	}{
		{"at the line", cfg.LuxuryTax, 0},
		{"below the line", cfg.LuxuryTax - 1, 0},
		{"inside first bracket", cfg.LuxuryTax + 4_000_000, 4_000_000 * 1.5},
		{"spanning two brackets", cfg.LuxuryTax + 7_000_000, 5_000_000*1.5 + 2_000_000*1.75},
		{"into the open bracket", cfg.LuxuryTax + 23_000_000,
			5_000_000*1.5 + 5_000_000*1.75 + 5_000_000*2.5 + 5_000_000*3.25 + 3_000_000*3.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateLuxuryTax(tt.total)
			if got != tt.want {
				t.Errorf("CalculateLuxuryTax(%d) = %f, want %f", tt.total, got, tt.want)
			}
		})
	}
}

func TestCheckHardCapTriggers(t *testing.T) {
	calc := NewSalaryCalculator(DefaultConfig())

	clean := []models.Player{{ID: "p1"}, {ID: "p2"}}
	if calc.CheckHardCapTriggers(clean) {
		t.Error("expected no hard-cap trigger for plain contracts")
	}

	for _, tt := range []struct {
		name   string
		player models.Player
	}{
		{"sign and trade", models.Player{ID: "p3", SignAndTrade: true}},
		{"taxpayer MLE", models.Player{ID: "p4", TaxpayerMLE: true}},
		{"bi-annual", models.Player{ID: "p5", BiAnnual: true}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if !calc.CheckHardCapTriggers(append(clean, tt.player)) {
				t.Errorf("expected hard-cap trigger for %s", tt.name)
			}
		})
	}
}
