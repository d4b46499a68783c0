package traderules

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/amin-97/sport-vibe/models"
)

// SalaryInfo is the aggregate cap picture for one roster. All amounts are
// whole dollars.
type SalaryInfo struct {
	Total         int64 `json:"total"`
	Guaranteed    int64 `json:"guaranteed"`
	NonGuaranteed int64 `json:"non_guaranteed"`
	DeadCap       int64 `json:"dead_cap"`

	CapSpace       int64 `json:"cap_space"`
	LuxuryTaxSpace int64 `json:"luxury_tax_space"`
	HardCapSpace   int64 `json:"hard_cap_space"`

	IsOverCap   bool `json:"is_over_cap"`
	IsOverTax   bool `json:"is_over_tax"`
	IsOverApron bool `json:"is_over_apron"`
}

// SalaryCalculator computes cap figures for rosters. Results are memoized by
// a content fingerprint of the roster, so a changed roster never returns a
// stale entry.
type SalaryCalculator struct {
	cfg Config

	mu    sync.RWMutex
	cache map[string]SalaryInfo
}

func NewSalaryCalculator(cfg Config) *SalaryCalculator {
	return &SalaryCalculator{
		cfg:   cfg,
		cache: make(map[string]SalaryInfo),
	}
}

// CalculateTeamSalary totals a roster and derives cap, tax and apron space.
func (c *SalaryCalculator) CalculateTeamSalary(teamID string, roster []models.Player) SalaryInfo {
	key := rosterFingerprint(teamID, roster)

	c.mu.RLock()
	if info, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return info
	}
	c.mu.RUnlock()

	var info SalaryInfo
	for _, p := range roster {
		switch p.ContractType {
		case models.ContractGuaranteed:
			info.Guaranteed += p.Salary
		case models.ContractNonGuaranteed:
			info.NonGuaranteed += p.Salary
		case models.ContractDeadCap:
			info.DeadCap += p.Salary
		}
		info.Total += p.Salary
	}

	info.CapSpace = max64(0, c.cfg.SalaryCap-info.Total)
	info.LuxuryTaxSpace = max64(0, c.cfg.LuxuryTax-info.Total)
	info.HardCapSpace = max64(0, c.cfg.TaxApron-info.Total)
	info.IsOverCap = info.Total > c.cfg.SalaryCap
	info.IsOverTax = info.Total > c.cfg.LuxuryTax
	info.IsOverApron = info.Total > c.cfg.TaxApron

	c.mu.Lock()
	c.cache[key] = info
	c.mu.Unlock()

	return info
}

// CalculateLuxuryTax returns the progressive tax bill on salary over the tax
// line. Each bracket taxes only the slice of excess that falls inside it.
func (c *SalaryCalculator) CalculateLuxuryTax(totalSalary int64) float64 {
	if totalSalary <= c.cfg.LuxuryTax {
		return 0
	}

	remaining := totalSalary - c.cfg.LuxuryTax
	var tax float64

	for _, bracket := range c.cfg.TaxBrackets {
		inBracket := remaining
		if bracket.Size > 0 && inBracket > bracket.Size {
			inBracket = bracket.Size
		}
		if inBracket <= 0 {
			break
		}
		tax += float64(inBracket) * bracket.Rate
		remaining -= inBracket
	}

	return tax
}

// CheckHardCapTriggers reports whether any incoming player hard-caps the
// acquiring team (sign-and-trade, taxpayer MLE or bi-annual exception).
func (c *SalaryCalculator) CheckHardCapTriggers(incoming []models.Player) bool {
	for _, p := range incoming {
		if p.SignAndTrade || p.TaxpayerMLE || p.BiAnnual {
			return true
		}
	}
	return false
}

// rosterFingerprint hashes the salary-relevant roster content. Order of the
// input slice must not affect the key.
func rosterFingerprint(teamID string, roster []models.Player) string {
	parts := make([]string, 0, len(roster))
	for _, p := range roster {
		parts = append(parts, fmt.Sprintf("%s|%d|%s", p.ID, p.Salary, p.ContractType))
	}
	sort.Strings(parts)

	h := sha256.New()
	h.Write([]byte(teamID))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(h.Sum(nil))
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
