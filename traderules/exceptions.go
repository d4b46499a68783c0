package traderules

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amin-97/sport-vibe/models"
)

// ExceptionUsage records how much of one exception a Consume call spent.
type ExceptionUsage struct {
	ExceptionID string `json:"exception_id"`
	AmountUsed  int64  `json:"amount_used"`
}

// ConsumeResult is the outcome of applying an amount against a team's
// exceptions. Success means the full amount was absorbed; Remaining is the
// unabsorbed portion, floored at zero.
type ConsumeResult struct {
	Success   bool             `json:"success"`
	Used      []ExceptionUsage `json:"used_exceptions"`
	Remaining int64            `json:"remaining_amount"`
}

// ExceptionLedger tracks per-team trade-exception balances for one trading
// session. It is an explicit value owned by the caller, not process-global
// state. Expired exceptions stay stored and are filtered out at read time.
//
// The ledger serializes its own mutations; sharing one instance across
// trading sessions is still the caller's responsibility.
type ExceptionLedger struct {
	lifetime time.Duration

	mu     sync.Mutex
	byTeam map[string][]*models.TradeException
}

func NewExceptionLedger(cfg Config) *ExceptionLedger {
	return &ExceptionLedger{
		lifetime: cfg.ExceptionLifetime,
		byTeam:   make(map[string][]*models.TradeException),
	}
}

// Load seeds the ledger from persisted exceptions, replacing any prior state
// for the teams involved.
func (l *ExceptionLedger) Load(exceptions []models.TradeException) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range exceptions {
		delete(l.byTeam, e.TeamID)
	}
	for _, e := range exceptions {
		copy := e
		l.byTeam[e.TeamID] = append(l.byTeam[e.TeamID], &copy)
	}
}

// ActiveExceptions returns the team's unexpired exceptions ordered by
// creation date ascending. Consumption order follows this ordering; the
// oldest exception is always spent first.
func (l *ExceptionLedger) ActiveExceptions(teamID string, asOf time.Time) []models.TradeException {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activeLocked(teamID, asOf)
}

func (l *ExceptionLedger) activeLocked(teamID string, asOf time.Time) []models.TradeException {
	var active []models.TradeException
	for _, e := range l.byTeam[teamID] {
		if e.ActiveAt(asOf) {
			active = append(active, *e)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	return active
}

// AvailableAmount sums the team's active exception balances.
func (l *ExceptionLedger) AvailableAmount(teamID string, asOf time.Time) int64 {
	var total int64
	for _, e := range l.ActiveExceptions(teamID, asOf) {
		total += e.Amount
	}
	return total
}

// Create banks a new exception when outgoing salary strictly exceeds
// incoming. Returns nil when no exception is generated.
func (l *ExceptionLedger) Create(teamID string, outgoingSalary, incomingSalary int64, playerName string, now time.Time) *models.TradeException {
	if outgoingSalary <= incomingSalary {
		return nil
	}

	exception := &models.TradeException{
		ID:             uuid.NewString(),
		TeamID:         teamID,
		Amount:         outgoingSalary - incomingSalary,
		OriginalPlayer: playerName,
		CreatedAt:      now,
		ExpiresAt:      now.Add(l.lifetime),
	}

	l.mu.Lock()
	l.byTeam[teamID] = append(l.byTeam[teamID], exception)
	l.mu.Unlock()

	result := *exception
	return &result
}

// Consume greedily applies amount against the team's active exceptions,
// oldest first. An exception whose balance is fully spent is removed from
// the ledger; the first insufficiently-large one is decremented in place.
func (l *ExceptionLedger) Consume(teamID string, amount int64, asOf time.Time) ConsumeResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := amount
	var used []ExceptionUsage

	for _, active := range l.activeLocked(teamID, asOf) {
		if remaining <= 0 {
			break
		}

		entry := l.findLocked(teamID, active.ID)
		if entry == nil {
			continue
		}

		amountToUse := entry.Amount
		if remaining < amountToUse {
			amountToUse = remaining
		}
		remaining -= amountToUse

		if amountToUse == entry.Amount {
			l.removeLocked(teamID, entry.ID)
		} else {
			entry.Amount -= amountToUse
		}

		used = append(used, ExceptionUsage{ExceptionID: entry.ID, AmountUsed: amountToUse})
	}

	if remaining < 0 {
		remaining = 0
	}
	return ConsumeResult{
		Success:   remaining <= 0,
		Used:      used,
		Remaining: remaining,
	}
}

// CanAbsorb reports whether the team's active exception balance covers the
// salary.
func (l *ExceptionLedger) CanAbsorb(teamID string, salary int64, asOf time.Time) bool {
	return salary <= l.AvailableAmount(teamID, asOf)
}

// TeamExceptions returns every stored exception for the team, expired
// included, for persistence and display.
func (l *ExceptionLedger) TeamExceptions(teamID string) []models.TradeException {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]models.TradeException, 0, len(l.byTeam[teamID]))
	for _, e := range l.byTeam[teamID] {
		result = append(result, *e)
	}
	return result
}

func (l *ExceptionLedger) findLocked(teamID, id string) *models.TradeException {
	for _, e := range l.byTeam[teamID] {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (l *ExceptionLedger) removeLocked(teamID, id string) {
	entries := l.byTeam[teamID]
	for i, e := range entries {
		if e.ID == id {
			l.byTeam[teamID] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}
