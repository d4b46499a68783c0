package traderules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExceptionLedger_Create(t *testing.T) {
	ledger := NewExceptionLedger(DefaultConfig())
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	exception := ledger.Create("DAL", 12_000_000, 8_000_000, "J. Holiday", now)
	require.NotNil(t, exception)
	assert.Equal(t, int64(4_000_000), exception.Amount)
	assert.Equal(t, "DAL", exception.TeamID)
	assert.Equal(t, now.Add(365*24*time.Hour), exception.ExpiresAt)

	// Outgoing must strictly exceed incoming.
	assert.Nil(t, ledger.Create("DAL", 8_000_000, 8_000_000, "Nobody", now))
	assert.Nil(t, ledger.Create("DAL", 5_000_000, 8_000_000, "Nobody", now))
}

func TestExceptionLedger_LoadReplacesTeamState(t *testing.T) {
	ledger := NewExceptionLedger(DefaultConfig())
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	asOf := created.Add(24 * time.Hour)

	persisted := ledger.Create("BOS", 2_000_000, 1_000_000, "P. Pritchard", created)
	require.NotNil(t, persisted)
	rows := ledger.TeamExceptions("BOS")
	require.Len(t, rows, 1)

	// Loading the same rows again must not stack balances.
	ledger.Load(rows)
	ledger.Load(rows)

	assert.Len(t, ledger.TeamExceptions("BOS"), 1)
	assert.Equal(t, int64(1_000_000), ledger.AvailableAmount("BOS", asOf))
}

func TestExceptionLedger_ActiveFiltersExpired(t *testing.T) {
	ledger := NewExceptionLedger(DefaultConfig())
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	exception := ledger.Create("PHX", 6_000_000, 0, "C. Payne", created)
	require.NotNil(t, exception)

	beforeExpiry := created.Add(364 * 24 * time.Hour)
	assert.Len(t, ledger.ActiveExceptions("PHX", beforeExpiry), 1)
	assert.Equal(t, int64(6_000_000), ledger.AvailableAmount("PHX", beforeExpiry))

	afterExpiry := created.Add(366 * 24 * time.Hour)
	assert.Empty(t, ledger.ActiveExceptions("PHX", afterExpiry))
	assert.Zero(t, ledger.AvailableAmount("PHX", afterExpiry))

	// Expired entries stay stored; expiry is a read-time filter.
	assert.Len(t, ledger.TeamExceptions("PHX"), 1)
}

func TestExceptionLedger_ConsumeOldestFirst(t *testing.T) {
	ledger := NewExceptionLedger(DefaultConfig())
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	older := ledger.Create("OKC", 3_000_000, 0, "First", base)
	newer := ledger.Create("OKC", 5_000_000, 0, "Second", base.Add(24*time.Hour))
	require.NotNil(t, older)
	require.NotNil(t, newer)

	asOf := base.Add(48 * time.Hour)
	result := ledger.Consume("OKC", 4_000_000, asOf)

	require.True(t, result.Success)
	require.Len(t, result.Used, 2)
	assert.Equal(t, older.ID, result.Used[0].ExceptionID)
	assert.Equal(t, int64(3_000_000), result.Used[0].AmountUsed)
	assert.Equal(t, newer.ID, result.Used[1].ExceptionID)
	assert.Equal(t, int64(1_000_000), result.Used[1].AmountUsed)
	assert.Zero(t, result.Remaining)

	// The fully-spent exception is gone; the partial one is decremented.
	remaining := ledger.ActiveExceptions("OKC", asOf)
	require.Len(t, remaining, 1)
	assert.Equal(t, newer.ID, remaining[0].ID)
	assert.Equal(t, int64(4_000_000), remaining[0].Amount)
}

func TestExceptionLedger_ConsumeShortfall(t *testing.T) {
	ledger := NewExceptionLedger(DefaultConfig())
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	created := ledger.Create("CHI", 2_500_000, 0, "A. Dosunmu", now)
	require.NotNil(t, created)

	requested := int64(4_000_000)
	result := ledger.Consume("CHI", requested, now.Add(time.Hour))

	assert.False(t, result.Success)
	assert.Equal(t, int64(1_500_000), result.Remaining)

	// Accounting invariant: everything used plus the remainder equals the
	// request, and no exception ever goes negative.
	var used int64
	for _, u := range result.Used {
		used += u.AmountUsed
		assert.GreaterOrEqual(t, u.AmountUsed, int64(0))
	}
	assert.Equal(t, requested, used+result.Remaining)

	for _, e := range ledger.TeamExceptions("CHI") {
		assert.GreaterOrEqual(t, e.Amount, int64(0))
	}
}

func TestExceptionLedger_CanAbsorb(t *testing.T) {
	ledger := NewExceptionLedger(DefaultConfig())
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	require.NotNil(t, ledger.Create("NYK", 7_000_000, 2_000_000, "E. Fournier", now))

	assert.True(t, ledger.CanAbsorb("NYK", 5_000_000, now.Add(time.Hour)))
	assert.True(t, ledger.CanAbsorb("NYK", 4_999_999, now.Add(time.Hour)))
	assert.False(t, ledger.CanAbsorb("NYK", 5_000_001, now.Add(time.Hour)))
	assert.False(t, ledger.CanAbsorb("BKN", 1, now.Add(time.Hour)))
}

func TestExceptionLedger_LoadSeedsState(t *testing.T) {
	cfg := DefaultConfig()
	source := NewExceptionLedger(cfg)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, source.Create("SAS", 9_000_000, 3_000_000, "D. White", now))

	restored := NewExceptionLedger(cfg)
	restored.Load(source.TeamExceptions("SAS"))

	assert.Equal(t, int64(6_000_000), restored.AvailableAmount("SAS", now.Add(time.Hour)))
}
