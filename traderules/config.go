package traderules

import "time"

// TaxBracket is one marginal luxury-tax bracket. Size is the width of the
// bracket in dollars of excess salary; the final bracket is open-ended.
type TaxBracket struct {
	Size int64
	Rate float64
}

// Config carries the season constants and league rule parameters the engine
// evaluates against. Zero values are never meaningful; start from
// DefaultConfig and override what the season requires.
type Config struct {
	SalaryCap     int64
	LuxuryTax     int64
	TaxApron      int64 // doubles as the hard cap
	MinimumSalary int64

	TaxBrackets []TaxBracket

	MinRosterSize int
	MaxRosterSize int
	TwoWayMax     int
	Exhibit10Max  int

	// Salary-match brackets for over-the-cap teams: outgoing at or below
	// MatchSmallMax allows incoming up to outgoing*MatchSmallMult, between
	// that and MatchMidMax allows outgoing+MatchMidAdd, above allows
	// outgoing*MatchLargeMult.
	MatchSmallMax  int64
	MatchMidMax    int64
	MatchSmallMult float64
	MatchMidAdd    int64
	MatchLargeMult float64

	// Restriction windows in days. The post-signing window is configurable
	// because league practice has used both 60 and 90; 60 is the default.
	SignRestrictionDays      int
	TradeRestrictionDays     int
	ExtensionRestrictionDays int

	// MaxFutureYears bounds how far ahead a draft pick may be traded.
	MaxFutureYears int

	// ExceptionLifetime is how long a trade exception stays usable.
	ExceptionLifetime time.Duration

	// MinPositionDepth is the advisory floor for PG/C/SF coverage.
	MinPositionDepth int
}

// DefaultConfig returns the 2023-24 season rule set.
func DefaultConfig() Config {
	return Config{
		SalaryCap:     136_021_000,
		LuxuryTax:     165_294_000,
		TaxApron:      172_346_000,
		MinimumSalary: 953_000,

		TaxBrackets: []TaxBracket{
			{Size: 5_000_000, Rate: 1.5},
			{Size: 5_000_000, Rate: 1.75},
			{Size: 5_000_000, Rate: 2.5},
			{Size: 5_000_000, Rate: 3.25},
			{Size: 0, Rate: 3.75}, // open-ended
		},

		MinRosterSize: 14,
		MaxRosterSize: 15,
		TwoWayMax:     2,
		Exhibit10Max:  6,

		MatchSmallMax:  6_533_333,
		MatchMidMax:    19_600_000,
		MatchSmallMult: 1.75,
		MatchMidAdd:    5_000_000,
		MatchLargeMult: 1.25,

		SignRestrictionDays:      60,
		TradeRestrictionDays:     60,
		ExtensionRestrictionDays: 180,

		MaxFutureYears: 7,

		ExceptionLifetime: 365 * 24 * time.Hour,

		MinPositionDepth: 2,
	}
}
