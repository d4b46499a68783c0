package models

import "time"

// TradeException is a banked salary-matching allowance created when a team
// sends out more salary than it takes back. It can absorb incoming salary in
// a later trade until it expires one year after creation. Expiry is applied
// as a read-time filter; expired rows stay stored.
type TradeException struct {
	ID             string    `json:"id" db:"id"`
	TeamID         string    `json:"team_id" db:"team_id"`
	Amount         int64     `json:"amount" db:"amount"`
	OriginalPlayer string    `json:"original_player" db:"original_player"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	ExpiresAt      time.Time `json:"expires_at" db:"expires_at"`
}

// ActiveAt reports whether the exception can still be used at the given time.
func (e TradeException) ActiveAt(asOf time.Time) bool {
	return e.ExpiresAt.After(asOf)
}
