package models

import "time"

// TradeStatus matches the ENUM in the database.
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeCompleted TradeStatus = "completed"
	TradeFailed    TradeStatus = "failed"
)

// TradedPlayer is the snapshot of a player stored with an executed trade.
type TradedPlayer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	FromTeam string `json:"from_team"`
	Number   string `json:"number,omitempty"`
	Position string `json:"position,omitempty"`
	Salary   int64  `json:"salary"`
}

// Trade is an executed (or attempted) trade persisted for history. The
// players and picks maps are keyed by the sending team's ID and stored as
// JSONB.
type Trade struct {
	ID            int                      `json:"id" db:"id"`
	TeamIDs       []string                 `json:"team_ids" db:"team_ids"`
	TradedPlayers map[string][]TradedPlayer `json:"traded_players" db:"traded_players"`
	TradedPicks   map[string][]DraftPick   `json:"traded_picks,omitempty" db:"traded_picks"`
	ExecutedBy    int                      `json:"executed_by" db:"executed_by"`
	Status        TradeStatus              `json:"status" db:"status"`
	CreatedAt     time.Time                `json:"created_at" db:"created_at"`
}
