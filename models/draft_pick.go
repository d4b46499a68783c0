package models

// PickRound matches the ENUM in the database.
type PickRound string

const (
	FirstRound  PickRound = "First Round"
	SecondRound PickRound = "Second Round"
)

// DraftPick is a future draft selection owned by a team. Protection carries a
// free-form descriptor ("Top-4 protected"); Swap marks the pick as swap rights
// rather than an outright conveyance.
type DraftPick struct {
	ID         string    `json:"id" db:"id"`
	TeamID     string    `json:"team_id" db:"team_id"`
	Year       int       `json:"year" db:"year"`
	Round      PickRound `json:"round" db:"round"`
	Protection *string   `json:"protection,omitempty" db:"protection"`
	Swap       bool      `json:"swap" db:"swap"`
}
