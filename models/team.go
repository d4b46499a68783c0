package models

import "time"

type Conference string

const (
	ConferenceEastern Conference = "Eastern"
	ConferenceWestern Conference = "Western"
)

// Team represents an NBA franchise. TotalSalary is a cached aggregate of the
// current roster, refreshed by the salary scheduler; the rule engine always
// recomputes from the roster it is handed.
type Team struct {
	ID           string     `json:"id" db:"id"`
	FullName     string     `json:"full_name" db:"full_name"`
	Abbreviation string     `json:"abbreviation" db:"abbreviation"`
	Nickname     string     `json:"nickname" db:"nickname"`
	City         string     `json:"city" db:"city"`
	State        string     `json:"state" db:"state"`
	YearFounded  int        `json:"year_founded" db:"year_founded"`
	Conference   Conference `json:"conference" db:"conference"`
	Division     string     `json:"division" db:"division"`
	TotalSalary  int64      `json:"total_salary" db:"total_salary"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	Roster      []Player    `json:"roster,omitempty" db:"-"`
	FuturePicks []DraftPick `json:"future_picks,omitempty" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

// RosterSize returns the number of players currently on the roster projection.
func (t *Team) RosterSize() int {
	return len(t.Roster)
}
