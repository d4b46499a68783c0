package models

import "time"

// CareerStatLine is one season row of a player's career stats. Counting
// stats are season totals; percentages are fractions in [0, 1].
type CareerStatLine struct {
	ID               int       `json:"id" db:"id"`
	PlayerID         string    `json:"player_id" db:"player_id"`
	PlayerName       string    `json:"player_name" db:"player_name"`
	SeasonID         string    `json:"season_id" db:"season_id"`
	TeamID           string    `json:"team_id" db:"team_id"`
	TeamAbbreviation string    `json:"team_abbreviation" db:"team_abbreviation"`
	PlayerAge        int       `json:"player_age" db:"player_age"`
	GP               int       `json:"gp" db:"gp"`
	GS               int       `json:"gs" db:"gs"`
	MIN              float64   `json:"min" db:"min"`
	FGM              int       `json:"fgm" db:"fgm"`
	FGA              int       `json:"fga" db:"fga"`
	FGPct            float64   `json:"fg_pct" db:"fg_pct"`
	FG3M             int       `json:"fg3m" db:"fg3m"`
	FG3A             int       `json:"fg3a" db:"fg3a"`
	FG3Pct           float64   `json:"fg3_pct" db:"fg3_pct"`
	FTM              int       `json:"ftm" db:"ftm"`
	FTA              int       `json:"fta" db:"fta"`
	FTPct            float64   `json:"ft_pct" db:"ft_pct"`
	OREB             int       `json:"oreb" db:"oreb"`
	DREB             int       `json:"dreb" db:"dreb"`
	REB              int       `json:"reb" db:"reb"`
	AST              int       `json:"ast" db:"ast"`
	STL              int       `json:"stl" db:"stl"`
	BLK              int       `json:"blk" db:"blk"`
	TOV              int       `json:"tov" db:"tov"`
	PF               int       `json:"pf" db:"pf"`
	PTS              int       `json:"pts" db:"pts"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// ReboundsConsistent reports whether REB == OREB + DREB. The stats layer
// rejects lines that fail this check.
func (s CareerStatLine) ReboundsConsistent() bool {
	return s.REB == s.OREB+s.DREB
}
