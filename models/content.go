package models

import "time"

// League scopes news and editorial content.
type League string

const (
	LeagueNBA       League = "nba"
	LeagueWrestling League = "wrestling"
)

// ContentStatus matches the ENUM in the database.
type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentPublished ContentStatus = "published"
)

type NewsCategory string

const (
	CategoryNews     NewsCategory = "news"
	CategoryTrades   NewsCategory = "trades"
	CategoryRumors   NewsCategory = "rumors"
	CategoryInjuries NewsCategory = "injuries"
	CategoryRecap    NewsCategory = "game-recap"
	CategoryAnalysis NewsCategory = "analysis"
)

// News is a league-scoped news article.
type News struct {
	ID          int           `json:"id" db:"id"`
	League      League        `json:"league" db:"league"`
	Title       string        `json:"title" db:"title"`
	Slug        string        `json:"slug" db:"slug"`
	Description string        `json:"description" db:"description"`
	Content     string        `json:"content" db:"content"`
	Category    NewsCategory  `json:"category" db:"category"`
	Tags        []string      `json:"tags,omitempty" db:"tags"`
	Teams       []string      `json:"teams,omitempty" db:"teams"`
	Players     []string      `json:"players,omitempty" db:"players"`
	AuthorID    int           `json:"author_id" db:"author_id"`
	Status      ContentStatus `json:"status" db:"status"`
	Featured    bool          `json:"featured" db:"featured"`
	Views       int           `json:"views" db:"views"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`

	Author *User `json:"author,omitempty" db:"-"`

	CoverKey *string `json:"-" db:"cover_key"`
	CoverURL *string `json:"cover_url,omitempty" db:"-"`
}

// Editorial is a long-form opinion piece, league-scoped like News.
type Editorial struct {
	ID           int           `json:"id" db:"id"`
	League       League        `json:"league" db:"league"`
	Title        string        `json:"title" db:"title"`
	Slug         string        `json:"slug" db:"slug"`
	Summary      string        `json:"summary" db:"summary"`
	Content      string        `json:"content" db:"content"`
	KeyArguments []string      `json:"key_arguments,omitempty" db:"key_arguments"`
	Topics       []string      `json:"topics,omitempty" db:"topics"`
	AuthorID     int           `json:"author_id" db:"author_id"`
	Status       ContentStatus `json:"status" db:"status"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`

	Author *User `json:"author,omitempty" db:"-"`

	CoverKey *string `json:"-" db:"cover_key"`
	CoverURL *string `json:"cover_url,omitempty" db:"-"`
}
