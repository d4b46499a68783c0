package models

import "time"

type Promotion string

const (
	PromotionWWE Promotion = "WWE"
	PromotionAEW Promotion = "AEW"
)

// WrestlingMatch is one match on a wrestling event card, stored as JSONB
// inside the parent result.
type WrestlingMatch struct {
	Type       string   `json:"type"`
	Wrestlers  []string `json:"wrestlers"`
	Winner     string   `json:"winner"`
	Duration   string   `json:"duration,omitempty"`
	Highlights string   `json:"highlights"`
	Thoughts   string   `json:"thoughts"`
}

// WrestlingResult covers a full wrestling event: card, winners and commentary.
type WrestlingResult struct {
	ID        int              `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Slug      string           `json:"slug" db:"slug"`
	Date      time.Time        `json:"date" db:"date"`
	Venue     string           `json:"venue" db:"venue"`
	Promotion Promotion        `json:"promotion" db:"promotion"`
	Matches   []WrestlingMatch `json:"matches" db:"matches"`
	AuthorID  int              `json:"author_id" db:"author_id"`
	Status    ContentStatus    `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`

	CoverKey *string `json:"-" db:"cover_key"`
	CoverURL *string `json:"cover_url,omitempty" db:"-"`
}
