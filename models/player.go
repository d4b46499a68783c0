package models

import "time"

// ContractType represents the kinds of NBA contracts tracked for trade
// purposes, matching the ENUM in the database.
type ContractType string

const (
	ContractStandard      ContractType = "standard"
	ContractTwoWay        ContractType = "two-way"
	ContractExhibit10     ContractType = "exhibit-10"
	ContractGuaranteed    ContractType = "guaranteed"
	ContractNonGuaranteed ContractType = "non-guaranteed"
	ContractDeadCap       ContractType = "dead-cap"
)

// Valid reports whether ct is one of the known contract types.
func (ct ContractType) Valid() bool {
	switch ct {
	case ContractStandard, ContractTwoWay, ContractExhibit10,
		ContractGuaranteed, ContractNonGuaranteed, ContractDeadCap:
		return true
	}
	return false
}

// Player is the trade-relevant projection of a roster entry. Salary is in
// whole dollars.
type Player struct {
	ID       string `json:"id" db:"id"`
	TeamID   string `json:"team_id" db:"team_id"`
	Name     string `json:"name" db:"name"`
	Number   string `json:"number,omitempty" db:"number"`
	Position string `json:"position" db:"position"`

	Salary       int64        `json:"salary" db:"salary"`
	ContractType ContractType `json:"contract_type" db:"contract_type"`

	ContractSignDate *time.Time `json:"contract_sign_date,omitempty" db:"contract_sign_date"`
	LastTradeDate    *time.Time `json:"last_trade_date,omitempty" db:"last_trade_date"`
	ExtensionDate    *time.Time `json:"extension_date,omitempty" db:"extension_date"`

	NoTradeClause bool `json:"no_trade_clause" db:"no_trade_clause"`
	BirdRights    bool `json:"bird_rights" db:"bird_rights"`

	// Hard-cap triggers: receiving any player carrying one of these flags
	// hard-caps the acquiring team at the apron.
	SignAndTrade bool `json:"sign_and_trade" db:"sign_and_trade"`
	TaxpayerMLE  bool `json:"taxpayer_mle" db:"taxpayer_mle"`
	BiAnnual     bool `json:"bi_annual" db:"bi_annual"`
}
