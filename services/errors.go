package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business-rule errors
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTitleRequired      = errors.New("title is required")
	ErrContentRequired    = errors.New("content is required")
	ErrInvalidLeague      = errors.New("invalid league")
	ErrInvalidCategory    = errors.New("invalid news category")
	ErrInvalidPromotion   = errors.New("invalid promotion")
	ErrInvalidStatus      = errors.New("invalid content status")
	ErrReboundMismatch    = errors.New("total rebounds must equal offensive plus defensive rebounds")

	// Trade errors
	ErrTradeInvalid       = errors.New("trade fails league rules")
	ErrTradeTeamsRequired = errors.New("a trade requires at least two teams")
	ErrTradeTeamUnknown   = errors.New("trade references an unknown team")
	ErrTradePlayerUnknown = errors.New("trade references an unknown player")
	ErrTradePickUnknown   = errors.New("trade references an unknown draft pick")
	ErrTradeAssetMismatch = errors.New("trade asset does not belong to the sending team")

	// Conflict errors
	ErrEmailConflict = errors.New("email address is already in use")
	ErrSlugConflict  = errors.New("slug is already in use")

	// Authentication and authorization errors
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific lookups
	ErrUserNotFound   = errors.New("user not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTradeNotFound  = errors.New("trade not found")
)
