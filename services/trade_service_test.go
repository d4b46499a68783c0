package services

import (
	"context"
	"testing"

	"github.com/amin-97/sport-vibe/traderules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTrade_DuplicateTeamEntryRejected(t *testing.T) {
	// The duplicate check runs before any repository access, so nil
	// dependencies prove the input never reaches storage. A repeated team
	// entry would otherwise load its exceptions twice and double the
	// salary-match allowance.
	svc := NewTradeService(nil, nil, nil, nil, nil, nil, traderules.DefaultConfig(), nil, nil)

	_, err := svc.ValidateTrade(context.Background(), TradeInput{
		Teams: []TradeTeamInput{
			{TeamID: "BOS"},
			{TeamID: "MIA"},
			{TeamID: "BOS"},
		},
	})
	require.ErrorIs(t, err, ErrValidationFailed)

	_, _, err = svc.ExecuteTrade(context.Background(), TradeInput{
		Teams: []TradeTeamInput{
			{TeamID: "BOS"},
			{TeamID: "MIA"},
			{TeamID: "BOS"},
		},
	}, 1)
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestResolveDestination_TwoTeamInference(t *testing.T) {
	teams := []TradeTeamInput{
		{TeamID: "LAL"},
		{TeamID: "BOS"},
	}
	known := map[string]bool{"LAL": true, "BOS": true}

	dest, err := resolveDestination(TradeAssetInput{ID: "p1"}, "LAL", teams, known)
	require.NoError(t, err)
	assert.Equal(t, "BOS", dest)

	dest, err = resolveDestination(TradeAssetInput{ID: "p2"}, "BOS", teams, known)
	require.NoError(t, err)
	assert.Equal(t, "LAL", dest)
}

func TestResolveDestination_ExplicitRouting(t *testing.T) {
	teams := []TradeTeamInput{
		{TeamID: "LAL"},
		{TeamID: "BOS"},
		{TeamID: "MIA"},
	}
	known := map[string]bool{"LAL": true, "BOS": true, "MIA": true}

	dest, err := resolveDestination(TradeAssetInput{ID: "p1", ToTeamID: "MIA"}, "LAL", teams, known)
	require.NoError(t, err)
	assert.Equal(t, "MIA", dest)
}

func TestResolveDestination_MultiTeamRequiresExplicit(t *testing.T) {
	teams := []TradeTeamInput{
		{TeamID: "LAL"},
		{TeamID: "BOS"},
		{TeamID: "MIA"},
	}
	known := map[string]bool{"LAL": true, "BOS": true, "MIA": true}

	_, err := resolveDestination(TradeAssetInput{ID: "p1"}, "LAL", teams, known)
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestResolveDestination_RejectsBadDestinations(t *testing.T) {
	teams := []TradeTeamInput{
		{TeamID: "LAL"},
		{TeamID: "BOS"},
	}
	known := map[string]bool{"LAL": true, "BOS": true}

	// Destination outside the trade.
	_, err := resolveDestination(TradeAssetInput{ID: "p1", ToTeamID: "MIA"}, "LAL", teams, known)
	require.ErrorIs(t, err, ErrValidationFailed)

	// Asset routed back to its own team.
	_, err = resolveDestination(TradeAssetInput{ID: "p1", ToTeamID: "LAL"}, "LAL", teams, known)
	require.ErrorIs(t, err, ErrValidationFailed)
}
