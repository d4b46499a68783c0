package handlers

import (
	"errors"
	"net/http"

	"github.com/amin-97/sport-vibe/middleware"
	"github.com/amin-97/sport-vibe/services"
	"github.com/go-chi/chi/v5"
)

type TradeHandler struct {
	tradeService services.TradeService
}

func NewTradeHandler(tradeService services.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// ValidateTrade runs the full rule engine over a proposed trade without
// touching rosters. Rule violations come back in the report body, not as an
// HTTP error.
func (h *TradeHandler) ValidateTrade(w http.ResponseWriter, r *http.Request) {
	var input services.TradeInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.tradeService.ValidateTrade(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"report": report}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExecuteTrade validates and, if legal, applies a trade atomically. A trade
// that fails validation returns 422 with the violation report.
func (h *TradeHandler) ExecuteTrade(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.TradeInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	trade, report, err := h.tradeService.ExecuteTrade(r.Context(), input, userID)
	if err != nil {
		if errors.Is(err, services.ErrTradeInvalid) {
			response := jsonResponse{
				"error":  err.Error(),
				"report": report,
			}
			if err := writeJSON(w, http.StatusUnprocessableEntity, response, nil); err != nil {
				serverErrorResponse(w, r, err)
			}
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"trade":  trade,
		"report": report,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tradeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	trade, err := h.tradeService.GetTrade(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"trade": trade}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TradeHandler) ListTrades(w http.ResponseWriter, r *http.Request) {
	limit := readQueryInt(r, "limit", 20)
	offset := readQueryInt(r, "offset", 0)

	trades, err := h.tradeService.ListTrades(r.Context(), limit, offset)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"trades": trades}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TradeHandler) ListTeamTrades(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	if teamID == "" {
		badRequestResponse(w, r, errors.New("missing teamID in URL path"))
		return
	}
	limit := readQueryInt(r, "limit", 20)

	trades, err := h.tradeService.ListTeamTrades(r.Context(), teamID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"trades": trades}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListExceptions returns every exception across the league, expired included.
func (h *TradeHandler) ListExceptions(w http.ResponseWriter, r *http.Request) {
	exceptions, err := h.tradeService.ListExceptions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"exceptions": exceptions}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListTeamExceptions returns a team's unexpired trade exceptions.
func (h *TradeHandler) ListTeamExceptions(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	if teamID == "" {
		badRequestResponse(w, r, errors.New("missing teamID in URL path"))
		return
	}

	exceptions, err := h.tradeService.TeamExceptions(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"exceptions": exceptions}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
