package handlers

import (
	"errors"
	"net/http"

	"github.com/amin-97/sport-vibe/models"
	"github.com/amin-97/sport-vibe/services"
	"github.com/go-chi/chi/v5"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// ImportStatLines accepts a batch of season rows and upserts them. The whole
// batch is validated before any row is written.
func (h *StatsHandler) ImportStatLines(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Lines []models.CareerStatLine `json:"lines"`
	}

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Lines) == 0 {
		badRequestResponse(w, r, errors.New("lines must not be empty"))
		return
	}

	if err := h.statsService.ImportStatLines(r.Context(), input.Lines); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"imported": len(input.Lines)}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetPlayerCareer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		badRequestResponse(w, r, errors.New("missing playerID in URL path"))
		return
	}

	lines, err := h.statsService.PlayerCareer(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"seasons": lines}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetPlayerSeason(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	seasonID := chi.URLParam(r, "seasonID")
	if playerID == "" || seasonID == "" {
		badRequestResponse(w, r, errors.New("missing playerID or seasonID in URL path"))
		return
	}

	line, err := h.statsService.PlayerSeason(r.Context(), playerID, seasonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"season": line}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
