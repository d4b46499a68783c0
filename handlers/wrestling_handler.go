package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/amin-97/sport-vibe/middleware"
	"github.com/amin-97/sport-vibe/models"
	"github.com/amin-97/sport-vibe/repositories"
	"github.com/amin-97/sport-vibe/services"
	"github.com/go-chi/chi/v5"
)

type WrestlingHandler struct {
	wrestlingService services.WrestlingService
}

func NewWrestlingHandler(wrestlingService services.WrestlingService) *WrestlingHandler {
	return &WrestlingHandler{wrestlingService: wrestlingService}
}

func (h *WrestlingHandler) CreateResult(w http.ResponseWriter, r *http.Request) {
	authorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.CreateWrestlingResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.wrestlingService.Create(r.Context(), authorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"result": result}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WrestlingHandler) GetResultBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		badRequestResponse(w, r, errors.New("missing slug in URL path"))
		return
	}

	result, err := h.wrestlingService.GetBySlug(r.Context(), slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"result": result}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WrestlingHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	filter := repositories.WrestlingResultFilter{
		Limit:  readQueryInt(r, "limit", 20),
		Offset: readQueryInt(r, "offset", 0),
	}

	if s := r.URL.Query().Get("promotion"); s != "" {
		promotion := models.Promotion(s)
		filter.Promotion = &promotion
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := models.ContentStatus(s)
		filter.Status = &status
	}

	items, err := h.wrestlingService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"results": items}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WrestlingHandler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "resultID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateWrestlingResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.wrestlingService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"result": result}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WrestlingHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "resultID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get cover file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for cover"))
		return
	}

	result, err := h.wrestlingService.UploadCover(r.Context(), id, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"result": result}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WrestlingHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "resultID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.wrestlingService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
