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

type EditorialHandler struct {
	editorialService services.EditorialService
}

func NewEditorialHandler(editorialService services.EditorialService) *EditorialHandler {
	return &EditorialHandler{editorialService: editorialService}
}

func (h *EditorialHandler) CreateEditorial(w http.ResponseWriter, r *http.Request) {
	authorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.CreateEditorialInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	editorial, err := h.editorialService.Create(r.Context(), authorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"editorial": editorial}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EditorialHandler) GetEditorialBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		badRequestResponse(w, r, errors.New("missing slug in URL path"))
		return
	}

	editorial, err := h.editorialService.GetBySlug(r.Context(), slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"editorial": editorial}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EditorialHandler) ListEditorials(w http.ResponseWriter, r *http.Request) {
	filter := repositories.EditorialFilter{
		Limit:  readQueryInt(r, "limit", 20),
		Offset: readQueryInt(r, "offset", 0),
	}

	if s := r.URL.Query().Get("league"); s != "" {
		league := models.League(s)
		filter.League = &league
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := models.ContentStatus(s)
		filter.Status = &status
	}

	items, err := h.editorialService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"editorials": items}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EditorialHandler) UpdateEditorial(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "editorialID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateEditorialInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	editorial, err := h.editorialService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"editorial": editorial}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EditorialHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "editorialID")
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

	editorial, err := h.editorialService.UploadCover(r.Context(), id, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"editorial": editorial}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EditorialHandler) DeleteEditorial(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "editorialID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.editorialService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
