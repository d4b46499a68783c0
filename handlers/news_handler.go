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

type NewsHandler struct {
	newsService services.NewsService
}

func NewNewsHandler(newsService services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

func (h *NewsHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	authorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.CreateNewsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	news, err := h.newsService.Create(r.Context(), authorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"news": news}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetNewsBySlug returns a single article and bumps its view counter.
func (h *NewsHandler) GetNewsBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		badRequestResponse(w, r, errors.New("missing slug in URL path"))
		return
	}

	news, err := h.newsService.GetBySlug(r.Context(), slug, true)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"news": news}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	filter := repositories.NewsFilter{
		Limit:  readQueryInt(r, "limit", 20),
		Offset: readQueryInt(r, "offset", 0),
	}

	if s := r.URL.Query().Get("league"); s != "" {
		league := models.League(s)
		filter.League = &league
	}
	if s := r.URL.Query().Get("category"); s != "" {
		category := models.NewsCategory(s)
		filter.Category = &category
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := models.ContentStatus(s)
		filter.Status = &status
	}
	if s := r.URL.Query().Get("featured"); s != "" {
		featured := s == "true"
		filter.Featured = &featured
	}

	items, err := h.newsService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"news": items}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "newsID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateNewsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	news, err := h.newsService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"news": news}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "newsID")
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

	news, err := h.newsService.UploadCover(r.Context(), id, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"news": news}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "newsID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.newsService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
