package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amin-97/sport-vibe/models"
	"github.com/amin-97/sport-vibe/repositories"
	"github.com/amin-97/sport-vibe/storage"
)

type CreateNewsInput struct {
	League      models.League       `json:"league"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Content     string              `json:"content"`
	Category    models.NewsCategory `json:"category"`
	Tags        []string            `json:"tags"`
	Teams       []string            `json:"teams"`
	Players     []string            `json:"players"`
	Status      models.ContentStatus `json:"status"`
	Featured    bool                `json:"featured"`
}

type UpdateNewsInput struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	Content     *string               `json:"content,omitempty"`
	Category    *models.NewsCategory  `json:"category,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
	Teams       []string              `json:"teams,omitempty"`
	Players     []string              `json:"players,omitempty"`
	Status      *models.ContentStatus `json:"status,omitempty"`
	Featured    *bool                 `json:"featured,omitempty"`
}

type NewsService interface {
	Create(ctx context.Context, authorID int, input CreateNewsInput) (*models.News, error)
	GetBySlug(ctx context.Context, slug string, countView bool) (*models.News, error)
	List(ctx context.Context, filter repositories.NewsFilter) ([]*models.News, error)
	Update(ctx context.Context, id int, input UpdateNewsInput) (*models.News, error)
	UploadCover(ctx context.Context, id int, contentType string, reader io.Reader) (*models.News, error)
	Delete(ctx context.Context, id int) error
}

type newsService struct {
	newsRepo repositories.NewsRepository
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewNewsService(newsRepo repositories.NewsRepository, userRepo repositories.UserRepository, uploader storage.FileUploader) NewsService {
	return &newsService{newsRepo: newsRepo, userRepo: userRepo, uploader: uploader}
}

func validNewsCategory(c models.NewsCategory) bool {
	switch c {
	case models.CategoryNews, models.CategoryTrades, models.CategoryRumors,
		models.CategoryInjuries, models.CategoryRecap, models.CategoryAnalysis:
		return true
	}
	return false
}

func validLeague(l models.League) bool {
	return l == models.LeagueNBA || l == models.LeagueWrestling
}

func validContentStatus(s models.ContentStatus) bool {
	return s == models.ContentDraft || s == models.ContentPublished
}

func (s *newsService) Create(ctx context.Context, authorID int, input CreateNewsInput) (*models.News, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Content == "" {
		return nil, ErrContentRequired
	}
	if !validLeague(input.League) {
		return nil, ErrInvalidLeague
	}
	if !validNewsCategory(input.Category) {
		return nil, ErrInvalidCategory
	}
	if input.Status == "" {
		input.Status = models.ContentDraft
	}
	if !validContentStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	news := &models.News{
		League:      input.League,
		Title:       input.Title,
		Slug:        Slugify(input.Title),
		Description: input.Description,
		Content:     input.Content,
		Category:    input.Category,
		Tags:        input.Tags,
		Teams:       input.Teams,
		Players:     input.Players,
		AuthorID:    authorID,
		Status:      input.Status,
		Featured:    input.Featured,
	}

	if err := s.newsRepo.Create(ctx, news); err != nil {
		if errors.Is(err, repositories.ErrNewsSlugConflict) {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("failed to create news article: %w", err)
	}
	return news, nil
}

func (s *newsService) GetBySlug(ctx context.Context, slug string, countView bool) (*models.News, error) {
	news, err := s.newsRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get news article: %w", err)
	}

	if countView {
		// A failed view bump never blocks the read.
		if err := s.newsRepo.IncrementViews(ctx, news.ID); err == nil {
			news.Views++
		}
	}

	if author, err := s.userRepo.GetByID(ctx, news.AuthorID); err == nil {
		populateUserAvatarURL(author, s.uploader)
		news.Author = author
	}
	populateNewsCoverURL(news, s.uploader)
	return news, nil
}

func (s *newsService) List(ctx context.Context, filter repositories.NewsFilter) ([]*models.News, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	articles, err := s.newsRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	for _, article := range articles {
		populateNewsCoverURL(article, s.uploader)
	}
	return articles, nil
}

func (s *newsService) Update(ctx context.Context, id int, input UpdateNewsInput) (*models.News, error) {
	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get news article: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		news.Title = *input.Title
	}
	if input.Description != nil {
		news.Description = *input.Description
	}
	if input.Content != nil {
		if *input.Content == "" {
			return nil, ErrContentRequired
		}
		news.Content = *input.Content
	}
	if input.Category != nil {
		if !validNewsCategory(*input.Category) {
			return nil, ErrInvalidCategory
		}
		news.Category = *input.Category
	}
	if input.Tags != nil {
		news.Tags = input.Tags
	}
	if input.Teams != nil {
		news.Teams = input.Teams
	}
	if input.Players != nil {
		news.Players = input.Players
	}
	if input.Status != nil {
		if !validContentStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		news.Status = *input.Status
	}
	if input.Featured != nil {
		news.Featured = *input.Featured
	}

	if err := s.newsRepo.Update(ctx, news); err != nil {
		return nil, fmt.Errorf("failed to update news article: %w", err)
	}
	populateNewsCoverURL(news, s.uploader)
	return news, nil
}

func (s *newsService) UploadCover(ctx context.Context, id int, contentType string, reader io.Reader) (*models.News, error) {
	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get news article: %w", err)
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("news/%d/cover%s", news.ID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload news cover: %w", err)
	}

	if err := s.newsRepo.UpdateCoverKey(ctx, news.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save news cover key: %w", err)
	}
	news.CoverKey = &result.Key
	populateNewsCoverURL(news, s.uploader)
	return news, nil
}

func (s *newsService) Delete(ctx context.Context, id int) error {
	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get news article: %w", err)
	}

	if err := s.newsRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete news article: %w", err)
	}

	if news.CoverKey != nil && *news.CoverKey != "" {
		// Orphaned covers are cleaned up best-effort.
		_ = s.uploader.Delete(ctx, *news.CoverKey)
	}
	return nil
}
