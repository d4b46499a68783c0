package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/amin-97/sport-vibe/models"
	"github.com/amin-97/sport-vibe/repositories"
	"github.com/amin-97/sport-vibe/storage"
)

type CreateWrestlingResultInput struct {
	Name      string                  `json:"name"`
	Date      time.Time               `json:"date"`
	Venue     string                  `json:"venue"`
	Promotion models.Promotion        `json:"promotion"`
	Matches   []models.WrestlingMatch `json:"matches"`
	Status    models.ContentStatus    `json:"status"`
}

type UpdateWrestlingResultInput struct {
	Name      *string                 `json:"name,omitempty"`
	Date      *time.Time              `json:"date,omitempty"`
	Venue     *string                 `json:"venue,omitempty"`
	Promotion *models.Promotion       `json:"promotion,omitempty"`
	Matches   []models.WrestlingMatch `json:"matches,omitempty"`
	Status    *models.ContentStatus   `json:"status,omitempty"`
}

type WrestlingService interface {
	Create(ctx context.Context, authorID int, input CreateWrestlingResultInput) (*models.WrestlingResult, error)
	GetBySlug(ctx context.Context, slug string) (*models.WrestlingResult, error)
	List(ctx context.Context, filter repositories.WrestlingResultFilter) ([]*models.WrestlingResult, error)
	Update(ctx context.Context, id int, input UpdateWrestlingResultInput) (*models.WrestlingResult, error)
	UploadCover(ctx context.Context, id int, contentType string, reader io.Reader) (*models.WrestlingResult, error)
	Delete(ctx context.Context, id int) error
}

type wrestlingService struct {
	resultRepo repositories.WrestlingResultRepository
	uploader   storage.FileUploader
}

func NewWrestlingService(resultRepo repositories.WrestlingResultRepository, uploader storage.FileUploader) WrestlingService {
	return &wrestlingService{resultRepo: resultRepo, uploader: uploader}
}

func validPromotion(p models.Promotion) bool {
	return p == models.PromotionWWE || p == models.PromotionAEW
}

func (s *wrestlingService) Create(ctx context.Context, authorID int, input CreateWrestlingResultInput) (*models.WrestlingResult, error) {
	if input.Name == "" {
		return nil, ErrTitleRequired
	}
	if !validPromotion(input.Promotion) {
		return nil, ErrInvalidPromotion
	}
	if input.Status == "" {
		input.Status = models.ContentDraft
	}
	if !validContentStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	result := &models.WrestlingResult{
		Name:      input.Name,
		Slug:      Slugify(input.Name),
		Date:      input.Date,
		Venue:     input.Venue,
		Promotion: input.Promotion,
		Matches:   input.Matches,
		AuthorID:  authorID,
		Status:    input.Status,
	}

	if err := s.resultRepo.Create(ctx, result); err != nil {
		if errors.Is(err, repositories.ErrWrestlingResultSlugConflict) {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("failed to create wrestling result: %w", err)
	}
	return result, nil
}

func (s *wrestlingService) GetBySlug(ctx context.Context, slug string) (*models.WrestlingResult, error) {
	result, err := s.resultRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrWrestlingResultNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wrestling result: %w", err)
	}
	populateWrestlingCoverURL(result, s.uploader)
	return result, nil
}

func (s *wrestlingService) List(ctx context.Context, filter repositories.WrestlingResultFilter) ([]*models.WrestlingResult, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	results, err := s.resultRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list wrestling results: %w", err)
	}
	for _, result := range results {
		populateWrestlingCoverURL(result, s.uploader)
	}
	return results, nil
}

func (s *wrestlingService) Update(ctx context.Context, id int, input UpdateWrestlingResultInput) (*models.WrestlingResult, error) {
	result, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrWrestlingResultNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wrestling result: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrTitleRequired
		}
		result.Name = *input.Name
	}
	if input.Date != nil {
		result.Date = *input.Date
	}
	if input.Venue != nil {
		result.Venue = *input.Venue
	}
	if input.Promotion != nil {
		if !validPromotion(*input.Promotion) {
			return nil, ErrInvalidPromotion
		}
		result.Promotion = *input.Promotion
	}
	if input.Matches != nil {
		result.Matches = input.Matches
	}
	if input.Status != nil {
		if !validContentStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		result.Status = *input.Status
	}

	if err := s.resultRepo.Update(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to update wrestling result: %w", err)
	}
	populateWrestlingCoverURL(result, s.uploader)
	return result, nil
}

func (s *wrestlingService) UploadCover(ctx context.Context, id int, contentType string, reader io.Reader) (*models.WrestlingResult, error) {
	result, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrWrestlingResultNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wrestling result: %w", err)
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("wrestling/%d/cover%s", result.ID, ext)
	uploaded, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload wrestling cover: %w", err)
	}

	if err := s.resultRepo.UpdateCoverKey(ctx, result.ID, &uploaded.Key); err != nil {
		return nil, fmt.Errorf("failed to save wrestling cover key: %w", err)
	}
	result.CoverKey = &uploaded.Key
	populateWrestlingCoverURL(result, s.uploader)
	return result, nil
}

func (s *wrestlingService) Delete(ctx context.Context, id int) error {
	result, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrWrestlingResultNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get wrestling result: %w", err)
	}

	if err := s.resultRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete wrestling result: %w", err)
	}

	if result.CoverKey != nil && *result.CoverKey != "" {
		_ = s.uploader.Delete(ctx, *result.CoverKey)
	}
	return nil
}
