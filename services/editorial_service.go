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

type CreateEditorialInput struct {
	League       models.League        `json:"league"`
	Title        string               `json:"title"`
	Summary      string               `json:"summary"`
	Content      string               `json:"content"`
	KeyArguments []string             `json:"key_arguments"`
	Topics       []string             `json:"topics"`
	Status       models.ContentStatus `json:"status"`
}

type UpdateEditorialInput struct {
	Title        *string               `json:"title,omitempty"`
	Summary      *string               `json:"summary,omitempty"`
	Content      *string               `json:"content,omitempty"`
	KeyArguments []string              `json:"key_arguments,omitempty"`
	Topics       []string              `json:"topics,omitempty"`
	Status       *models.ContentStatus `json:"status,omitempty"`
}

type EditorialService interface {
	Create(ctx context.Context, authorID int, input CreateEditorialInput) (*models.Editorial, error)
	GetBySlug(ctx context.Context, slug string) (*models.Editorial, error)
	List(ctx context.Context, filter repositories.EditorialFilter) ([]*models.Editorial, error)
	Update(ctx context.Context, id int, input UpdateEditorialInput) (*models.Editorial, error)
	UploadCover(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Editorial, error)
	Delete(ctx context.Context, id int) error
}

type editorialService struct {
	editorialRepo repositories.EditorialRepository
	userRepo      repositories.UserRepository
	uploader      storage.FileUploader
}

func NewEditorialService(editorialRepo repositories.EditorialRepository, userRepo repositories.UserRepository, uploader storage.FileUploader) EditorialService {
	return &editorialService{editorialRepo: editorialRepo, userRepo: userRepo, uploader: uploader}
}

func (s *editorialService) Create(ctx context.Context, authorID int, input CreateEditorialInput) (*models.Editorial, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Content == "" {
		return nil, ErrContentRequired
	}
	if !validLeague(input.League) {
		return nil, ErrInvalidLeague
	}
	if input.Status == "" {
		input.Status = models.ContentDraft
	}
	if !validContentStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	editorial := &models.Editorial{
		League:       input.League,
		Title:        input.Title,
		Slug:         Slugify(input.Title),
		Summary:      input.Summary,
		Content:      input.Content,
		KeyArguments: input.KeyArguments,
		Topics:       input.Topics,
		AuthorID:     authorID,
		Status:       input.Status,
	}

	if err := s.editorialRepo.Create(ctx, editorial); err != nil {
		if errors.Is(err, repositories.ErrEditorialSlugConflict) {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("failed to create editorial: %w", err)
	}
	return editorial, nil
}

func (s *editorialService) GetBySlug(ctx context.Context, slug string) (*models.Editorial, error) {
	editorial, err := s.editorialRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrEditorialNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get editorial: %w", err)
	}

	if author, err := s.userRepo.GetByID(ctx, editorial.AuthorID); err == nil {
		populateUserAvatarURL(author, s.uploader)
		editorial.Author = author
	}
	populateEditorialCoverURL(editorial, s.uploader)
	return editorial, nil
}

func (s *editorialService) List(ctx context.Context, filter repositories.EditorialFilter) ([]*models.Editorial, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	editorials, err := s.editorialRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list editorials: %w", err)
	}
	for _, editorial := range editorials {
		populateEditorialCoverURL(editorial, s.uploader)
	}
	return editorials, nil
}

func (s *editorialService) Update(ctx context.Context, id int, input UpdateEditorialInput) (*models.Editorial, error) {
	editorial, err := s.editorialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEditorialNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get editorial: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		editorial.Title = *input.Title
	}
	if input.Summary != nil {
		editorial.Summary = *input.Summary
	}
	if input.Content != nil {
		if *input.Content == "" {
			return nil, ErrContentRequired
		}
		editorial.Content = *input.Content
	}
	if input.KeyArguments != nil {
		editorial.KeyArguments = input.KeyArguments
	}
	if input.Topics != nil {
		editorial.Topics = input.Topics
	}
	if input.Status != nil {
		if !validContentStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		editorial.Status = *input.Status
	}

	if err := s.editorialRepo.Update(ctx, editorial); err != nil {
		return nil, fmt.Errorf("failed to update editorial: %w", err)
	}
	populateEditorialCoverURL(editorial, s.uploader)
	return editorial, nil
}

func (s *editorialService) UploadCover(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Editorial, error) {
	editorial, err := s.editorialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEditorialNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get editorial: %w", err)
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("editorials/%d/cover%s", editorial.ID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload editorial cover: %w", err)
	}

	if err := s.editorialRepo.UpdateCoverKey(ctx, editorial.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save editorial cover key: %w", err)
	}
	editorial.CoverKey = &result.Key
	populateEditorialCoverURL(editorial, s.uploader)
	return editorial, nil
}

func (s *editorialService) Delete(ctx context.Context, id int) error {
	editorial, err := s.editorialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEditorialNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get editorial: %w", err)
	}

	if err := s.editorialRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete editorial: %w", err)
	}

	if editorial.CoverKey != nil && *editorial.CoverKey != "" {
		_ = s.uploader.Delete(ctx, *editorial.CoverKey)
	}
	return nil
}
