package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/amin-97/sport-vibe/models"
	"github.com/amin-97/sport-vibe/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL-safe slug: lowercase, hyphen-separated,
// stripped of punctuation.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GetExtensionFromContentType maps an image MIME type to a file extension
// for storage keys.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type: '%s'", contentType)
	}
}

func populateNewsCoverURL(news *models.News, uploader storage.FileUploader) {
	if news != nil && news.CoverKey != nil && *news.CoverKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*news.CoverKey); url != "" {
			news.CoverURL = &url
		}
	}
}

func populateEditorialCoverURL(editorial *models.Editorial, uploader storage.FileUploader) {
	if editorial != nil && editorial.CoverKey != nil && *editorial.CoverKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*editorial.CoverKey); url != "" {
			editorial.CoverURL = &url
		}
	}
}

func populateWrestlingCoverURL(result *models.WrestlingResult, uploader storage.FileUploader) {
	if result != nil && result.CoverKey != nil && *result.CoverKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*result.CoverKey); url != "" {
			result.CoverURL = &url
		}
	}
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*team.LogoKey); url != "" {
			team.LogoURL = &url
		}
	}
}

func populateUserAvatarURL(user *models.User, uploader storage.FileUploader) {
	if user == nil {
		return
	}
	user.PasswordHash = ""
	if user.AvatarKey != nil && *user.AvatarKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*user.AvatarKey); url != "" {
			user.AvatarURL = &url
		}
	}
}
