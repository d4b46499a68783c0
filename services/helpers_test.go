package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LeBron stays in LA", "lebron-stays-in-la"},
		{"  Trade Deadline: Winners & Losers!  ", "trade-deadline-winners-losers"},
		{"WWE Raw 01/15 Results", "wwe-raw-01-15-results"},
		{"---", ""},
		{"Already-Slugged-Title", "already-slugged-title"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestGetExtensionFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
		wantErr     bool
	}{
		{"image/jpeg", ".jpg", false},
		{"image/jpg", ".jpg", false},
		{"image/png", ".png", false},
		{"image/webp", ".webp", false},
		{"image/svg+xml", ".svg", false},
		{"application/pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		ext, err := GetExtensionFromContentType(tt.contentType)
		if tt.wantErr {
			require.Error(t, err, "content type %q", tt.contentType)
			continue
		}
		require.NoError(t, err, "content type %q", tt.contentType)
		assert.Equal(t, tt.want, ext)
	}
}
