package models

import (
	"strings"
	"time"
)

// Media kinds derived from the upload's MIME type
const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaGif   = "gif"
)

// Privacy settings for a showcase
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// Showcase represents a published media unit in a user's gallery.
// URL and StorageKey come from the external object store; the server
// never computes them.
type Showcase struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index"`
	URL           string    `json:"url"`
	StorageKey    string    `json:"storage_key"`
	MediaType     string    `json:"media_type" gorm:"size:10"`
	Caption       string    `json:"caption" gorm:"type:text"`
	Tags          []string  `json:"tags" gorm:"serializer:json"`
	Privacy       string    `json:"privacy" gorm:"size:10;default:'public'"`
	CommentsCount int       `json:"comments_count" gorm:"default:0"`
	LikesCount    int       `json:"likes_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MediaTypeFromMIME maps an upload MIME string to a media kind.
// image/gif is its own kind so the UI can loop it.
func MediaTypeFromMIME(mime string) string {
	switch {
	case mime == "image/gif":
		return MediaGif
	case strings.HasPrefix(mime, "video/"):
		return MediaVideo
	default:
		return MediaImage
	}
}

// CreateShowcaseRequest defines the request body sent on upload-complete
type CreateShowcaseRequest struct {
	URL        string   `json:"url" validate:"required,url"`
	StorageKey string   `json:"storage_key" validate:"required"`
	MimeType   string   `json:"mime_type" validate:"required"`
	Caption    string   `json:"caption" validate:"max=2200"`
	Tags       []string `json:"tags,omitempty" validate:"omitempty,dive,startswith=#"`
	Privacy    string   `json:"privacy" validate:"required,oneof=private public"`
}

// UpdateShowcaseRequest defines the request body for editing a showcase
type UpdateShowcaseRequest struct {
	Caption *string  `json:"caption,omitempty" validate:"omitempty,max=2200"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,dive,startswith=#"`
	Privacy *string  `json:"privacy,omitempty" validate:"omitempty,oneof=private public"`
}
