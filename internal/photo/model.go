package photo

import (
	"net/http"
	"time"

	"github.com/rentspot/rental-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "photo not found")
	ErrNotAnImage   = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrNoThumbnail  = apperror.New(http.StatusNotFound, "thumbnail not available for this photo")
)

// Photo is an image attached to a property listing.
type Photo struct {
	ID            string
	PropertyID    string
	Filename      string
	StoragePath   string  // internal path, never exposed
	ThumbnailPath *string // internal path, never exposed
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public URL for downloading a photo by its ID.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL for a photo's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
