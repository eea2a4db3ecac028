package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentspot/rental-booking-backend/internal/auth"
	"github.com/rentspot/rental-booking-backend/internal/photo"
	"github.com/rentspot/rental-booking-backend/internal/pkg/apperror"
	"github.com/rentspot/rental-booking-backend/internal/pkg/request"
	"github.com/rentspot/rental-booking-backend/internal/pkg/response"
)

type Handler struct {
	photos photo.Service
}

func NewHandler(photos photo.Service) *Handler {
	return &Handler{photos: photos}
}

// Upload attaches an image to a property. Only the property owner may upload.
func (h *Handler) Upload(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid property id"))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "missing file in form data"))
		return
	}

	p, err := h.photos.Upload(c.Request.Context(), header, uri.ID, auth.GetCustomerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPhotoResponse(p))
}

func (h *Handler) ListByProperty(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid property id"))
		return
	}

	photos, err := h.photos.ListByProperty(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": NewPhotoResponses(photos)})
}

// ServePhoto streams the photo content by ID.
func (h *Handler) ServePhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid photo id"))
		return
	}

	stream, info, err := h.photos.Download(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", info.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+info.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started, nothing useful to send.
		return
	}
}

// ServeThumbnail streams the thumbnail by photo ID. Thumbnails are always JPEG.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid photo id"))
		return
	}

	stream, info, err := h.photos.DownloadThumbnail(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+info.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid photo id"))
		return
	}

	if err := h.photos.Delete(c.Request.Context(), uri.ID, auth.GetCustomerID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
