package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/rental-backend/internal/auth"
	"github.com/shareloop/rental-backend/internal/item"
	"github.com/shareloop/rental-backend/internal/photo"
	"github.com/shareloop/rental-backend/internal/pkg/request"
	"github.com/shareloop/rental-backend/internal/pkg/response"
)

type Handler struct {
	service photo.Service
}

func NewHandler(service photo.Service) *Handler {
	return &Handler{service: service}
}

// Upload attaches a photo to an item. Only the item owner may upload.
func (h *Handler) Upload(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}

	p, err := h.service.Upload(c.Request.Context(), uri.ID, auth.GetUserID(c), fileHeader)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPhotoResponse(p))
}

// ListByItem lists photo metadata for an item.
func (h *Handler) ListByItem(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	photos, err := h.service.ListByItem(c.Request.Context(), uri.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	items := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = NewPhotoResponse(p)
	}
	c.JSON(http.StatusOK, response.List(items))
}

// ServePhoto streams the photo content by ID.
func (h *Handler) ServePhoto(c *gin.Context) {
	h.serve(c, h.service.Download, "")
}

// ServeThumbnail streams the thumbnail by photo ID. Thumbnails are always JPEG.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	h.serve(c, h.service.DownloadThumbnail, "image/jpeg")
}

func (h *Handler) serve(c *gin.Context, download func(ctx context.Context, id string) (io.ReadCloser, *photo.Photo, error), forceType string) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	stream, p, err := download(c.Request.Context(), uri.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer stream.Close()

	contentType := p.ContentType
	if forceType != "" {
		contentType = forceType
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started; nothing sensible left to send.
		return
	}
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, auth.GetUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, photo.ErrNotFound), errors.Is(err, item.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, photo.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, photo.ErrNotImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, photo.ErrNoThumb):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "photo operation failed"})
	}
}
