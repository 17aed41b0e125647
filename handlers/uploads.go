package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crossingbook/crossingbook/internal/storage"
	"github.com/crossingbook/crossingbook/pkg/logger"
	"github.com/crossingbook/crossingbook/pkg/middleware"
)

// presigned image URLs stay valid long enough for casual browsing sessions
const imageURLTTL = 7 * 24 * time.Hour

// UploadHandler stores recipe images and hands back URLs for the image_url
// form field.
type UploadHandler struct {
	store *storage.ImageStore
}

func NewUploadHandler(store *storage.ImageStore) *UploadHandler {
	return &UploadHandler{store: store}
}

func (h *UploadHandler) Register(r *gin.Engine) {
	r.POST("/upload_image", middleware.RequireUser(), h.UploadImage)
}

// UploadImage accepts a multipart "image" file, stores it and returns the URL.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer src.Close()

	key := uuid.NewString() + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")
	if err := h.store.Upload(c.Request.Context(), key, src, file.Size, contentType); err != nil {
		logger.Errorf("image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	url, err := h.store.PresignedURL(c.Request.Context(), key, imageURLTTL)
	if err != nil {
		logger.Errorf("presign failed for %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create image url"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"image_url": url, "key": key})
}
