package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sprachschule/internal/storage"
	"sprachschule/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// uploadCategories are the accepted values for the category field. They
// decide where the object lands in storage.
var uploadCategories = map[string]bool{
	"photo": true,
	"cover": true,
	"slide": true,
}

type uploadRequest struct {
	Category string `json:"category" binding:"required"`
	Data     string `json:"data" binding:"required"`
}

// UploadImage accepts a base64 or data URL image, stores it through the
// configured backend, and returns the public URL.
func (h *HTTPHandler) UploadImage(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not available"})
		return
	}

	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload payload"})
		return
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if !uploadCategories[category] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category must be photo, cover or slide"})
		return
	}

	data, ext, err := utils.DecodeMediaPayload(req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image data"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	key, err := h.storage.Save(ctx, data, storage.SaveOptions{
		Category:  category,
		Extension: ext,
	})
	if err != nil {
		logrus.WithError(err).WithField("category", category).Error("failed to store upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key": key,
		"url": h.publicMediaURL(key),
	})
}
