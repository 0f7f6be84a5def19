package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"sprachschule/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Hero slides

func (h *HTTPHandler) ListHeroSlides(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	slides, err := h.repo.ListHeroSlides(ctx, false)
	if err != nil {
		logrus.WithError(err).Error("failed to list hero slides")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load hero slides"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero_slides": slides})
}

func (h *HTTPHandler) CreateHeroSlide(c *gin.Context) {
	var req entity.HeroSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hero slide payload"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	slide := &entity.DbHeroSlide{
		Title:    strings.TrimSpace(req.Title),
		Subtitle: strings.TrimSpace(req.Subtitle),
		ImageURL: strings.TrimSpace(req.ImageURL),
		LinkURL:  strings.TrimSpace(req.LinkURL),
		IsActive: isActive,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateHeroSlide(ctx, slide); err != nil {
		logrus.WithError(err).Error("failed to create hero slide")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create hero slide"})
		return
	}
	c.JSON(http.StatusCreated, slide)
}

func (h *HTTPHandler) UpdateHeroSlide(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req entity.HeroSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hero slide payload"})
		return
	}

	updates := map[string]interface{}{
		"title":     strings.TrimSpace(req.Title),
		"subtitle":  strings.TrimSpace(req.Subtitle),
		"image_url": strings.TrimSpace(req.ImageURL),
		"link_url":  strings.TrimSpace(req.LinkURL),
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateHeroSlide(ctx, id, updates); err != nil {
		h.writeContentError(c, err, "hero slide")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *HTTPHandler) DeleteHeroSlide(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteHeroSlide(ctx, id); err != nil {
		h.writeContentError(c, err, "hero slide")
		return
	}
	c.Status(http.StatusNoContent)
}

// MoveHeroSlide swaps the slide with its neighbor in display order. Moving
// the first item up or the last item down is a no-op, not an error.
func (h *HTTPHandler) MoveHeroSlide(c *gin.Context) {
	id, direction, ok := h.bindMove(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.MoveHeroSlide(ctx, id, direction); err != nil {
		h.writeContentError(c, err, "hero slide")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Feature items

func (h *HTTPHandler) ListFeatureItems(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.repo.ListFeatureItems(ctx, false)
	if err != nil {
		logrus.WithError(err).Error("failed to list feature items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feature items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"features": items})
}

func (h *HTTPHandler) CreateFeatureItem(c *gin.Context) {
	var req entity.FeatureItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feature payload"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	item := &entity.DbFeatureItem{
		Title:    strings.TrimSpace(req.Title),
		Body:     req.Body,
		Icon:     strings.TrimSpace(req.Icon),
		IsActive: isActive,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateFeatureItem(ctx, item); err != nil {
		logrus.WithError(err).Error("failed to create feature item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create feature item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *HTTPHandler) UpdateFeatureItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req entity.FeatureItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feature payload"})
		return
	}

	updates := map[string]interface{}{
		"title": strings.TrimSpace(req.Title),
		"body":  req.Body,
		"icon":  strings.TrimSpace(req.Icon),
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateFeatureItem(ctx, id, updates); err != nil {
		h.writeContentError(c, err, "feature item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *HTTPHandler) DeleteFeatureItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteFeatureItem(ctx, id); err != nil {
		h.writeContentError(c, err, "feature item")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) MoveFeatureItem(c *gin.Context) {
	id, direction, ok := h.bindMove(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.MoveFeatureItem(ctx, id, direction); err != nil {
		h.writeContentError(c, err, "feature item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Statistics

func (h *HTTPHandler) ListStatistics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.repo.ListStatistics(ctx, false)
	if err != nil {
		logrus.WithError(err).Error("failed to list statistics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}

func (h *HTTPHandler) CreateStatistic(c *gin.Context) {
	var req entity.StatisticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid statistic payload"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	stat := &entity.DbStatistic{
		Label:    strings.TrimSpace(req.Label),
		Value:    strings.TrimSpace(req.Value),
		IsActive: isActive,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateStatistic(ctx, stat); err != nil {
		logrus.WithError(err).Error("failed to create statistic")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create statistic"})
		return
	}
	c.JSON(http.StatusCreated, stat)
}

func (h *HTTPHandler) UpdateStatistic(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req entity.StatisticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid statistic payload"})
		return
	}

	updates := map[string]interface{}{
		"label": strings.TrimSpace(req.Label),
		"value": strings.TrimSpace(req.Value),
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateStatistic(ctx, id, updates); err != nil {
		h.writeContentError(c, err, "statistic")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *HTTPHandler) DeleteStatistic(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteStatistic(ctx, id); err != nil {
		h.writeContentError(c, err, "statistic")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) MoveStatistic(c *gin.Context) {
	id, direction, ok := h.bindMove(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.MoveStatistic(ctx, id, direction); err != nil {
		h.writeContentError(c, err, "statistic")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Charters

func (h *HTTPHandler) ListCharters(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	charters, err := h.repo.ListCharters(ctx, false)
	if err != nil {
		logrus.WithError(err).Error("failed to list charters")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load charters"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"charters": charters})
}

func (h *HTTPHandler) CreateCharter(c *gin.Context) {
	var req entity.CharterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid charter payload"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	charter := &entity.DbCharter{
		Title:    strings.TrimSpace(req.Title),
		Body:     req.Body,
		IsActive: isActive,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateCharter(ctx, charter); err != nil {
		logrus.WithError(err).Error("failed to create charter")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create charter"})
		return
	}
	c.JSON(http.StatusCreated, charter)
}

func (h *HTTPHandler) UpdateCharter(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req entity.CharterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid charter payload"})
		return
	}

	updates := map[string]interface{}{
		"title": strings.TrimSpace(req.Title),
		"body":  req.Body,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateCharter(ctx, id, updates); err != nil {
		h.writeContentError(c, err, "charter")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *HTTPHandler) DeleteCharter(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteCharter(ctx, id); err != nil {
		h.writeContentError(c, err, "charter")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) MoveCharter(c *gin.Context) {
	id, direction, ok := h.bindMove(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.MoveCharter(ctx, id, direction); err != nil {
		h.writeContentError(c, err, "charter")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Shared helpers

func (h *HTTPHandler) bindMove(c *gin.Context) (uint, string, bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return 0, "", false
	}
	var req entity.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be up or down"})
		return 0, "", false
	}
	return id, req.Direction, true
}

func (h *HTTPHandler) writeContentError(c *gin.Context, err error, label string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": label + " not found"})
		return
	}
	logrus.WithError(err).Error("failed to update " + label)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update " + label})
}
