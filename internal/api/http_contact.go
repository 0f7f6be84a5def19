package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"sprachschule/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SubmitContactMessage stores a message from the public contact form.
func (h *HTTPHandler) SubmitContactMessage(c *gin.Context) {
	var req entity.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact payload"})
		return
	}

	message := &entity.DbContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Body:    req.Body,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateContactMessage(ctx, message); err != nil {
		logrus.WithError(err).Error("failed to store contact message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": message.ID})
}

// SubmitConsultation registers a consultation request and returns a reference
// code the caller can quote later.
func (h *HTTPHandler) SubmitConsultation(c *gin.Context) {
	var req entity.ConsultationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid consultation payload"})
		return
	}

	request := &entity.DbConsultationRequest{
		Reference: uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Language:  strings.ToLower(strings.TrimSpace(req.Language)),
		Level:     strings.TrimSpace(req.Level),
		Note:      req.Note,
		Status:    entity.ConsultationStatusPending,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateConsultation(ctx, request); err != nil {
		logrus.WithError(err).Error("failed to store consultation request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to request consultation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        request.ID,
		"reference": request.Reference,
	})
}

// Admin management of inbound requests.

func (h *HTTPHandler) ListContactMessages(c *gin.Context) {
	var params entity.BaseParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	messages, meta, err := h.repo.ListContactMessages(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("failed to list contact messages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "meta": meta})
}

func (h *HTTPHandler) DeleteContactMessage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteContactMessage(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		logrus.WithError(err).WithField("message_id", id).Error("failed to delete contact message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) ListConsultations(c *gin.Context) {
	var params entity.BaseParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	status := strings.TrimSpace(c.Query("status"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	consultations, meta, err := h.repo.ListConsultations(ctx, &params, status)
	if err != nil {
		logrus.WithError(err).Error("failed to list consultations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load consultations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultations": consultations, "meta": meta})
}

func (h *HTTPHandler) UpdateConsultationStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.ConsultationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending, scheduled or done"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateConsultationStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "consultation not found"})
			return
		}
		logrus.WithError(err).WithField("consultation_id", id).Error("failed to update consultation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update consultation"})
		return
	}

	consultation, err := h.repo.GetConsultation(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("failed to reload consultation after update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated consultation"})
		return
	}

	c.JSON(http.StatusOK, consultation)
}
