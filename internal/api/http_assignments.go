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

// ListMyAssignments returns the calling teacher's assignments.
func (h *HTTPHandler) ListMyAssignments(c *gin.Context) {
	identity := CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	assignments, err := h.repo.ListAssignmentsByTeacher(ctx, identity.ProfileID)
	if err != nil {
		logrus.WithError(err).Error("failed to list assignments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

// GetMyAssignment returns one owned assignment with its submissions.
func (h *HTTPHandler) GetMyAssignment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	assignment, ok := h.ownedAssignment(c, ctx, id)
	if !ok {
		return
	}

	submissions, err := h.repo.ListSubmissionsByAssignment(ctx, assignment.ID)
	if err != nil {
		logrus.WithError(err).WithField("assignment_id", assignment.ID).Error("failed to load submissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assignment"})
		return
	}

	c.JSON(http.StatusOK, entity.AssignmentDetail{DbAssignment: *assignment, Submissions: submissions})
}

// CreateAssignment attaches homework to one of the teacher's own courses.
func (h *HTTPHandler) CreateAssignment(c *gin.Context) {
	identity := CurrentIdentity(c)

	var req entity.AssignmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, ok := h.ownedCourse(c, ctx, req.CourseID); !ok {
		return
	}

	assignment := &entity.DbAssignment{
		TeacherID:   identity.ProfileID,
		CourseID:    req.CourseID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	if err := h.repo.CreateAssignment(ctx, assignment); err != nil {
		logrus.WithError(err).Error("failed to create assignment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create assignment"})
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *HTTPHandler) UpdateAssignment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.AssignmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	assignment, ok := h.ownedAssignment(c, ctx, id)
	if !ok {
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, assignment)
		return
	}

	if err := h.repo.UpdateAssignment(ctx, assignment.ID, updates); err != nil {
		logrus.WithError(err).WithField("assignment_id", assignment.ID).Error("failed to update assignment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update assignment"})
		return
	}

	updated, err := h.repo.GetAssignment(ctx, assignment.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload assignment after update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated assignment"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAssignment refuses while submissions exist, to keep student work.
func (h *HTTPHandler) DeleteAssignment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	assignment, ok := h.ownedAssignment(c, ctx, id)
	if !ok {
		return
	}

	submissions, err := h.repo.ListSubmissionsByAssignment(ctx, assignment.ID)
	if err != nil {
		logrus.WithError(err).WithField("assignment_id", assignment.ID).Error("failed to check submissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete assignment"})
		return
	}
	if len(submissions) > 0 {
		ids := make([]uint, 0, len(submissions))
		for i := range submissions {
			ids = append(ids, submissions[i].ID)
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "assignment already has submissions",
			"details": gin.H{"resource": "submissions", "ids": ids},
		})
		return
	}

	if err := h.repo.DeleteAssignment(ctx, assignment.ID); err != nil {
		logrus.WithError(err).WithField("assignment_id", assignment.ID).Error("failed to delete assignment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete assignment"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) ownedAssignment(c *gin.Context, ctx context.Context, id uint) (*entity.DbAssignment, bool) {
	identity := CurrentIdentity(c)

	assignment, err := h.repo.GetAssignment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeAssignmentNotFound, "assignment not found")
			return nil, false
		}
		logrus.WithError(err).WithField("assignment_id", id).Error("failed to load assignment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assignment"})
		return nil, false
	}

	if assignment.TeacherID != identity.ProfileID {
		NotFound(c, ErrCodeAssignmentNotFound, "assignment not found")
		return nil, false
	}
	return assignment, true
}
