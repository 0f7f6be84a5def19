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

// ListAvailableAssignments returns assignments from all courses the calling
// student is actively enrolled in.
func (h *HTTPHandler) ListAvailableAssignments(c *gin.Context) {
	identity := CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	enrollments, err := h.repo.ListActiveEnrollmentsByStudent(ctx, identity.ProfileID)
	if err != nil {
		logrus.WithError(err).Error("failed to list enrollments for assignments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assignments"})
		return
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for i := range enrollments {
		courseIDs = append(courseIDs, enrollments[i].CourseID)
	}

	assignments := []entity.DbAssignment{}
	if len(courseIDs) > 0 {
		assignments, err = h.repo.ListAssignmentsByCourses(ctx, courseIDs)
		if err != nil {
			logrus.WithError(err).Error("failed to list assignments by courses")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assignments"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

// ListMySubmissions returns the calling student's submissions.
func (h *HTTPHandler) ListMySubmissions(c *gin.Context) {
	identity := CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	submissions, err := h.repo.ListSubmissionsByStudent(ctx, identity.ProfileID)
	if err != nil {
		logrus.WithError(err).Error("failed to list submissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// SubmitAssignment records the student's answer. Each student submits at most
// once per assignment; a second attempt returns the existing submission ID.
// Submissions after the due date are accepted but flagged late.
func (h *HTTPHandler) SubmitAssignment(c *gin.Context) {
	identity := CurrentIdentity(c)

	var req entity.SubmissionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	assignment, err := h.repo.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		logrus.WithError(err).WithField("assignment_id", req.AssignmentID).Error("failed to load assignment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit"})
		return
	}

	// The assignment must come from a course the student is enrolled in.
	if _, err := h.repo.GetActiveEnrollment(ctx, identity.ProfileID, assignment.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not enrolled in this assignment's course"})
			return
		}
		logrus.WithError(err).Error("failed to check enrollment for submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit"})
		return
	}

	existing, err := h.repo.GetSubmissionByAssignmentAndStudent(ctx, assignment.ID, identity.ProfileID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("failed to check existing submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "assignment already submitted",
			"submission_id": existing.ID,
		})
		return
	}

	now := time.Now()
	submission := &entity.DbSubmission{
		AssignmentID: assignment.ID,
		StudentID:    identity.ProfileID,
		Content:      req.Content,
		IsLate:       now.After(assignment.DueDate),
		SubmittedAt:  now,
	}

	if err := h.repo.CreateSubmission(ctx, submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "assignment already submitted"})
			return
		}
		logrus.WithError(err).Error("failed to create submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit"})
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// UpdateMySubmission rewrites the answer of an ungraded submission. Graded
// submissions are immutable for the student.
func (h *HTTPHandler) UpdateMySubmission(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.SubmissionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	submission, err := h.repo.GetSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		logrus.WithError(err).WithField("submission_id", id).Error("failed to load submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update submission"})
		return
	}

	if submission.StudentID != identity.ProfileID {
		c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
		return
	}

	if submission.IsGraded() {
		BadRequest(c, ErrCodeSubmissionGraded, "submission has been graded and can no longer be changed")
		return
	}

	if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content must not be empty"})
		return
	}

	updates := map[string]interface{}{
		"content":      *req.Content,
		"submitted_at": time.Now(),
	}

	if err := h.repo.UpdateSubmission(ctx, submission.ID, updates); err != nil {
		logrus.WithError(err).WithField("submission_id", submission.ID).Error("failed to update submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update submission"})
		return
	}

	updated, err := h.repo.GetSubmission(ctx, submission.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload submission after update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated submission"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteMySubmission withdraws an ungraded submission.
func (h *HTTPHandler) DeleteMySubmission(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	submission, err := h.repo.GetSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		logrus.WithError(err).WithField("submission_id", id).Error("failed to load submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete submission"})
		return
	}

	if submission.StudentID != identity.ProfileID {
		c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
		return
	}

	if submission.IsGraded() {
		BadRequest(c, ErrCodeSubmissionGraded, "submission has been graded and can no longer be changed")
		return
	}

	if err := h.repo.DeleteSubmission(ctx, submission.ID); err != nil {
		logrus.WithError(err).WithField("submission_id", submission.ID).Error("failed to delete submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete submission"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GradeSubmission records the teacher's grade and feedback on a submission to
// one of the teacher's own assignments.
func (h *HTTPHandler) GradeSubmission(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid grade payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	submission, err := h.repo.GetSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		logrus.WithError(err).WithField("submission_id", id).Error("failed to load submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to grade submission"})
		return
	}

	// Ownership runs through the assignment.
	if _, ok := h.ownedAssignment(c, ctx, submission.AssignmentID); !ok {
		return
	}

	// Grading is append-only: a grade, once recorded, is never overwritten.
	if submission.IsGraded() {
		BadRequest(c, ErrCodeSubmissionGraded, "submission has already been graded")
		return
	}

	updates := map[string]interface{}{
		"grade":    strings.TrimSpace(req.Grade),
		"feedback": req.Feedback,
	}

	if err := h.repo.UpdateSubmission(ctx, submission.ID, updates); err != nil {
		logrus.WithError(err).WithField("submission_id", submission.ID).Error("failed to grade submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to grade submission"})
		return
	}

	updated, err := h.repo.GetSubmission(ctx, submission.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload submission after grading")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load graded submission"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
