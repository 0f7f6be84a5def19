package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sprachschule/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListMyEnrollments returns the calling student's enrollments with courses.
func (h *HTTPHandler) ListMyEnrollments(c *gin.Context) {
	identity := CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	enrollments, err := h.repo.ListEnrollmentsByStudent(ctx, identity.ProfileID)
	if err != nil {
		logrus.WithError(err).Error("failed to list enrollments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load enrollments"})
		return
	}

	details := make([]entity.EnrollmentDetail, 0, len(enrollments))
	for i := range enrollments {
		detail := entity.EnrollmentDetail{DbEnrollment: enrollments[i]}
		course, err := h.repo.GetCourse(ctx, enrollments[i].CourseID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithError(err).WithField("course_id", enrollments[i].CourseID).Error("failed to load enrolled course")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load enrollments"})
				return
			}
		} else {
			detail.Course = *course
		}
		details = append(details, detail)
	}

	c.JSON(http.StatusOK, gin.H{"enrollments": details})
}

// Enroll places the calling student into a course. Inactive courses, full
// courses, and duplicate active enrollments are all rejected.
func (h *HTTPHandler) Enroll(c *gin.Context) {
	identity := CurrentIdentity(c)

	var req entity.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid enrollment payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	course, err := h.repo.GetCourse(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		logrus.WithError(err).WithField("course_id", req.CourseID).Error("failed to load course for enrollment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enroll"})
		return
	}

	if !course.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course is not open for enrollment"})
		return
	}

	existing, err := h.repo.GetActiveEnrollment(ctx, identity.ProfileID, course.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("failed to check existing enrollment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enroll"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "already enrolled in this course", "enrollment_id": existing.ID})
		return
	}

	active, err := h.repo.CountActiveEnrollmentsByCourse(ctx, course.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to count course enrollments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enroll"})
		return
	}
	if active >= int64(course.Capacity) {
		BadRequest(c, ErrCodeCourseFull, "course is full")
		return
	}

	enrollment := &entity.DbEnrollment{
		StudentID: identity.ProfileID,
		CourseID:  course.ID,
		Status:    entity.EnrollmentStatusActive,
	}
	if err := h.repo.CreateEnrollment(ctx, enrollment); err != nil {
		logrus.WithError(err).Error("failed to create enrollment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enroll"})
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// CancelEnrollment marks one of the caller's enrollments cancelled. The row
// is kept for record keeping rather than deleted.
func (h *HTTPHandler) CancelEnrollment(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	enrollment, err := h.repo.GetEnrollment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "enrollment not found"})
			return
		}
		logrus.WithError(err).WithField("enrollment_id", id).Error("failed to load enrollment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel enrollment"})
		return
	}

	if enrollment.StudentID != identity.ProfileID {
		c.JSON(http.StatusNotFound, gin.H{"error": "enrollment not found"})
		return
	}

	if enrollment.Status != entity.EnrollmentStatusActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enrollment is not active"})
		return
	}

	if err := h.repo.UpdateEnrollmentStatus(ctx, enrollment.ID, entity.EnrollmentStatusCancelled); err != nil {
		logrus.WithError(err).WithField("enrollment_id", enrollment.ID).Error("failed to cancel enrollment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel enrollment"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetEnrolledCourse returns a course the calling student is actively enrolled
// in, including its lessons. Students only see lesson content through an
// active enrollment.
func (h *HTTPHandler) GetEnrolledCourse(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetActiveEnrollment(ctx, identity.ProfileID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not enrolled in this course"})
			return
		}
		logrus.WithError(err).Error("failed to check enrollment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load course"})
		return
	}

	course, lessons, err := h.repo.GetCourseWithLessons(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		logrus.WithError(err).WithField("course_id", id).Error("failed to load course")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load course"})
		return
	}

	c.JSON(http.StatusOK, entity.CourseDetail{DbCourse: *course, Lessons: lessons})
}
