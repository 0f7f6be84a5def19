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

// ownedCourse loads a course and verifies it belongs to the calling teacher.
// A course owned by somebody else is reported as not found, so the route
// never reveals whether the ID exists.
func (h *HTTPHandler) ownedCourse(c *gin.Context, ctx context.Context, courseID uint) (*entity.DbCourse, bool) {
	identity := CurrentIdentity(c)

	course, err := h.repo.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeCourseNotFound, "course not found or does not belong to this teacher")
			return nil, false
		}
		logrus.WithError(err).WithField("course_id", courseID).Error("failed to load course")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load course"})
		return nil, false
	}

	if course.TeacherID != identity.ProfileID {
		NotFound(c, ErrCodeCourseNotFound, "course not found or does not belong to this teacher")
		return nil, false
	}
	return course, true
}

// ListMyCourses returns the calling teacher's courses, unpaginated.
func (h *HTTPHandler) ListMyCourses(c *gin.Context) {
	identity := CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	courses, err := h.repo.ListCoursesByTeacher(ctx, identity.ProfileID)
	if err != nil {
		logrus.WithError(err).Error("failed to list courses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load courses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// GetMyCourse returns one owned course with its lessons.
func (h *HTTPHandler) GetMyCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	course, ok := h.ownedCourse(c, ctx, id)
	if !ok {
		return
	}

	lessons, err := h.repo.ListLessonsByCourse(ctx, course.ID)
	if err != nil {
		logrus.WithError(err).WithField("course_id", course.ID).Error("failed to load lessons")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load course"})
		return
	}

	c.JSON(http.StatusOK, entity.CourseDetail{DbCourse: *course, Lessons: lessons})
}

func (h *HTTPHandler) CreateCourse(c *gin.Context) {
	identity := CurrentIdentity(c)

	var req entity.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course payload"})
		return
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 12
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	isFeatured := false
	if req.IsFeatured != nil {
		isFeatured = *req.IsFeatured
	}

	course := &entity.DbCourse{
		TeacherID:   identity.ProfileID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Language:    strings.ToLower(strings.TrimSpace(req.Language)),
		Level:       strings.TrimSpace(req.Level),
		Capacity:    capacity,
		Schedule:    strings.TrimSpace(req.Schedule),
		IsActive:    isActive,
		IsFeatured:  isFeatured,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateCourse(ctx, course); err != nil {
		logrus.WithError(err).Error("failed to create course")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *HTTPHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	course, ok := h.ownedCourse(c, ctx, id)
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
	if req.Language != nil {
		updates["language"] = strings.ToLower(strings.TrimSpace(*req.Language))
	}
	if req.Level != nil {
		updates["level"] = strings.TrimSpace(*req.Level)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be positive"})
			return
		}
		updates["capacity"] = *req.Capacity
	}
	if req.Schedule != nil {
		updates["schedule"] = strings.TrimSpace(*req.Schedule)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, course)
		return
	}

	if err := h.repo.UpdateCourse(ctx, course.ID, updates); err != nil {
		logrus.WithError(err).WithField("course_id", course.ID).Error("failed to update course")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update course"})
		return
	}

	updated, err := h.repo.GetCourse(ctx, course.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload course after update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated course"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCourse removes an owned course and its lessons together. Courses with
// active enrollments cannot be removed.
func (h *HTTPHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	course, ok := h.ownedCourse(c, ctx, id)
	if !ok {
		return
	}

	active, err := h.repo.CountActiveEnrollmentsByCourse(ctx, course.ID)
	if err != nil {
		logrus.WithError(err).WithField("course_id", course.ID).Error("failed to count enrollments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete course"})
		return
	}
	if active > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course still has active enrollments"})
		return
	}

	if err := h.repo.DeleteCourse(ctx, course.ID); err != nil {
		logrus.WithError(err).WithField("course_id", course.ID).Error("failed to delete course")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete course"})
		return
	}

	c.Status(http.StatusNoContent)
}
