package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sprachschule/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// parseCourseIDParam reads the :id path parameter of the lesson routes,
// which addresses the parent course.
func parseCourseIDParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return 0, false
	}
	return uint(id), true
}

// parseLessonIDParam reads the :lessonId path parameter.
func parseLessonIDParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("lessonId"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return 0, false
	}
	return uint(id), true
}

func (h *HTTPHandler) ListLessons(c *gin.Context) {
	courseID, ok := parseCourseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, ok := h.ownedCourse(c, ctx, courseID); !ok {
		return
	}

	lessons, err := h.repo.ListLessonsByCourse(ctx, courseID)
	if err != nil {
		logrus.WithError(err).WithField("course_id", courseID).Error("failed to list lessons")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load lessons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// CreateLesson appends a lesson to an owned course. Without an explicit
// order_index the lesson goes to the end of the course.
func (h *HTTPHandler) CreateLesson(c *gin.Context) {
	courseID, ok := parseCourseIDParam(c)
	if !ok {
		return
	}

	var req entity.LessonCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, ok := h.ownedCourse(c, ctx, courseID); !ok {
		return
	}

	lesson := &entity.DbLesson{
		CourseID: courseID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
	}
	if req.OrderIndex != nil {
		lesson.OrderIndex = *req.OrderIndex
	}
	// A zero order index makes the repository append after the last lesson.

	if err := h.repo.CreateLesson(ctx, lesson); err != nil {
		logrus.WithError(err).WithField("course_id", courseID).Error("failed to create lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create lesson"})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

func (h *HTTPHandler) UpdateLesson(c *gin.Context) {
	courseID, ok := parseCourseIDParam(c)
	if !ok {
		return
	}
	lessonID, ok := parseLessonIDParam(c)
	if !ok {
		return
	}

	var req entity.LessonUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, ok := h.ownedCourse(c, ctx, courseID); !ok {
		return
	}

	lesson, ok := h.lessonInCourse(c, ctx, lessonID, courseID)
	if !ok {
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.OrderIndex != nil {
		updates["order_index"] = *req.OrderIndex
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, lesson)
		return
	}

	if err := h.repo.UpdateLesson(ctx, lesson.ID, updates); err != nil {
		logrus.WithError(err).WithField("lesson_id", lesson.ID).Error("failed to update lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update lesson"})
		return
	}

	updated, err := h.repo.GetLesson(ctx, lesson.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload lesson after update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated lesson"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *HTTPHandler) DeleteLesson(c *gin.Context) {
	courseID, ok := parseCourseIDParam(c)
	if !ok {
		return
	}
	lessonID, ok := parseLessonIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, ok := h.ownedCourse(c, ctx, courseID); !ok {
		return
	}

	lesson, ok := h.lessonInCourse(c, ctx, lessonID, courseID)
	if !ok {
		return
	}

	if err := h.repo.DeleteLesson(ctx, lesson.ID); err != nil {
		logrus.WithError(err).WithField("lesson_id", lesson.ID).Error("failed to delete lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete lesson"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) lessonInCourse(c *gin.Context, ctx context.Context, lessonID, courseID uint) (*entity.DbLesson, bool) {
	lesson, err := h.repo.GetLesson(ctx, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
			return nil, false
		}
		logrus.WithError(err).WithField("lesson_id", lessonID).Error("failed to load lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load lesson"})
		return nil, false
	}
	if lesson.CourseID != courseID {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return nil, false
	}
	return lesson, true
}
