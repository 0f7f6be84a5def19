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

// The public handlers serve the marketing site without authentication. They
// only ever expose active or published records.

func (h *HTTPHandler) PublicListCourses(c *gin.Context) {
	var query entity.CourseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	courses, meta, err := h.repo.ListCourses(ctx, &query, 0, true)
	if err != nil {
		logrus.WithError(err).Error("failed to list public courses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load courses"})
		return
	}

	c.JSON(http.StatusOK, entity.CourseListResponse{Courses: courses, Meta: meta})
}

func (h *HTTPHandler) PublicGetCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	course, err := h.repo.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		logrus.WithError(err).WithField("course_id", id).Error("failed to load public course")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load course"})
		return
	}

	// Inactive courses are invisible on the public site.
	if !course.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	c.JSON(http.StatusOK, course)
}

// PublicListTeachers lists teachers for the marketing site. Disabled accounts
// are filtered out.
func (h *HTTPHandler) PublicListTeachers(c *gin.Context) {
	var params entity.BaseParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profiles, users, meta, err := h.repo.ListTeachers(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("failed to list public teachers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load teachers"})
		return
	}

	summaries := makeTeacherSummaries(profiles, users)
	visible := make([]entity.TeacherSummary, 0, len(summaries))
	for _, summary := range summaries {
		if summary.IsActive {
			// Emails stay private on the public site.
			summary.Email = ""
			visible = append(visible, summary)
		}
	}

	c.JSON(http.StatusOK, entity.TeacherListResponse{Teachers: visible, Meta: meta})
}

func (h *HTTPHandler) PublicListPosts(c *gin.Context) {
	var query entity.PostQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	posts, meta, err := h.repo.ListPosts(ctx, &query, true)
	if err != nil {
		logrus.WithError(err).Error("failed to list public posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, entity.PostListResponse{Posts: posts, Meta: meta})
}

func (h *HTTPHandler) PublicGetPostBySlug(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slug"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		logrus.WithError(err).WithField("slug", slug).Error("failed to load public post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	if !post.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *HTTPHandler) PublicListCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	categories, err := h.repo.ListCategories(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list public categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// PublicHomeContent bundles everything the landing page needs in one call.
func (h *HTTPHandler) PublicHomeContent(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	slides, err := h.repo.ListHeroSlides(ctx, true)
	if err != nil {
		logrus.WithError(err).Error("failed to load hero slides")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load page content"})
		return
	}
	features, err := h.repo.ListFeatureItems(ctx, true)
	if err != nil {
		logrus.WithError(err).Error("failed to load feature items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load page content"})
		return
	}
	statistics, err := h.repo.ListStatistics(ctx, true)
	if err != nil {
		logrus.WithError(err).Error("failed to load statistics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load page content"})
		return
	}

	featured := true
	courses, _, err := h.repo.ListCourses(ctx, &entity.CourseQuery{Featured: &featured}, 0, true)
	if err != nil {
		logrus.WithError(err).Error("failed to load featured courses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load page content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hero_slides":      slides,
		"features":         features,
		"statistics":       statistics,
		"featured_courses": courses,
	})
}

// PublicListCharters serves the about page principles.
func (h *HTTPHandler) PublicListCharters(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	charters, err := h.repo.ListCharters(ctx, true)
	if err != nil {
		logrus.WithError(err).Error("failed to load public charters")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load charters"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"charters": charters})
}
