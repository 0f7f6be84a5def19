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

// ListPosts returns all posts for the admin dashboard, drafts included.
func (h *HTTPHandler) ListPosts(c *gin.Context) {
	var query entity.PostQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	posts, meta, err := h.repo.ListPosts(ctx, &query, false)
	if err != nil {
		logrus.WithError(err).Error("failed to list posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, entity.PostListResponse{Posts: posts, Meta: meta})
}

func (h *HTTPHandler) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.repo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		logrus.WithError(err).WithField("post_id", id).Error("failed to load post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost stores a blog post with its category links in one transaction.
// Slugs are unique across all posts regardless of language.
func (h *HTTPHandler) CreatePost(c *gin.Context) {
	identity := CurrentIdentity(c)

	var req entity.PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post payload"})
		return
	}

	language := strings.ToLower(strings.TrimSpace(req.Language))
	if language == "" {
		language = entity.PostLanguageGerman
	}
	if language != entity.PostLanguageGerman && language != entity.PostLanguageFarsi {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported language"})
		return
	}

	isPublished := false
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	post := &entity.DbBlogPost{
		Slug:          strings.ToLower(strings.TrimSpace(req.Slug)),
		Title:         strings.TrimSpace(req.Title),
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		CoverImageURL: strings.TrimSpace(req.CoverImageURL),
		Language:      language,
		AuthorUserID:  identity.UserID,
		IsPublished:   isPublished,
	}
	if isPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreatePost(ctx, post, req.CategoryIDs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeDuplicateSlug, "slug is already in use")
			return
		}
		logrus.WithError(err).Error("failed to create post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	created, err := h.repo.GetPostByID(ctx, post.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload post after create")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load created post"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *HTTPHandler) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.repo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		logrus.WithError(err).WithField("post_id", id).Error("failed to load post for update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		return
	}

	updates := make(map[string]interface{})
	if req.Slug != nil {
		updates["slug"] = strings.ToLower(strings.TrimSpace(*req.Slug))
	}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.CoverImageURL != nil {
		updates["cover_image_url"] = strings.TrimSpace(*req.CoverImageURL)
	}
	if req.Language != nil {
		language := strings.ToLower(strings.TrimSpace(*req.Language))
		if language != entity.PostLanguageGerman && language != entity.PostLanguageFarsi {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported language"})
			return
		}
		updates["language"] = language
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
		if *req.IsPublished && post.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}

	if len(updates) == 0 && req.CategoryIDs == nil {
		c.JSON(http.StatusOK, post)
		return
	}

	if err := h.repo.UpdatePost(ctx, post.ID, updates, req.CategoryIDs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeDuplicateSlug, "slug is already in use")
			return
		}
		logrus.WithError(err).WithField("post_id", post.ID).Error("failed to update post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		return
	}

	updated, err := h.repo.GetPostByID(ctx, post.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload post after update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated post"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *HTTPHandler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		logrus.WithError(err).WithField("post_id", id).Error("failed to delete post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) ListCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	categories, err := h.repo.ListCategories(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *HTTPHandler) CreateCategory(c *gin.Context) {
	var req entity.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category payload"})
		return
	}

	category := &entity.DbBlogCategory{
		Slug: strings.ToLower(strings.TrimSpace(req.Slug)),
		Name: strings.TrimSpace(req.Name),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeDuplicateSlug, "slug is already in use")
			return
		}
		logrus.WithError(err).Error("failed to create category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *HTTPHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		logrus.WithError(err).WithField("category_id", id).Error("failed to delete category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		return
	}

	c.Status(http.StatusNoContent)
}
