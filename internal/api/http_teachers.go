package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"sprachschule/internal/entity"
	"sprachschule/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func (h *HTTPHandler) ListTeachers(c *gin.Context) {
	var params entity.BaseParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profiles, users, meta, err := h.repo.ListTeachers(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("failed to list teachers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load teachers"})
		return
	}

	response := entity.TeacherListResponse{
		Teachers: makeTeacherSummaries(profiles, users),
		Meta:     meta,
	}
	c.JSON(http.StatusOK, response)
}

func (h *HTTPHandler) GetTeacher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.repo.GetTeacherProfile(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "teacher not found"})
			return
		}
		logrus.WithError(err).Error("failed to load teacher")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load teacher"})
		return
	}

	user, err := h.repo.GetUserByID(ctx, profile.UserID)
	if err != nil {
		logrus.WithError(err).WithField("teacher_id", id).Error("failed to load teacher user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load teacher"})
		return
	}

	c.JSON(http.StatusOK, makeTeacherSummary(profile, user))
}

// CreateTeacher creates the user account and the teacher profile together.
func (h *HTTPHandler) CreateTeacher(c *gin.Context) {
	var req entity.TeacherCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher payload"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.accountService.CreateAccount(ctx, strings.TrimSpace(req.Name), email, strings.TrimSpace(req.Password), entity.UserRoleTeacher, true)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		logrus.WithError(err).Error("failed to create teacher account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create teacher"})
		return
	}

	profile, err := h.repo.GetTeacherProfileByUserID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to load created teacher profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create teacher"})
		return
	}

	updates := make(map[string]interface{})
	if strings.TrimSpace(req.Bio) != "" {
		updates["bio"] = strings.TrimSpace(req.Bio)
	}
	if len(req.Specialties) > 0 {
		updates["specialties"] = entity.StringArray(req.Specialties)
	}
	if strings.TrimSpace(req.PhotoURL) != "" {
		updates["photo_url"] = strings.TrimSpace(req.PhotoURL)
	}
	if len(updates) > 0 {
		if err := h.repo.UpdateTeacherProfile(ctx, profile.ID, updates); err != nil {
			logrus.WithError(err).Error("failed to fill teacher profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create teacher"})
			return
		}
		profile, err = h.repo.GetTeacherProfile(ctx, profile.ID)
		if err != nil {
			logrus.WithError(err).Error("failed to reload teacher profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create teacher"})
			return
		}
	}

	c.JSON(http.StatusCreated, makeTeacherSummary(profile, user))
}

func (h *HTTPHandler) UpdateTeacher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.TeacherUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.repo.GetTeacherProfile(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "teacher not found"})
			return
		}
		logrus.WithError(err).Error("failed to load teacher for update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update teacher"})
		return
	}

	profileUpdates := make(map[string]interface{})
	if req.Bio != nil {
		profileUpdates["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.Specialties != nil {
		profileUpdates["specialties"] = entity.StringArray(*req.Specialties)
	}
	if req.PhotoURL != nil {
		profileUpdates["photo_url"] = strings.TrimSpace(*req.PhotoURL)
	}
	if len(profileUpdates) > 0 {
		if err := h.repo.UpdateTeacherProfile(ctx, profile.ID, profileUpdates); err != nil {
			logrus.WithError(err).Error("failed to update teacher profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update teacher"})
			return
		}
	}

	userUpdates := make(map[string]interface{})
	if req.Name != nil {
		userUpdates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.IsActive != nil {
		userUpdates["is_active"] = *req.IsActive
	}
	if len(userUpdates) > 0 {
		if err := h.repo.UpdateUser(ctx, profile.UserID, userUpdates); err != nil {
			logrus.WithError(err).Error("failed to update teacher user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update teacher"})
			return
		}
	}

	profile, err = h.repo.GetTeacherProfile(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("failed to reload teacher after update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated teacher"})
		return
	}
	user, err := h.repo.GetUserByID(ctx, profile.UserID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload teacher user after update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated teacher"})
		return
	}

	c.JSON(http.StatusOK, makeTeacherSummary(profile, user))
}

// DeleteTeacher refuses while the teacher still owns courses; the refusal
// lists the blocking course IDs and leaves all records untouched.
func (h *HTTPHandler) DeleteTeacher(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.repo.GetTeacherProfile(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "teacher not found"})
			return
		}
		logrus.WithError(err).Error("failed to load teacher for deletion")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete teacher"})
		return
	}

	if err := h.accountService.DeleteAccount(ctx, identity.UserID, profile.UserID); err != nil {
		var blocked *service.BlockedError
		if errors.As(err, &blocked) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "teacher still owns courses",
				"details": gin.H{"resource": blocked.Resource, "ids": blocked.IDs},
			})
			return
		}
		h.writeAccountError(c, err, "failed to delete teacher")
		return
	}

	c.Status(http.StatusNoContent)
}

func makeTeacherSummary(profile *entity.DbTeacherProfile, user *entity.DbUser) entity.TeacherSummary {
	summary := entity.TeacherSummary{
		ID:          profile.ID,
		UserID:      profile.UserID,
		Bio:         profile.Bio,
		Specialties: profile.Specialties.ToSlice(),
		PhotoURL:    profile.PhotoURL,
		CreatedAt:   profile.CreatedAt,
	}
	if user != nil {
		summary.Name = user.Name
		summary.Email = user.Email
		summary.IsActive = user.IsActive
	}
	return summary
}

func makeTeacherSummaries(profiles []entity.DbTeacherProfile, users []entity.DbUser) []entity.TeacherSummary {
	byID := make(map[uint]*entity.DbUser, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	summaries := make([]entity.TeacherSummary, 0, len(profiles))
	for i := range profiles {
		summaries = append(summaries, makeTeacherSummary(&profiles[i], byID[profiles[i].UserID]))
	}
	return summaries
}
