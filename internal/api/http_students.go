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

func (h *HTTPHandler) ListStudents(c *gin.Context) {
	var params entity.BaseParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profiles, users, meta, err := h.repo.ListStudents(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("failed to list students")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load students"})
		return
	}

	response := entity.StudentListResponse{
		Students: makeStudentSummaries(profiles, users),
		Meta:     meta,
	}
	c.JSON(http.StatusOK, response)
}

func (h *HTTPHandler) GetStudent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.repo.GetStudentProfile(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		logrus.WithError(err).Error("failed to load student")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load student"})
		return
	}

	user, err := h.repo.GetUserByID(ctx, profile.UserID)
	if err != nil {
		logrus.WithError(err).WithField("student_id", id).Error("failed to load student user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load student"})
		return
	}

	c.JSON(http.StatusOK, makeStudentSummary(profile, user))
}

func (h *HTTPHandler) CreateStudent(c *gin.Context) {
	var req entity.StudentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student payload"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.accountService.CreateAccount(ctx, strings.TrimSpace(req.Name), email, strings.TrimSpace(req.Password), entity.UserRoleStudent, true)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		logrus.WithError(err).Error("failed to create student account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create student"})
		return
	}

	profile, err := h.repo.GetStudentProfileByUserID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to load created student profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create student"})
		return
	}

	updates := make(map[string]interface{})
	if strings.TrimSpace(req.Phone) != "" {
		updates["phone"] = strings.TrimSpace(req.Phone)
	}
	if strings.TrimSpace(req.PhotoURL) != "" {
		updates["photo_url"] = strings.TrimSpace(req.PhotoURL)
	}
	if len(updates) > 0 {
		if err := h.repo.UpdateStudentProfile(ctx, profile.ID, updates); err != nil {
			logrus.WithError(err).Error("failed to fill student profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create student"})
			return
		}
		profile, err = h.repo.GetStudentProfile(ctx, profile.ID)
		if err != nil {
			logrus.WithError(err).Error("failed to reload student profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create student"})
			return
		}
	}

	c.JSON(http.StatusCreated, makeStudentSummary(profile, user))
}

func (h *HTTPHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.StudentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.repo.GetStudentProfile(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		logrus.WithError(err).Error("failed to load student for update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update student"})
		return
	}

	profileUpdates := make(map[string]interface{})
	if req.Phone != nil {
		profileUpdates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.PhotoURL != nil {
		profileUpdates["photo_url"] = strings.TrimSpace(*req.PhotoURL)
	}
	if len(profileUpdates) > 0 {
		if err := h.repo.UpdateStudentProfile(ctx, profile.ID, profileUpdates); err != nil {
			logrus.WithError(err).Error("failed to update student profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update student"})
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
			logrus.WithError(err).Error("failed to update student user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update student"})
			return
		}
	}

	profile, err = h.repo.GetStudentProfile(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("failed to reload student after update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated student"})
		return
	}
	user, err := h.repo.GetUserByID(ctx, profile.UserID)
	if err != nil {
		logrus.WithError(err).Error("failed to reload student user after update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated student"})
		return
	}

	c.JSON(http.StatusOK, makeStudentSummary(profile, user))
}

// DeleteStudent refuses while active enrollments exist; the refusal lists the
// blocking enrollment IDs and leaves all records untouched.
func (h *HTTPHandler) DeleteStudent(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.repo.GetStudentProfile(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		logrus.WithError(err).Error("failed to load student for deletion")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete student"})
		return
	}

	if err := h.accountService.DeleteAccount(ctx, identity.UserID, profile.UserID); err != nil {
		var blocked *service.BlockedError
		if errors.As(err, &blocked) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "student still has active enrollments",
				"details": gin.H{"resource": blocked.Resource, "ids": blocked.IDs},
			})
			return
		}
		h.writeAccountError(c, err, "failed to delete student")
		return
	}

	c.Status(http.StatusNoContent)
}

func makeStudentSummary(profile *entity.DbStudentProfile, user *entity.DbUser) entity.StudentSummary {
	summary := entity.StudentSummary{
		ID:        profile.ID,
		UserID:    profile.UserID,
		Phone:     profile.Phone,
		PhotoURL:  profile.PhotoURL,
		CreatedAt: profile.CreatedAt,
	}
	if user != nil {
		summary.Name = user.Name
		summary.Email = user.Email
		summary.IsActive = user.IsActive
	}
	return summary
}

func makeStudentSummaries(profiles []entity.DbStudentProfile, users []entity.DbUser) []entity.StudentSummary {
	byID := make(map[uint]*entity.DbUser, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	summaries := make([]entity.StudentSummary, 0, len(profiles))
	for i := range profiles {
		summaries = append(summaries, makeStudentSummary(&profiles[i], byID[profiles[i].UserID]))
	}
	return summaries
}
