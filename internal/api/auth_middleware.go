package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"sprachschule/internal/auth"
	"sprachschule/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	identityContextKey = "current-identity"
)

// Identity holds the resolved identity of an authenticated request: the user,
// the role, and the role's profile record ID. It is resolved once per request
// by AuthMiddleware and cached in the gin context.
type Identity struct {
	UserID    uint
	Email     string
	Role      string
	ProfileID uint
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == entity.UserRoleAdmin
}

// IsTeacher reports whether the identity carries the teacher role.
func (i *Identity) IsTeacher() bool {
	return i != nil && i.Role == entity.UserRoleTeacher
}

// IsStudent reports whether the identity carries the student role.
func (i *Identity) IsStudent() bool {
	return i != nil && i.Role == entity.UserRoleStudent
}

// AuthMiddleware resolves the request identity from either a bearer token or
// the cookie session, in that order. An invalid or expired bearer token falls
// back to the session path rather than failing the request. The resolved role
// is verified against the user record and the matching profile row; a
// role-flagged user without a profile row is rejected with ERR_PROFILE_MISSING
// instead of being silently treated as unauthenticated.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.resolveCredentials(c)
		if !ok {
			Unauthorized(c, ErrCodeUnauthorized, "authentication required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := h.repo.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				Unauthorized(c, ErrCodeUserNotFound, "user no longer exists")
				return
			}
			logrus.WithError(err).WithField("user_id", userID).Error("failed to load user")
			InternalError(c, "failed to verify user")
			c.Abort()
			return
		}

		if !user.IsActive {
			Forbidden(c, ErrCodeUserDisabled, "account is disabled")
			return
		}

		profileID, err := h.resolveProfileID(ctx, user)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID,
					"role":    user.Role,
				}).Error("role has no matching profile row")
				Forbidden(c, ErrCodeProfileMissing, "profile record missing for role "+user.Role)
				return
			}
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load profile")
			InternalError(c, "failed to resolve profile")
			c.Abort()
			return
		}

		c.Set(identityContextKey, &Identity{
			UserID:    user.ID,
			Email:     user.Email,
			Role:      user.Role,
			ProfileID: profileID,
		})
		c.Next()
	}
}

// resolveCredentials extracts the user ID from the bearer token when present
// and valid, otherwise from the cookie session.
func (h *HTTPHandler) resolveCredentials(c *gin.Context) (uint, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString := strings.TrimSpace(parts[1])
			if tokenString != "" {
				claims, err := h.authManager.ParseToken(tokenString)
				if err == nil {
					return claims.UserID, true
				}
				// Invalid or expired token: fall back to the session path.
				logrus.WithError(err).Warn("bearer token rejected, trying session")
			}
		}
	}

	if session := auth.GetSessionUser(c); session != nil {
		return session.UserID, true
	}
	return 0, false
}

func (h *HTTPHandler) resolveProfileID(ctx context.Context, user *entity.DbUser) (uint, error) {
	switch user.Role {
	case entity.UserRoleAdmin:
		profile, err := h.repo.GetAdminProfileByUserID(ctx, user.ID)
		if err != nil {
			return 0, err
		}
		return profile.ID, nil
	case entity.UserRoleTeacher:
		profile, err := h.repo.GetTeacherProfileByUserID(ctx, user.ID)
		if err != nil {
			return 0, err
		}
		return profile.ID, nil
	case entity.UserRoleStudent:
		profile, err := h.repo.GetStudentProfileByUserID(ctx, user.ID)
		if err != nil {
			return 0, err
		}
		return profile.ID, nil
	default:
		return 0, gorm.ErrRecordNotFound
	}
}

// RequireRole guards a route group behind one or more roles. It runs after
// AuthMiddleware and never reaches the handler body on the wrong role.
func (h *HTTPHandler) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			Unauthorized(c, ErrCodeUnauthorized, "authentication required")
			return
		}
		if !allowed[identity.Role] {
			Forbidden(c, ErrCodeForbidden, "insufficient role")
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity resolved by AuthMiddleware, or nil.
func CurrentIdentity(c *gin.Context) *Identity {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*Identity)
	if !ok {
		return nil
	}
	return identity
}
