package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys. The stored values mirror the JWT claims so that both
// credential paths resolve to the same identity triple.
const (
	sessionKeyUserID = "user_id"
	sessionKeyEmail  = "email"
	sessionKeyRole   = "role"
)

// SessionIdentity is the identity triple recoverable from a cookie session.
type SessionIdentity struct {
	UserID uint
	Email  string
	Role   string
}

// SetSessionUser stores the identity triple in the cookie session.
func SetSessionUser(c *gin.Context, userID uint, email, role string) error {
	s := sessions.Default(c)
	s.Set(sessionKeyUserID, userID)
	s.Set(sessionKeyEmail, email)
	s.Set(sessionKeyRole, role)
	return s.Save()
}

// GetSessionUser recovers the identity triple from the cookie session, or nil
// when no session is established.
func GetSessionUser(c *gin.Context) *SessionIdentity {
	s := sessions.Default(c)
	rawID := s.Get(sessionKeyUserID)
	if rawID == nil {
		return nil
	}
	userID, ok := rawID.(uint)
	if !ok || userID == 0 {
		return nil
	}
	email, _ := s.Get(sessionKeyEmail).(string)
	role, _ := s.Get(sessionKeyRole).(string)
	return &SessionIdentity{UserID: userID, Email: email, Role: role}
}

// ClearSession drops the cookie session.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
