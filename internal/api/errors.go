package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned alongside messages in APIError bodies.
const (
	ErrCodeInvalidRequest = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized   = "ERR_UNAUTHORIZED"
	ErrCodeForbidden      = "ERR_FORBIDDEN"
	ErrCodeNotFound       = "ERR_NOT_FOUND"
	ErrCodeInternalError  = "ERR_INTERNAL_ERROR"

	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeEmailExists        = "ERR_EMAIL_EXISTS"
	ErrCodeRegistrationClosed = "ERR_REGISTRATION_CLOSED"
	ErrCodeUserDisabled       = "ERR_USER_DISABLED"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"
	ErrCodeProfileMissing     = "ERR_PROFILE_MISSING"

	ErrCodeUserNotFound       = "ERR_USER_NOT_FOUND"
	ErrCodeCourseNotFound     = "ERR_COURSE_NOT_FOUND"
	ErrCodeAssignmentNotFound = "ERR_ASSIGNMENT_NOT_FOUND"
	ErrCodeRecordNotFound     = "ERR_RECORD_NOT_FOUND"

	ErrCodeDuplicateSlug    = "ERR_DUPLICATE_SLUG"
	ErrCodeAlreadySubmitted = "ERR_ALREADY_SUBMITTED"
	ErrCodeSubmissionGraded = "ERR_SUBMISSION_GRADED"
	ErrCodeBlockedByRecords = "ERR_BLOCKED_BY_RECORDS"
	ErrCodeCourseFull       = "ERR_COURSE_FULL"
	ErrCodeCannotDeleteSelf = "ERR_CANNOT_DELETE_SELF"
	ErrCodeLastAdmin        = "ERR_LAST_ADMIN"
)

// APIError is the structured error response body. Every failure body carries
// the `error` key; Code and Details are extra context for clients that want
// to branch on more than the message.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse writes a structured error response.
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Error: message,
		Code:  code,
	})
}

// ErrorResponseWithDetails writes a structured error response with details.
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// Shortcut writers for the common statuses.

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized writes a 401 response and aborts the handler chain.
func Unauthorized(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusUnauthorized, code, message)
	c.Abort()
}

// Forbidden writes a 403 response and aborts the handler chain.
func Forbidden(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusForbidden, code, message)
	c.Abort()
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}
