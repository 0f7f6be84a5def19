package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"sprachschule/internal/entity"
)

func TestAuthMiddlewareRejectsMissingCredentials(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/auth/me", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}

	// Failure bodies always carry the error key clients branch on.
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if msg, ok := body["error"].(string); !ok || msg != "authentication required" {
		t.Fatalf("expected error key in 401 body, got: %s", w.Body.String())
	}
}

func TestAuthMiddlewareRejectsInvalidBearerWithoutSession(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/auth/me", "", "not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	user, token := createAccount(t, h, "Admin", "admin@example.com", entity.UserRoleAdmin)

	w := performRequest(r, http.MethodGet, "/api/auth/me", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		User entity.UserSummary `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.User.ID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, body.User.ID)
	}
}

func TestAuthMiddlewareRejectsDisabledUser(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	user, token := createAccount(t, h, "Teacher", "teacher@example.com", entity.UserRoleTeacher)
	if err := repo.UpdateUser(context.Background(), user.ID, map[string]interface{}{"is_active": false}); err != nil {
		t.Fatalf("failed to disable user: %v", err)
	}

	w := performRequest(r, http.MethodGet, "/api/auth/me", "", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}

	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeUserDisabled {
		t.Fatalf("expected code %s, got %s", ErrCodeUserDisabled, response.Code)
	}
}

// A role-flagged user whose profile row is missing must be refused with an
// explicit error, not treated as unauthenticated.
func TestAuthMiddlewareReportsMissingProfile(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	// Create the user directly, bypassing the profile provisioning.
	user := &entity.DbUser{
		Name:         "No Profile",
		Email:        "broken@example.com",
		PasswordHash: "x",
		Role:         entity.UserRoleTeacher,
		IsActive:     true,
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, _, err := h.authManager.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := performRequest(r, http.MethodGet, "/api/auth/me", "", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}

	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeProfileMissing {
		t.Fatalf("expected code %s, got %s", ErrCodeProfileMissing, response.Code)
	}
}

// The wrong role must be stopped by the route guard without reaching the
// handler, leaving no side effects.
func TestRequireRoleBlocksWrongRole(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	_, studentToken := createAccount(t, h, "Student", "student@example.com", entity.UserRoleStudent)

	w := performRequest(r, http.MethodPost, "/api/admin/users",
		`{"name":"X","email":"x@example.com","password":"password123","role":"student"}`, studentToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if msg, ok := body["error"].(string); !ok || msg != "insufficient role" {
		t.Fatalf("expected error key in 403 body, got: %s", w.Body.String())
	}

	// No user row may have been created.
	if _, err := repo.GetUserByEmail(context.Background(), "x@example.com"); err == nil {
		t.Fatal("expected no side effects from a forbidden request")
	}
}
