package api

import (
	"strings"
	"time"

	"sprachschule/internal/auth"
	"sprachschule/internal/config"
	"sprachschule/internal/model"
	"sprachschule/internal/service"
	"sprachschule/internal/storage"
)

// HTTPHandler carries the shared dependencies of all route handlers.
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	accountService *service.AccountService
}

// NewHTTPHandler creates the handler with its dependencies wired.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	handler := &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		accountService:    service.NewAccountService(repo),
	}

	return handler, nil
}

// normalisePublicBase normalises the public URL prefix for stored media.
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/media"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// publicMediaURL builds the client-facing URL for a stored object key.
func (h *HTTPHandler) publicMediaURL(key string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(key), "/")
	if trimmed == "" {
		return ""
	}
	return h.storagePublicBase + "/" + trimmed
}
