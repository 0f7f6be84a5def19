package sql

import (
	"context"
	"fmt"
	"strings"

	"sprachschule/internal/entity"

	"gorm.io/gorm"
)

// CreateContactMessage stores a public contact-form message.
func (r *GormRepository) CreateContactMessage(ctx context.Context, message *entity.DbContactMessage) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if message == nil {
		return fmt.Errorf("message is nil")
	}
	return r.db.WithContext(ctx).Create(message).Error
}

// ListContactMessages returns paginated contact messages, newest first.
func (r *GormRepository) ListContactMessages(ctx context.Context, params *entity.BaseParams) ([]entity.DbContactMessage, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbContactMessage{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, pageSize, offset := pageWindow(params)

	var messages []entity.DbContactMessage
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&messages).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return messages, meta, nil
}

// DeleteContactMessage removes a contact message by ID.
func (r *GormRepository) DeleteContactMessage(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid message id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbContactMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateConsultation stores a consultation request.
func (r *GormRepository) CreateConsultation(ctx context.Context, request *entity.DbConsultationRequest) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if request == nil {
		return fmt.Errorf("request is nil")
	}
	return r.db.WithContext(ctx).Create(request).Error
}

// GetConsultation loads a consultation request by ID.
func (r *GormRepository) GetConsultation(ctx context.Context, id uint) (*entity.DbConsultationRequest, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid consultation id")
	}
	var request entity.DbConsultationRequest
	if err := r.db.WithContext(ctx).First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListConsultations returns paginated consultation requests, optionally
// filtered by status.
func (r *GormRepository) ListConsultations(ctx context.Context, params *entity.BaseParams, status string) ([]entity.DbConsultationRequest, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbConsultationRequest{})
	if trimmed := strings.TrimSpace(status); trimmed != "" {
		query = query.Where("status = ?", trimmed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, pageSize, offset := pageWindow(params)

	var requests []entity.DbConsultationRequest
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&requests).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return requests, meta, nil
}

// UpdateConsultationStatus moves a consultation request through its lifecycle.
func (r *GormRepository) UpdateConsultationStatus(ctx context.Context, id uint, status string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid consultation id")
	}
	result := r.db.WithContext(ctx).Model(&entity.DbConsultationRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
