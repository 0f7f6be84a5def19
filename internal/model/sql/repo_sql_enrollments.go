package sql

import (
	"context"
	"fmt"

	"sprachschule/internal/entity"

	"gorm.io/gorm"
)

// CreateEnrollment persists a new enrollment.
func (r *GormRepository) CreateEnrollment(ctx context.Context, enrollment *entity.DbEnrollment) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if enrollment == nil {
		return fmt.Errorf("enrollment is nil")
	}
	return r.db.WithContext(ctx).Create(enrollment).Error
}

// GetEnrollment loads an enrollment by ID.
func (r *GormRepository) GetEnrollment(ctx context.Context, id uint) (*entity.DbEnrollment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid enrollment id")
	}
	var enrollment entity.DbEnrollment
	if err := r.db.WithContext(ctx).First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// GetActiveEnrollment finds an active enrollment for a student/course pair.
func (r *GormRepository) GetActiveEnrollment(ctx context.Context, studentID, courseID uint) (*entity.DbEnrollment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var enrollment entity.DbEnrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, entity.EnrollmentStatusActive).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListEnrollmentsByStudent returns all of a student's enrollments.
func (r *GormRepository) ListEnrollmentsByStudent(ctx context.Context, studentID uint) ([]entity.DbEnrollment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var enrollments []entity.DbEnrollment
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("id DESC").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// ListActiveEnrollmentsByStudent returns only active enrollments; their
// existence blocks student deletion.
func (r *GormRepository) ListActiveEnrollmentsByStudent(ctx context.Context, studentID uint) ([]entity.DbEnrollment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var enrollments []entity.DbEnrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND status = ?", studentID, entity.EnrollmentStatusActive).
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

// ListCoursesByTeacher returns every course owned by a teacher; their
// existence blocks teacher deletion.
func (r *GormRepository) ListCoursesByTeacher(ctx context.Context, teacherID uint) ([]entity.DbCourse, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var courses []entity.DbCourse
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// CountActiveEnrollmentsByCourse counts active enrollments for capacity checks.
func (r *GormRepository) CountActiveEnrollmentsByCourse(ctx context.Context, courseID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbEnrollment{}).
		Where("course_id = ? AND status = ?", courseID, entity.EnrollmentStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateEnrollmentStatus moves an enrollment through its lifecycle.
func (r *GormRepository) UpdateEnrollmentStatus(ctx context.Context, id uint, status string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid enrollment id")
	}
	result := r.db.WithContext(ctx).Model(&entity.DbEnrollment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
