package sql

import (
	"context"
	"fmt"

	"sprachschule/internal/entity"

	"gorm.io/gorm"
)

// CreateAssignment persists a new assignment.
func (r *GormRepository) CreateAssignment(ctx context.Context, assignment *entity.DbAssignment) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if assignment == nil {
		return fmt.Errorf("assignment is nil")
	}
	return r.db.WithContext(ctx).Create(assignment).Error
}

// GetAssignment loads an assignment by ID.
func (r *GormRepository) GetAssignment(ctx context.Context, id uint) (*entity.DbAssignment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid assignment id")
	}
	var assignment entity.DbAssignment
	if err := r.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListAssignmentsByTeacher returns every assignment owned by a teacher.
func (r *GormRepository) ListAssignmentsByTeacher(ctx context.Context, teacherID uint) ([]entity.DbAssignment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var assignments []entity.DbAssignment
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).Order("due_date ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListAssignmentsByCourses returns assignments for a set of courses, used for
// the student view over enrolled courses.
func (r *GormRepository) ListAssignmentsByCourses(ctx context.Context, courseIDs []uint) ([]entity.DbAssignment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if len(courseIDs) == 0 {
		return []entity.DbAssignment{}, nil
	}
	var assignments []entity.DbAssignment
	if err := r.db.WithContext(ctx).Where("course_id IN ?", courseIDs).Order("due_date ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// UpdateAssignment updates an existing assignment.
func (r *GormRepository) UpdateAssignment(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid assignment id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbAssignment{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteAssignment removes an assignment by ID. Submission guards run at the
// handler layer before this is called.
func (r *GormRepository) DeleteAssignment(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid assignment id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbAssignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateSubmission persists a new submission.
func (r *GormRepository) CreateSubmission(ctx context.Context, submission *entity.DbSubmission) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if submission == nil {
		return fmt.Errorf("submission is nil")
	}
	return r.db.WithContext(ctx).Create(submission).Error
}

// GetSubmission loads a submission by ID.
func (r *GormRepository) GetSubmission(ctx context.Context, id uint) (*entity.DbSubmission, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid submission id")
	}
	var submission entity.DbSubmission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// GetSubmissionByAssignmentAndStudent finds the student's submission for one
// assignment, used for the duplicate-submission guard.
func (r *GormRepository) GetSubmissionByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (*entity.DbSubmission, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var submission entity.DbSubmission
	err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListSubmissionsByAssignment returns every submission for an assignment.
func (r *GormRepository) ListSubmissionsByAssignment(ctx context.Context, assignmentID uint) ([]entity.DbSubmission, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var submissions []entity.DbSubmission
	if err := r.db.WithContext(ctx).Where("assignment_id = ?", assignmentID).Order("submitted_at ASC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// ListSubmissionsByStudent returns every submission made by a student.
func (r *GormRepository) ListSubmissionsByStudent(ctx context.Context, studentID uint) ([]entity.DbSubmission, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var submissions []entity.DbSubmission
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// UpdateSubmission updates an existing submission.
func (r *GormRepository) UpdateSubmission(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid submission id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbSubmission{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteSubmission removes a submission by ID.
func (r *GormRepository) DeleteSubmission(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid submission id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbSubmission{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
