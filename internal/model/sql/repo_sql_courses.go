package sql

import (
	"context"
	"fmt"
	"strings"

	"sprachschule/internal/entity"

	"gorm.io/gorm"
)

// CreateCourse persists a new course.
func (r *GormRepository) CreateCourse(ctx context.Context, course *entity.DbCourse) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if course == nil {
		return fmt.Errorf("course is nil")
	}
	return r.db.WithContext(ctx).Create(course).Error
}

// GetCourse loads a course by ID.
func (r *GormRepository) GetCourse(ctx context.Context, id uint) (*entity.DbCourse, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid course id")
	}
	var course entity.DbCourse
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// GetCourseWithLessons loads a course and its lessons ordered for display.
func (r *GormRepository) GetCourseWithLessons(ctx context.Context, id uint) (*entity.DbCourse, []entity.DbLesson, error) {
	course, err := r.GetCourse(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	lessons, err := r.ListLessonsByCourse(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return course, lessons, nil
}

// ListCourses returns paginated courses, optionally scoped to one teacher
// and/or active records only.
func (r *GormRepository) ListCourses(ctx context.Context, params *entity.CourseQuery, teacherID uint, activeOnly bool) ([]entity.DbCourse, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbCourse{})
	if teacherID != 0 {
		query = query.Where("teacher_id = ?", teacherID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if params != nil {
		if trimmed := strings.TrimSpace(params.Language); trimmed != "" {
			query = query.Where("language = ?", trimmed)
		}
		if trimmed := strings.TrimSpace(params.Level); trimmed != "" {
			query = query.Where("level = ?", trimmed)
		}
		if params.Featured != nil {
			query = query.Where("is_featured = ?", *params.Featured)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var base *entity.BaseParams
	if params != nil {
		base = &params.BaseParams
	}
	page, pageSize, offset := pageWindow(base)

	var courses []entity.DbCourse
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&courses).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return courses, meta, nil
}

// UpdateCourse updates an existing course.
func (r *GormRepository) UpdateCourse(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid course id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbCourse{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteCourse removes the course together with its lessons in one
// transaction. Enrollment and assignment guards run at the handler layer
// before this is called.
func (r *GormRepository) DeleteCourse(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid course id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&entity.DbLesson{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbCourse{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CreateLesson persists a new lesson. When no order index is set the lesson
// is appended after the course's current last lesson.
func (r *GormRepository) CreateLesson(ctx context.Context, lesson *entity.DbLesson) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if lesson == nil {
		return fmt.Errorf("lesson is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if lesson.OrderIndex == 0 {
			var maxIndex int
			row := tx.Model(&entity.DbLesson{}).Where("course_id = ?", lesson.CourseID).Select("COALESCE(MAX(order_index), 0)").Row()
			if err := row.Scan(&maxIndex); err == nil {
				lesson.OrderIndex = maxIndex + 1
			}
		}
		return tx.Create(lesson).Error
	})
}

// GetLesson loads a lesson by ID.
func (r *GormRepository) GetLesson(ctx context.Context, id uint) (*entity.DbLesson, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid lesson id")
	}
	var lesson entity.DbLesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ListLessonsByCourse returns a course's lessons in display order.
func (r *GormRepository) ListLessonsByCourse(ctx context.Context, courseID uint) ([]entity.DbLesson, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var lessons []entity.DbLesson
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("order_index ASC, id ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

// UpdateLesson updates an existing lesson.
func (r *GormRepository) UpdateLesson(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid lesson id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbLesson{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteLesson removes a lesson by ID.
func (r *GormRepository) DeleteLesson(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid lesson id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbLesson{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
