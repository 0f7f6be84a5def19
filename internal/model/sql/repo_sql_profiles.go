package sql

import (
	"context"
	"fmt"

	"sprachschule/internal/entity"
)

// GetAdminProfileByUserID loads the admin profile for a user.
func (r *GormRepository) GetAdminProfileByUserID(ctx context.Context, userID uint) (*entity.DbAdminProfile, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var profile entity.DbAdminProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetTeacherProfileByUserID loads the teacher profile for a user.
func (r *GormRepository) GetTeacherProfileByUserID(ctx context.Context, userID uint) (*entity.DbTeacherProfile, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var profile entity.DbTeacherProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetStudentProfileByUserID loads the student profile for a user.
func (r *GormRepository) GetStudentProfileByUserID(ctx context.Context, userID uint) (*entity.DbStudentProfile, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var profile entity.DbStudentProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetTeacherProfile loads a teacher profile by its own ID.
func (r *GormRepository) GetTeacherProfile(ctx context.Context, id uint) (*entity.DbTeacherProfile, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var profile entity.DbTeacherProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetStudentProfile loads a student profile by its own ID.
func (r *GormRepository) GetStudentProfile(ctx context.Context, id uint) (*entity.DbStudentProfile, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var profile entity.DbStudentProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListTeachers returns teacher profiles plus the matching user rows.
func (r *GormRepository) ListTeachers(ctx context.Context, params *entity.BaseParams) ([]entity.DbTeacherProfile, []entity.DbUser, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbTeacherProfile{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, nil, err
	}

	page, pageSize, offset := pageWindow(params)

	var profiles []entity.DbTeacherProfile
	if err := query.Order("id ASC").Offset(offset).Limit(pageSize).Find(&profiles).Error; err != nil {
		return nil, nil, nil, err
	}

	users, err := r.loadUsersForProfiles(ctx, teacherUserIDs(profiles))
	if err != nil {
		return nil, nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return profiles, users, meta, nil
}

// ListStudents returns student profiles plus the matching user rows.
func (r *GormRepository) ListStudents(ctx context.Context, params *entity.BaseParams) ([]entity.DbStudentProfile, []entity.DbUser, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbStudentProfile{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, nil, err
	}

	page, pageSize, offset := pageWindow(params)

	var profiles []entity.DbStudentProfile
	if err := query.Order("id ASC").Offset(offset).Limit(pageSize).Find(&profiles).Error; err != nil {
		return nil, nil, nil, err
	}

	userIDs := make([]uint, 0, len(profiles))
	for i := range profiles {
		userIDs = append(userIDs, profiles[i].UserID)
	}
	users, err := r.loadUsersForProfiles(ctx, userIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return profiles, users, meta, nil
}

func teacherUserIDs(profiles []entity.DbTeacherProfile) []uint {
	ids := make([]uint, 0, len(profiles))
	for i := range profiles {
		ids = append(ids, profiles[i].UserID)
	}
	return ids
}

func (r *GormRepository) loadUsersForProfiles(ctx context.Context, userIDs []uint) ([]entity.DbUser, error) {
	if len(userIDs) == 0 {
		return []entity.DbUser{}, nil
	}
	var users []entity.DbUser
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateTeacherProfile updates a teacher profile by profile ID.
func (r *GormRepository) UpdateTeacherProfile(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid teacher id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbTeacherProfile{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateStudentProfile updates a student profile by profile ID.
func (r *GormRepository) UpdateStudentProfile(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid student id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbStudentProfile{}).Where("id = ?", id).Updates(updates).Error
}
