package service

import (
	"context"
	"errors"
	"fmt"

	"sprachschule/internal/auth"
	"sprachschule/internal/entity"
	"sprachschule/internal/model"

	"gorm.io/gorm"
)

// Account errors surfaced to the API layer for status mapping.
var (
	ErrLastAdmin        = errors.New("cannot delete the only admin user")
	ErrSelfDelete       = errors.New("cannot delete current user")
	ErrInvalidRole      = errors.New("invalid role")
	ErrBlockedByRecords = errors.New("dependent records block deletion")
)

// BlockedError carries the IDs of the records blocking a refused deletion.
type BlockedError struct {
	Resource string
	IDs      []uint
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%d %s record(s) block deletion", len(e.IDs), e.Resource)
}

func (e *BlockedError) Unwrap() error {
	return ErrBlockedByRecords
}

// AccountService is the single authority for user/profile lifecycle: it owns
// role transitions and the deletion guards, so role and profile subtype can
// only change together.
type AccountService struct {
	repo model.Repository
}

// NewAccountService creates an AccountService.
func NewAccountService(repo model.Repository) *AccountService {
	return &AccountService{repo: repo}
}

// CreateAccount creates a user together with the profile matching its role.
func (s *AccountService) CreateAccount(ctx context.Context, name, email, password, role string, isActive bool) (*entity.DbUser, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("account service not initialised")
	}
	if !entity.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &entity.DbUser{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     isActive,
	}
	if err := s.repo.CreateUserWithProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeRole transitions a user to a new role. The old profile is removed and
// a fresh profile row is created inside one transaction; a teacher with
// courses or a student with active enrollments cannot leave their role.
func (s *AccountService) ChangeRole(ctx context.Context, userID uint, newRole string) error {
	if s == nil || s.repo == nil {
		return errors.New("account service not initialised")
	}
	if !entity.IsValidRole(newRole) {
		return ErrInvalidRole
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == newRole {
		return nil
	}

	if err := s.checkRoleDepartureGuards(ctx, user); err != nil {
		return err
	}
	if user.Role == entity.UserRoleAdmin {
		if err := s.checkNotLastAdmin(ctx); err != nil {
			return err
		}
	}

	return s.repo.ChangeUserRole(ctx, userID, newRole)
}

// DeleteAccount removes a user and its profile unless dependent records or
// the last-admin rule block it.
func (s *AccountService) DeleteAccount(ctx context.Context, actorUserID, targetUserID uint) error {
	if s == nil || s.repo == nil {
		return errors.New("account service not initialised")
	}
	if actorUserID == targetUserID {
		return ErrSelfDelete
	}

	user, err := s.repo.GetUserByID(ctx, targetUserID)
	if err != nil {
		return err
	}

	if user.Role == entity.UserRoleAdmin {
		if err := s.checkNotLastAdmin(ctx); err != nil {
			return err
		}
	}
	if err := s.checkRoleDepartureGuards(ctx, user); err != nil {
		return err
	}

	return s.repo.DeleteUserWithProfile(ctx, targetUserID)
}

// checkRoleDepartureGuards refuses to detach a user from a role that still
// owns live records.
func (s *AccountService) checkRoleDepartureGuards(ctx context.Context, user *entity.DbUser) error {
	switch user.Role {
	case entity.UserRoleTeacher:
		profile, err := s.repo.GetTeacherProfileByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		courses, err := s.repo.ListCoursesByTeacher(ctx, profile.ID)
		if err != nil {
			return err
		}
		if len(courses) > 0 {
			ids := make([]uint, 0, len(courses))
			for i := range courses {
				ids = append(ids, courses[i].ID)
			}
			return &BlockedError{Resource: "course", IDs: ids}
		}
	case entity.UserRoleStudent:
		profile, err := s.repo.GetStudentProfileByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		enrollments, err := s.repo.ListActiveEnrollmentsByStudent(ctx, profile.ID)
		if err != nil {
			return err
		}
		if len(enrollments) > 0 {
			ids := make([]uint, 0, len(enrollments))
			for i := range enrollments {
				ids = append(ids, enrollments[i].ID)
			}
			return &BlockedError{Resource: "enrollment", IDs: ids}
		}
	}
	return nil
}

func (s *AccountService) checkNotLastAdmin(ctx context.Context) error {
	count, err := s.repo.CountUsersByRole(ctx, entity.UserRoleAdmin)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastAdmin
	}
	return nil
}
