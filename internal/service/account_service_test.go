package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sprachschule/internal/entity"
	"sprachschule/internal/model"
	modelsql "sprachschule/internal/model/sql"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestService(t *testing.T) (*AccountService, model.Repository) {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.DbUser{},
		&entity.DbAdminProfile{},
		&entity.DbTeacherProfile{},
		&entity.DbStudentProfile{},
		&entity.DbCourse{},
		&entity.DbLesson{},
		&entity.DbEnrollment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	repo := modelsql.NewGormRepository(db)
	return NewAccountService(repo), repo
}

func TestCreateAccountProvisionsProfile(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateAccount(ctx, "Anna", "anna@example.com", "password123", entity.UserRoleTeacher, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user id to be set")
	}
	if _, err := repo.GetTeacherProfileByUserID(ctx, user.ID); err != nil {
		t.Fatalf("expected teacher profile to exist: %v", err)
	}
}

func TestCreateAccountRejectsUnknownRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateAccount(context.Background(), "X", "x@example.com", "password123", "superuser", true)
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestDeleteAccountRefusesSelf(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAccount(ctx, "Admin", "admin@example.com", "password123", entity.UserRoleAdmin, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteAccount(ctx, admin.ID, admin.ID); !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
}

func TestDeleteAccountRefusesLastAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAccount(ctx, "Admin", "admin@example.com", "password123", entity.UserRoleAdmin, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	teacher, err := svc.CreateAccount(ctx, "Teacher", "teacher@example.com", "password123", entity.UserRoleTeacher, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteAccount(ctx, teacher.ID, admin.ID); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
}

func TestDeleteAccountBlockedByCourses(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAccount(ctx, "Admin", "admin@example.com", "password123", entity.UserRoleAdmin, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	teacher, err := svc.CreateAccount(ctx, "Teacher", "teacher@example.com", "password123", entity.UserRoleTeacher, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile, err := repo.GetTeacherProfileByUserID(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("failed to load teacher profile: %v", err)
	}
	course := &entity.DbCourse{TeacherID: profile.ID, Title: "German A1", Language: "de", Capacity: 12, IsActive: true}
	if err := repo.CreateCourse(ctx, course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	err = svc.DeleteAccount(ctx, admin.ID, teacher.ID)
	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected BlockedError, got %v", err)
	}
	if blocked.Resource != "course" || len(blocked.IDs) != 1 || blocked.IDs[0] != course.ID {
		t.Fatalf("expected blocking course %d, got %+v", course.ID, blocked)
	}
	if !errors.Is(err, ErrBlockedByRecords) {
		t.Fatal("expected BlockedError to unwrap to ErrBlockedByRecords")
	}

	// Deleting the course unblocks the account.
	if err := repo.DeleteCourse(ctx, course.ID); err != nil {
		t.Fatalf("failed to delete course: %v", err)
	}
	if err := svc.DeleteAccount(ctx, admin.ID, teacher.ID); err != nil {
		t.Fatalf("expected deletion to succeed after course removal: %v", err)
	}
	if _, err := repo.GetTeacherProfileByUserID(ctx, teacher.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected the teacher profile to be removed, got %v", err)
	}
}

func TestDeleteAccountBlockedByActiveEnrollments(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAccount(ctx, "Admin", "admin@example.com", "password123", entity.UserRoleAdmin, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	teacher, err := svc.CreateAccount(ctx, "Teacher", "teacher@example.com", "password123", entity.UserRoleTeacher, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	student, err := svc.CreateAccount(ctx, "Student", "student@example.com", "password123", entity.UserRoleStudent, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	teacherProfile, err := repo.GetTeacherProfileByUserID(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("failed to load teacher profile: %v", err)
	}
	studentProfile, err := repo.GetStudentProfileByUserID(ctx, student.ID)
	if err != nil {
		t.Fatalf("failed to load student profile: %v", err)
	}

	course := &entity.DbCourse{TeacherID: teacherProfile.ID, Title: "Farsi 1", Language: "fa", Capacity: 12, IsActive: true}
	if err := repo.CreateCourse(ctx, course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	enrollment := &entity.DbEnrollment{StudentID: studentProfile.ID, CourseID: course.ID, Status: entity.EnrollmentStatusActive}
	if err := repo.CreateEnrollment(ctx, enrollment); err != nil {
		t.Fatalf("failed to enroll student: %v", err)
	}

	err = svc.DeleteAccount(ctx, admin.ID, student.ID)
	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected BlockedError, got %v", err)
	}
	if blocked.Resource != "enrollment" || len(blocked.IDs) != 1 || blocked.IDs[0] != enrollment.ID {
		t.Fatalf("expected blocking enrollment %d, got %+v", enrollment.ID, blocked)
	}

	// A cancelled enrollment no longer blocks.
	if err := repo.UpdateEnrollmentStatus(ctx, enrollment.ID, entity.EnrollmentStatusCancelled); err != nil {
		t.Fatalf("failed to cancel enrollment: %v", err)
	}
	if err := svc.DeleteAccount(ctx, admin.ID, student.ID); err != nil {
		t.Fatalf("expected deletion to succeed after cancellation: %v", err)
	}
}

func TestChangeRoleSameRoleIsNoOp(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	teacher, err := svc.CreateAccount(ctx, "Teacher", "teacher@example.com", "password123", entity.UserRoleTeacher, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.ChangeRole(ctx, teacher.ID, entity.UserRoleTeacher); err != nil {
		t.Fatalf("expected same-role change to be a no-op: %v", err)
	}
	if _, err := repo.GetTeacherProfileByUserID(ctx, teacher.ID); err != nil {
		t.Fatalf("expected teacher profile to survive: %v", err)
	}
}

func TestChangeRoleSwapsProfiles(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateAccount(ctx, "Flexible", "flex@example.com", "password123", entity.UserRoleStudent, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.ChangeRole(ctx, user.ID, entity.UserRoleTeacher); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.GetTeacherProfileByUserID(ctx, user.ID); err != nil {
		t.Fatalf("expected a teacher profile after role change: %v", err)
	}
	if _, err := repo.GetStudentProfileByUserID(ctx, user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected the student profile to be removed, got %v", err)
	}

	reloaded, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if reloaded.Role != entity.UserRoleTeacher {
		t.Fatalf("expected role teacher, got %s", reloaded.Role)
	}
}

func TestChangeRoleRefusesLastAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.CreateAccount(ctx, "Admin", "admin@example.com", "password123", entity.UserRoleAdmin, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.ChangeRole(ctx, admin.ID, entity.UserRoleStudent); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
}
