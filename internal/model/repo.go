package model

import (
	"context"

	"sprachschule/internal/entity"
)

// Repository is the persistence boundary. Multi-row mutations (user+profile
// creation, role changes, guarded deletes, order swaps) are transactional
// inside the implementation.
type Repository interface {
	// Users and profiles
	CreateUser(ctx context.Context, user *entity.DbUser) error
	CreateUserWithProfile(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	DeleteUserWithProfile(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role string) (int64, error)
	ChangeUserRole(ctx context.Context, userID uint, newRole string) error

	GetAdminProfileByUserID(ctx context.Context, userID uint) (*entity.DbAdminProfile, error)
	GetTeacherProfileByUserID(ctx context.Context, userID uint) (*entity.DbTeacherProfile, error)
	GetStudentProfileByUserID(ctx context.Context, userID uint) (*entity.DbStudentProfile, error)
	GetTeacherProfile(ctx context.Context, id uint) (*entity.DbTeacherProfile, error)
	GetStudentProfile(ctx context.Context, id uint) (*entity.DbStudentProfile, error)
	ListTeachers(ctx context.Context, params *entity.BaseParams) ([]entity.DbTeacherProfile, []entity.DbUser, *entity.Meta, error)
	ListStudents(ctx context.Context, params *entity.BaseParams) ([]entity.DbStudentProfile, []entity.DbUser, *entity.Meta, error)
	UpdateTeacherProfile(ctx context.Context, id uint, updates map[string]interface{}) error
	UpdateStudentProfile(ctx context.Context, id uint, updates map[string]interface{}) error

	// Courses and lessons
	CreateCourse(ctx context.Context, course *entity.DbCourse) error
	GetCourse(ctx context.Context, id uint) (*entity.DbCourse, error)
	GetCourseWithLessons(ctx context.Context, id uint) (*entity.DbCourse, []entity.DbLesson, error)
	ListCourses(ctx context.Context, params *entity.CourseQuery, teacherID uint, activeOnly bool) ([]entity.DbCourse, *entity.Meta, error)
	UpdateCourse(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteCourse(ctx context.Context, id uint) error
	CreateLesson(ctx context.Context, lesson *entity.DbLesson) error
	GetLesson(ctx context.Context, id uint) (*entity.DbLesson, error)
	ListLessonsByCourse(ctx context.Context, courseID uint) ([]entity.DbLesson, error)
	UpdateLesson(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteLesson(ctx context.Context, id uint) error

	// Enrollments
	CreateEnrollment(ctx context.Context, enrollment *entity.DbEnrollment) error
	GetEnrollment(ctx context.Context, id uint) (*entity.DbEnrollment, error)
	GetActiveEnrollment(ctx context.Context, studentID, courseID uint) (*entity.DbEnrollment, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID uint) ([]entity.DbEnrollment, error)
	ListActiveEnrollmentsByStudent(ctx context.Context, studentID uint) ([]entity.DbEnrollment, error)
	ListCoursesByTeacher(ctx context.Context, teacherID uint) ([]entity.DbCourse, error)
	CountActiveEnrollmentsByCourse(ctx context.Context, courseID uint) (int64, error)
	UpdateEnrollmentStatus(ctx context.Context, id uint, status string) error

	// Assignments and submissions
	CreateAssignment(ctx context.Context, assignment *entity.DbAssignment) error
	GetAssignment(ctx context.Context, id uint) (*entity.DbAssignment, error)
	ListAssignmentsByTeacher(ctx context.Context, teacherID uint) ([]entity.DbAssignment, error)
	ListAssignmentsByCourses(ctx context.Context, courseIDs []uint) ([]entity.DbAssignment, error)
	UpdateAssignment(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteAssignment(ctx context.Context, id uint) error
	CreateSubmission(ctx context.Context, submission *entity.DbSubmission) error
	GetSubmission(ctx context.Context, id uint) (*entity.DbSubmission, error)
	GetSubmissionByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (*entity.DbSubmission, error)
	ListSubmissionsByAssignment(ctx context.Context, assignmentID uint) ([]entity.DbSubmission, error)
	ListSubmissionsByStudent(ctx context.Context, studentID uint) ([]entity.DbSubmission, error)
	UpdateSubmission(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteSubmission(ctx context.Context, id uint) error

	// Blog
	CreatePost(ctx context.Context, post *entity.DbBlogPost, categoryIDs []uint) error
	GetPostByID(ctx context.Context, id uint) (*entity.DbBlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*entity.DbBlogPost, error)
	ListPosts(ctx context.Context, params *entity.PostQuery, publishedOnly bool) ([]entity.DbBlogPost, *entity.Meta, error)
	UpdatePost(ctx context.Context, id uint, updates map[string]interface{}, categoryIDs *[]uint) error
	DeletePost(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]entity.DbBlogCategory, error)
	CreateCategory(ctx context.Context, category *entity.DbBlogCategory) error
	DeleteCategory(ctx context.Context, id uint) error
	FindCategoriesByIDs(ctx context.Context, ids []uint) ([]entity.DbBlogCategory, error)

	// Ordered page content
	ListHeroSlides(ctx context.Context, activeOnly bool) ([]entity.DbHeroSlide, error)
	CreateHeroSlide(ctx context.Context, slide *entity.DbHeroSlide) error
	UpdateHeroSlide(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteHeroSlide(ctx context.Context, id uint) error
	MoveHeroSlide(ctx context.Context, id uint, direction string) error
	ListFeatureItems(ctx context.Context, activeOnly bool) ([]entity.DbFeatureItem, error)
	CreateFeatureItem(ctx context.Context, item *entity.DbFeatureItem) error
	UpdateFeatureItem(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteFeatureItem(ctx context.Context, id uint) error
	MoveFeatureItem(ctx context.Context, id uint, direction string) error
	ListStatistics(ctx context.Context, activeOnly bool) ([]entity.DbStatistic, error)
	CreateStatistic(ctx context.Context, stat *entity.DbStatistic) error
	UpdateStatistic(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteStatistic(ctx context.Context, id uint) error
	MoveStatistic(ctx context.Context, id uint, direction string) error
	ListCharters(ctx context.Context, activeOnly bool) ([]entity.DbCharter, error)
	CreateCharter(ctx context.Context, charter *entity.DbCharter) error
	UpdateCharter(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteCharter(ctx context.Context, id uint) error
	MoveCharter(ctx context.Context, id uint, direction string) error

	// Contact and consultations
	CreateContactMessage(ctx context.Context, message *entity.DbContactMessage) error
	ListContactMessages(ctx context.Context, params *entity.BaseParams) ([]entity.DbContactMessage, *entity.Meta, error)
	DeleteContactMessage(ctx context.Context, id uint) error
	CreateConsultation(ctx context.Context, request *entity.DbConsultationRequest) error
	GetConsultation(ctx context.Context, id uint) (*entity.DbConsultationRequest, error)
	ListConsultations(ctx context.Context, params *entity.BaseParams, status string) ([]entity.DbConsultationRequest, *entity.Meta, error)
	UpdateConsultationStatus(ctx context.Context, id uint, status string) error
}
