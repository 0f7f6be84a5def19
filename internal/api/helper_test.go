package api

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"sprachschule/internal/config"
	"sprachschule/internal/entity"
	"sprachschule/internal/model"
	modelsql "sprachschule/internal/model/sql"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newTestRepo opens a fresh in-memory database per test.
func newTestRepo(t *testing.T) model.Repository {
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
		&entity.DbAssignment{},
		&entity.DbSubmission{},
		&entity.DbBlogPost{},
		&entity.DbBlogCategory{},
		&entity.DbHeroSlide{},
		&entity.DbFeatureItem{},
		&entity.DbStatistic{},
		&entity.DbCharter{},
		&entity.DbContactMessage{},
		&entity.DbConsultationRequest{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return modelsql.NewGormRepository(db)
}

func newTestHandler(t *testing.T) (*HTTPHandler, model.Repository) {
	t.Helper()

	repo := newTestRepo(t)
	cfg := config.Config{
		JWTSecret:            "test-secret",
		JWTIssuer:            "test",
		JWTExpirationMinutes: 60,
		SessionSecret:        "test-session-secret",
		SessionCookieName:    "test_session",
		SessionMaxAge:        3600,
		StoragePublicBaseURL: "/media",
	}

	handler, err := NewHTTPHandler(cfg, repo, nil)
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return handler, repo
}

// newTestRouter wires the routes exercised by the handler tests, mirroring
// the server wiring.
func newTestRouter(h *HTTPHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	store := cookie.NewStore([]byte("test-session-secret"))
	r.Use(sessions.Sessions("test_session", store))

	apiGroup := r.Group("/api")

	public := apiGroup.Group("/public")
	public.GET("/courses", h.PublicListCourses)
	public.GET("/courses/:id", h.PublicGetCourse)
	public.GET("/posts", h.PublicListPosts)
	public.GET("/posts/:slug", h.PublicGetPostBySlug)
	public.POST("/contact", h.SubmitContactMessage)
	public.POST("/consultations", h.SubmitConsultation)

	authGroup := apiGroup.Group("/auth")
	authGroup.GET("/status", h.AuthStatus)
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", h.AuthMiddleware(), h.Me)

	protected := apiGroup.Group("")
	protected.Use(h.AuthMiddleware())

	admin := protected.Group("/admin")
	admin.Use(h.RequireRole(entity.UserRoleAdmin))
	admin.GET("/users", h.ListUsers)
	admin.POST("/users", h.CreateUser)
	admin.PATCH("/users/:id/role", h.ChangeUserRole)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.GET("/teachers", h.ListTeachers)
	admin.POST("/teachers", h.CreateTeacher)
	admin.DELETE("/teachers/:id", h.DeleteTeacher)
	admin.POST("/students", h.CreateStudent)
	admin.DELETE("/students/:id", h.DeleteStudent)
	admin.POST("/posts", h.CreatePost)
	admin.GET("/posts/:id", h.GetPost)
	admin.PATCH("/posts/:id", h.UpdatePost)
	admin.POST("/hero-slides", h.CreateHeroSlide)
	admin.GET("/hero-slides", h.ListHeroSlides)
	admin.POST("/hero-slides/:id/move", h.MoveHeroSlide)

	teacher := protected.Group("/teacher")
	teacher.Use(h.RequireRole(entity.UserRoleTeacher))
	teacher.GET("/courses", h.ListMyCourses)
	teacher.POST("/courses", h.CreateCourse)
	teacher.GET("/courses/:id", h.GetMyCourse)
	teacher.PATCH("/courses/:id", h.UpdateCourse)
	teacher.DELETE("/courses/:id", h.DeleteCourse)
	teacher.POST("/courses/:id/lessons", h.CreateLesson)
	teacher.POST("/assignments", h.CreateAssignment)
	teacher.DELETE("/assignments/:id", h.DeleteAssignment)
	teacher.PATCH("/submissions/:id/grade", h.GradeSubmission)

	student := protected.Group("/student")
	student.Use(h.RequireRole(entity.UserRoleStudent))
	student.GET("/enrollments", h.ListMyEnrollments)
	student.POST("/enrollments", h.Enroll)
	student.POST("/enrollments/:id/cancel", h.CancelEnrollment)
	student.POST("/submissions", h.SubmitAssignment)
	student.PATCH("/submissions/:id", h.UpdateMySubmission)
	student.DELETE("/submissions/:id", h.DeleteMySubmission)

	return r
}

// createAccount provisions a user with its role profile and returns the user
// and a valid bearer token.
func createAccount(t *testing.T, h *HTTPHandler, name, email, role string) (*entity.DbUser, string) {
	t.Helper()

	user, err := h.accountService.CreateAccount(context.Background(), name, email, "password123", role, true)
	if err != nil {
		t.Fatalf("failed to create %s account: %v", role, err)
	}
	token, _, err := h.authManager.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

func performRequest(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func teacherProfileID(t *testing.T, repo model.Repository, userID uint) uint {
	t.Helper()
	profile, err := repo.GetTeacherProfileByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to load teacher profile: %v", err)
	}
	return profile.ID
}

func studentProfileID(t *testing.T, repo model.Repository, userID uint) uint {
	t.Helper()
	profile, err := repo.GetStudentProfileByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to load student profile: %v", err)
	}
	return profile.ID
}
