package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sprachschule/internal/api"
	"sprachschule/internal/config"
	"sprachschule/internal/entity"
	"sprachschule/internal/model"
	"sprachschule/internal/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.SeedDefaultContent(context.Background(), repo); err != nil {
		logrus.WithError(err).Warn("failed to seed default content")
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(cfg.SessionCookieName, sessionStore))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	// Public marketing site
	public := apiGroup.Group("/public")
	public.GET("/home", httpHandler.PublicHomeContent)
	public.GET("/courses", httpHandler.PublicListCourses)
	public.GET("/courses/:id", httpHandler.PublicGetCourse)
	public.GET("/teachers", httpHandler.PublicListTeachers)
	public.GET("/posts", httpHandler.PublicListPosts)
	public.GET("/posts/:slug", httpHandler.PublicGetPostBySlug)
	public.GET("/categories", httpHandler.PublicListCategories)
	public.GET("/charters", httpHandler.PublicListCharters)
	public.POST("/contact", httpHandler.SubmitContactMessage)
	public.POST("/consultations", httpHandler.SubmitConsultation)

	// Authentication
	authGroup := apiGroup.Group("/auth")
	authGroup.GET("/status", httpHandler.AuthStatus)
	authGroup.POST("/register", httpHandler.Register)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.POST("/logout", httpHandler.Logout)
	authGroup.GET("/me", httpHandler.AuthMiddleware(), httpHandler.Me)

	protected := apiGroup.Group("")
	protected.Use(httpHandler.AuthMiddleware())

	protected.POST("/uploads", httpHandler.RequireRole(entity.UserRoleAdmin, entity.UserRoleTeacher), httpHandler.UploadImage)

	// Admin dashboard
	admin := protected.Group("/admin")
	admin.Use(httpHandler.RequireRole(entity.UserRoleAdmin))

	admin.GET("/users", httpHandler.ListUsers)
	admin.POST("/users", httpHandler.CreateUser)
	admin.GET("/users/:id", httpHandler.GetUser)
	admin.PATCH("/users/:id", httpHandler.UpdateUser)
	admin.PATCH("/users/:id/role", httpHandler.ChangeUserRole)
	admin.DELETE("/users/:id", httpHandler.DeleteUser)

	admin.GET("/teachers", httpHandler.ListTeachers)
	admin.POST("/teachers", httpHandler.CreateTeacher)
	admin.GET("/teachers/:id", httpHandler.GetTeacher)
	admin.PATCH("/teachers/:id", httpHandler.UpdateTeacher)
	admin.DELETE("/teachers/:id", httpHandler.DeleteTeacher)

	admin.GET("/students", httpHandler.ListStudents)
	admin.POST("/students", httpHandler.CreateStudent)
	admin.GET("/students/:id", httpHandler.GetStudent)
	admin.PATCH("/students/:id", httpHandler.UpdateStudent)
	admin.DELETE("/students/:id", httpHandler.DeleteStudent)

	admin.GET("/posts", httpHandler.ListPosts)
	admin.POST("/posts", httpHandler.CreatePost)
	admin.GET("/posts/:id", httpHandler.GetPost)
	admin.PATCH("/posts/:id", httpHandler.UpdatePost)
	admin.DELETE("/posts/:id", httpHandler.DeletePost)
	admin.GET("/categories", httpHandler.ListCategories)
	admin.POST("/categories", httpHandler.CreateCategory)
	admin.DELETE("/categories/:id", httpHandler.DeleteCategory)

	admin.GET("/hero-slides", httpHandler.ListHeroSlides)
	admin.POST("/hero-slides", httpHandler.CreateHeroSlide)
	admin.PATCH("/hero-slides/:id", httpHandler.UpdateHeroSlide)
	admin.DELETE("/hero-slides/:id", httpHandler.DeleteHeroSlide)
	admin.POST("/hero-slides/:id/move", httpHandler.MoveHeroSlide)

	admin.GET("/features", httpHandler.ListFeatureItems)
	admin.POST("/features", httpHandler.CreateFeatureItem)
	admin.PATCH("/features/:id", httpHandler.UpdateFeatureItem)
	admin.DELETE("/features/:id", httpHandler.DeleteFeatureItem)
	admin.POST("/features/:id/move", httpHandler.MoveFeatureItem)

	admin.GET("/statistics", httpHandler.ListStatistics)
	admin.POST("/statistics", httpHandler.CreateStatistic)
	admin.PATCH("/statistics/:id", httpHandler.UpdateStatistic)
	admin.DELETE("/statistics/:id", httpHandler.DeleteStatistic)
	admin.POST("/statistics/:id/move", httpHandler.MoveStatistic)

	admin.GET("/charters", httpHandler.ListCharters)
	admin.POST("/charters", httpHandler.CreateCharter)
	admin.PATCH("/charters/:id", httpHandler.UpdateCharter)
	admin.DELETE("/charters/:id", httpHandler.DeleteCharter)
	admin.POST("/charters/:id/move", httpHandler.MoveCharter)

	admin.GET("/contact-messages", httpHandler.ListContactMessages)
	admin.DELETE("/contact-messages/:id", httpHandler.DeleteContactMessage)
	admin.GET("/consultations", httpHandler.ListConsultations)
	admin.PATCH("/consultations/:id/status", httpHandler.UpdateConsultationStatus)

	// Teacher dashboard
	teacher := protected.Group("/teacher")
	teacher.Use(httpHandler.RequireRole(entity.UserRoleTeacher))

	teacher.GET("/courses", httpHandler.ListMyCourses)
	teacher.POST("/courses", httpHandler.CreateCourse)
	teacher.GET("/courses/:id", httpHandler.GetMyCourse)
	teacher.PATCH("/courses/:id", httpHandler.UpdateCourse)
	teacher.DELETE("/courses/:id", httpHandler.DeleteCourse)

	teacher.GET("/courses/:id/lessons", httpHandler.ListLessons)
	teacher.POST("/courses/:id/lessons", httpHandler.CreateLesson)
	teacher.PATCH("/courses/:id/lessons/:lessonId", httpHandler.UpdateLesson)
	teacher.DELETE("/courses/:id/lessons/:lessonId", httpHandler.DeleteLesson)

	teacher.GET("/assignments", httpHandler.ListMyAssignments)
	teacher.POST("/assignments", httpHandler.CreateAssignment)
	teacher.GET("/assignments/:id", httpHandler.GetMyAssignment)
	teacher.PATCH("/assignments/:id", httpHandler.UpdateAssignment)
	teacher.DELETE("/assignments/:id", httpHandler.DeleteAssignment)
	teacher.PATCH("/submissions/:id/grade", httpHandler.GradeSubmission)

	// Student dashboard
	student := protected.Group("/student")
	student.Use(httpHandler.RequireRole(entity.UserRoleStudent))

	student.GET("/enrollments", httpHandler.ListMyEnrollments)
	student.POST("/enrollments", httpHandler.Enroll)
	student.POST("/enrollments/:id/cancel", httpHandler.CancelEnrollment)
	student.GET("/courses/:id", httpHandler.GetEnrolledCourse)
	student.GET("/assignments", httpHandler.ListAvailableAssignments)
	student.GET("/submissions", httpHandler.ListMySubmissions)
	student.POST("/submissions", httpHandler.SubmitAssignment)
	student.PATCH("/submissions/:id", httpHandler.UpdateMySubmission)
	student.DELETE("/submissions/:id", httpHandler.DeleteMySubmission)

	// Serve local media directly when the local backend is in use.
	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/media"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed")
	}
}

// CORSMiddleware handles cross-origin requests from the frontend.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware logs one structured line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
