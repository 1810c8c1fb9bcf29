package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pptuition/tuition-backend/internal/config"
	"github.com/pptuition/tuition-backend/internal/handler"
	"github.com/pptuition/tuition-backend/internal/middleware"
	"github.com/pptuition/tuition-backend/internal/response"
	"github.com/pptuition/tuition-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Student   *handler.StudentHandler
	Quiz      *handler.QuizHandler
	Practice  *handler.PracticeHandler
	Note      *handler.NoteHandler
	Result    *handler.ResultHandler
	Live      *handler.LiveHandler
	Generator *handler.GeneratorHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)
	// Join attempts get their own bucket so code guessing stays slow
	// without starving the polling endpoints.
	joinLimiter := middleware.NewRateLimiter(20, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/signup", handlers.Auth.StudentSignup)
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/teacher/login", handlers.Auth.TeacherLogin)
	}

	// ─── 2. Live Quiz Group (Public: players join by code, not account) ─
	live := router.Group("/api/v1/live")
	{
		live.POST("/join", joinLimiter.Middleware(), handlers.Live.Join)
		live.GET("/players/:player_id", handlers.Live.State)
		live.POST("/players/:player_id/answer", handlers.Live.Answer)
		live.POST("/players/:player_id/advance", handlers.Live.Advance)
		live.GET("/players/:player_id/result", handlers.Live.Result)
	}

	// ─── 3. Student Group (Student JWT) ────────────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(middleware.RequireStudentJWT(authService))
	{
		studentAPI.GET("/notes", handlers.Note.List)
		studentAPI.GET("/quizzes", handlers.Quiz.StudentList)
		studentAPI.GET("/quizzes/:id", handlers.Practice.GetQuiz)
		studentAPI.POST("/quizzes/:id/attempt", handlers.Practice.SubmitAttempt)
	}

	// ─── 4. Teacher Group (Teacher JWT) ────────────────────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(middleware.RequireTeacherJWT(authService))
	{
		// Live session control
		teacherAPI.POST("/live/start", handlers.Live.Start)
		teacherAPI.POST("/live/stop", handlers.Live.Stop)
		teacherAPI.GET("/live/status", handlers.Live.Status)

		// Quiz management
		teacherAPI.GET("/quizzes", handlers.Quiz.List)
		teacherAPI.POST("/quizzes", handlers.Quiz.Create)
		teacherAPI.POST("/quizzes/generate", handlers.Generator.Generate)
		teacherAPI.GET("/quizzes/:id", handlers.Quiz.Get)
		teacherAPI.PUT("/quizzes/:id", handlers.Quiz.Update)
		teacherAPI.DELETE("/quizzes/:id", handlers.Quiz.Delete)
		teacherAPI.PUT("/quizzes/:id/questions", handlers.Quiz.ReplaceQuestions)

		// Student management
		teacherAPI.GET("/students", handlers.Student.List)
		teacherAPI.POST("/students", handlers.Student.Create)
		teacherAPI.PUT("/students/:id", handlers.Student.Update)
		teacherAPI.DELETE("/students/:id", handlers.Student.Delete)

		// Notes
		teacherAPI.GET("/notes", handlers.Note.List)
		teacherAPI.POST("/notes", handlers.Note.Create)
		teacherAPI.PUT("/notes/:id", handlers.Note.Update)
		teacherAPI.DELETE("/notes/:id", handlers.Note.Delete)

		// Results
		teacherAPI.GET("/results", handlers.Result.List)
	}

	// ─── 5. WebSocket Group (Teacher WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireTeacherWSAuth(authService))
	{
		ws.GET("/teacher/live/watch", handlers.WS.LiveWatchStream)
	}

	return router
}
