package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pptuition/tuition-backend/internal/config"
	"github.com/pptuition/tuition-backend/internal/database"
	"github.com/pptuition/tuition-backend/internal/handler"
	"github.com/pptuition/tuition-backend/internal/livequiz"
	"github.com/pptuition/tuition-backend/internal/logger"
	"github.com/pptuition/tuition-backend/internal/repository"
	"github.com/pptuition/tuition-backend/internal/router"
	"github.com/pptuition/tuition-backend/internal/service"
	"github.com/pptuition/tuition-backend/internal/store"
	"github.com/pptuition/tuition-backend/internal/validator"
	"github.com/pptuition/tuition-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Tuition Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	resultRepo := repository.NewResultRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, studentRepo)
	studentService := service.NewStudentService(studentRepo, authService)
	quizService := service.NewQuizService(quizRepo, log)
	noteService := service.NewNoteService(noteRepo)
	practiceService := service.NewPracticeService(quizRepo, resultRepo, studentRepo, log)

	generatorService, err := service.NewGeneratorService(ctx, cfg, quizService, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize quiz generator")
	}

	// ─── Live Quiz Protocol ────────────────────────────────────────────
	// The session record lives in Redis so a restart (or a second node)
	// still resolves join codes against the authoritative session.
	sessionStore := store.NewRedisStore(rdb)
	manager := livequiz.NewManager(sessionStore, quizService, nil, nil, log)
	liveService := service.NewLiveQuizService(
		manager, sessionStore, rdb,
		quizRepo, resultRepo, studentRepo,
		nil, log,
	)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Student:   handler.NewStudentHandler(studentService),
		Quiz:      handler.NewQuizHandler(quizService),
		Practice:  handler.NewPracticeHandler(practiceService),
		Note:      handler.NewNoteHandler(noteService),
		Result:    handler.NewResultHandler(resultRepo),
		Live:      handler.NewLiveHandler(liveService),
		Generator: handler.NewGeneratorHandler(generatorService, cfg),
		WS:        handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	reaperWorker := worker.NewReaperWorker(liveService, log)
	go reaperWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers. The live session record is left in Redis
	// on purpose: the join path re-validates expiry on every read, so a
	// restarted server resolves the same join codes until the end time.
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
