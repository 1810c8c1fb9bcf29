package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pptuition/tuition-backend/internal/config"
	"github.com/pptuition/tuition-backend/internal/database"
	"github.com/pptuition/tuition-backend/internal/logger"
	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/repository"
	"github.com/pptuition/tuition-backend/internal/service"
)

// seed loads a starter quiz, a few students and a note so a fresh install
// has something to run a live session against.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)

	authService := service.NewAuthService(cfg, studentRepo)

	fmt.Println("=== Seeding sample data ===")

	// ─── Sample quiz ───────────────────────────────────────────────────
	quiz := &model.Quiz{
		Title:      "General Science Checkpoint",
		ClassLevel: 9,
		Difficulty: model.DifficultyMedium,
	}
	if err := quizRepo.Create(ctx, quiz); err != nil {
		log.Fatal().Err(err).Msg("Failed to create quiz")
	}

	questions := []model.Question{
		{
			Text:          "What is the SI unit of force?",
			Options:       []string{"Joule", "Newton", "Watt", "Pascal"},
			CorrectOption: 1,
			Explanation:   "The SI unit of force is Newton (N), named after Sir Isaac Newton.",
		},
		{
			Text:          "Which gas is essential for respiration?",
			Options:       []string{"Carbon dioxide", "Nitrogen", "Oxygen", "Hydrogen"},
			CorrectOption: 2,
			Explanation:   "Oxygen is essential for cellular respiration in living organisms.",
		},
		{
			Text:          "What is the chemical formula for table salt?",
			Options:       []string{"NaCl", "KCl", "CaCl₂", "MgCl₂"},
			CorrectOption: 0,
			Explanation:   "Table salt is sodium chloride with the formula NaCl.",
		},
		{
			Text:          "Which organelle is responsible for photosynthesis?",
			Options:       []string{"Mitochondria", "Ribosome", "Chloroplast", "Nucleus"},
			CorrectOption: 2,
			Explanation:   "Chloroplasts contain chlorophyll and are the site of photosynthesis.",
		},
		{
			Text:          "What is the speed of light in vacuum?",
			Options:       []string{"3 × 10⁶ m/s", "3 × 10⁸ m/s", "3 × 10¹⁰ m/s", "3 × 10⁴ m/s"},
			CorrectOption: 1,
			Explanation:   "The speed of light in vacuum is approximately 3 × 10⁸ m/s.",
		},
	}
	if err := quizRepo.ReplaceQuestions(ctx, quiz.ID, questions); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed questions")
	}
	fmt.Printf("Created quiz %s with %d questions\n", quiz.ID, len(questions))

	// ─── Sample students ───────────────────────────────────────────────
	students := []struct {
		name  string
		class int
	}{
		{"Aarav Sharma", 9},
		{"Diya Patel", 9},
		{"Ishaan Gupta", 10},
		{"Meera Nair", 10},
	}

	for _, s := range students {
		hash, err := authService.HashPassword("changeme123")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash password")
		}
		student := &model.Student{
			Name:         s.name,
			ClassLevel:   s.class,
			PasswordHash: hash,
		}
		if err := studentRepo.Create(ctx, student); err != nil {
			log.Warn().Err(err).Str("name", s.name).Msg("Skipping student")
			continue
		}
		fmt.Printf("Created student %s (class %d)\n", s.name, s.class)
	}

	// ─── Sample note ───────────────────────────────────────────────────
	note := &model.Note{
		Title:      "Laws of Motion: Quick Revision",
		Content:    "Newton's three laws of motion summarise how forces act on bodies. First law: inertia. Second law: F = ma. Third law: every action has an equal and opposite reaction.",
		ClassLevel: 9,
		Subject:    model.SubjectPhysics,
	}
	if err := noteRepo.Create(ctx, note); err != nil {
		log.Fatal().Err(err).Msg("Failed to create note")
	}
	fmt.Println("Created revision note")

	fmt.Println("Done.")
}
