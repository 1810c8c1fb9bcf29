package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pptuition/tuition-backend/internal/service"
)

const (
	// ReapInterval is how often finished players are swept.
	ReapInterval = 5 * time.Minute
	// PlayerMaxAge is how long a finished player stays queryable. Students
	// reload their result page within minutes of finishing, not hours.
	PlayerMaxAge = 30 * time.Minute
)

// ReaperWorker sweeps finished players out of the in-memory registry so a
// long-running server does not accumulate one entry per student forever.
type ReaperWorker struct {
	liveService *service.LiveQuizService
	log         zerolog.Logger
}

// NewReaperWorker creates a new ReaperWorker.
func NewReaperWorker(liveService *service.LiveQuizService, log zerolog.Logger) *ReaperWorker {
	return &ReaperWorker{
		liveService: liveService,
		log:         log.With().Str("component", "reaper_worker").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine.
func (w *ReaperWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	ticker := time.NewTicker(ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			if removed := w.liveService.PrunePlayers(PlayerMaxAge); removed > 0 {
				w.log.Info().Int("removed", removed).Msg("Pruned finished players")
			}
		}
	}
}
