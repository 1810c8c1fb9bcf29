// Package store provides the shared session store: the single communication
// channel between the teacher's session manager and student players. It holds
// exactly one record — the current live session — replaced wholesale, never
// partially updated.
package store

import (
	"context"
	"errors"

	"github.com/pptuition/tuition-backend/internal/model"
)

// ErrNotFound is returned by Get when no live session record exists.
var ErrNotFound = errors.New("no live session in store")

// SessionStore is the injected capability both sides of the live-quiz
// protocol use. The teacher's manager is the only writer; students are
// read-only. Implementations must make Delete a no-op when absent.
type SessionStore interface {
	Put(ctx context.Context, session *model.LiveSession) error
	Get(ctx context.Context) (*model.LiveSession, error)
	Delete(ctx context.Context) error
}
