package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pptuition/tuition-backend/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if _, err := st.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty Get: got %v, want ErrNotFound", err)
	}

	session := &model.LiveSession{
		ID:         uuid.New(),
		Title:      "Acids and Bases",
		ClassLevel: 10,
		JoinCode:   "QW3RT9",
		StartTime:  time.Now().UTC().Truncate(time.Second),
		EndTime:    time.Now().UTC().Add(time.Hour).Truncate(time.Second),
		Questions: []model.Question{
			{Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectOption: 2},
		},
	}
	if err := st.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := st.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == session {
		t.Fatal("Get returned the stored pointer, want a copy")
	}
	if got.JoinCode != session.JoinCode || got.ID != session.ID {
		t.Errorf("got %+v, want %+v", got, session)
	}
	if len(got.Questions) != 1 || got.Questions[0].CorrectOption != 2 {
		t.Errorf("questions did not survive the round trip: %+v", got.Questions)
	}
}

func TestMemoryStorePutOverwrites(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	first := &model.LiveSession{ID: uuid.New(), JoinCode: "AAAAAA"}
	second := &model.LiveSession{ID: uuid.New(), JoinCode: "BBBBBB"}

	if err := st.Put(ctx, first); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := st.Put(ctx, second); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := st.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.JoinCode != "BBBBBB" {
		t.Errorf("got code %q, want latest %q", got.JoinCode, "BBBBBB")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.Delete(ctx); err != nil {
		t.Fatalf("Delete on empty store: %v", err)
	}

	if err := st.Put(ctx, &model.LiveSession{ID: uuid.New()}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := st.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: got %v, want ErrNotFound", err)
	}
}
