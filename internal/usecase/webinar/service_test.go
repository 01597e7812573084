package webinar

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-compass/internal/storage"
	"career-compass/internal/storage/memory"
)

func TestCreateValidation(t *testing.T) {
	svc := NewService(memory.NewStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, storage.NewWebinar{Title: "  ", Date: time.Now()}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
	if _, err := svc.Create(ctx, storage.NewWebinar{Title: "Intro"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero date, got %v", err)
	}
	if _, err := svc.Create(ctx, storage.NewWebinar{
		Title: "Intro",
		Date:  time.Now().Add(-72 * time.Hour),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for past date, got %v", err)
	}

	w, err := svc.Create(ctx, storage.NewWebinar{
		Title:       "Intro to Go careers",
		SpeakerName: "Grace",
		Date:        time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestRegister(t *testing.T) {
	svc := NewService(memory.NewStore())
	ctx := context.Background()

	w, err := svc.Create(ctx, storage.NewWebinar{
		Title: "Mock interviews",
		Date:  time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Register(ctx, w.ID, 5)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !got.Registered(5) {
		t.Fatalf("expected user 5 in attendee list: %v", got.RegisteredUsers)
	}

	if _, err := svc.Register(ctx, w.ID, 5); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if _, err := svc.Register(ctx, 999, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
