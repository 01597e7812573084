package webinar

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "career-compass/internal/domain/webinar"
	"career-compass/internal/storage"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("webinar not found")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrInternal          = errors.New("internal error")
)

type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]domain.Webinar, error) {
	out, err := s.store.ListWebinars(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, in storage.NewWebinar) (domain.Webinar, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.Date.IsZero() {
		return domain.Webinar{}, ErrInvalidInput
	}
	if in.Date.Before(time.Now().Add(-24 * time.Hour)) {
		return domain.Webinar{}, ErrInvalidInput
	}

	w, err := s.store.CreateWebinar(ctx, in)
	if err != nil {
		return domain.Webinar{}, ErrInternal
	}
	return w, nil
}

// Register adds the user to the attendee list. A second registration for
// the same user is a conflict, never a duplicate row.
func (s *Service) Register(ctx context.Context, webinarID, userID int64) (domain.Webinar, error) {
	ok, err := s.store.RegisterForWebinar(ctx, webinarID, userID)
	if err != nil {
		return domain.Webinar{}, ErrInternal
	}
	if !ok {
		// Distinguish "missing webinar" from "already registered".
		if _, err := s.store.GetWebinar(ctx, webinarID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return domain.Webinar{}, ErrNotFound
			}
			return domain.Webinar{}, ErrInternal
		}
		return domain.Webinar{}, ErrAlreadyRegistered
	}

	w, err := s.store.GetWebinar(ctx, webinarID)
	if err != nil {
		return domain.Webinar{}, ErrInternal
	}
	return w, nil
}
