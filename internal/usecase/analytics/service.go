package analytics

import (
	"context"
	"errors"
	"time"

	"career-compass/internal/domain/user"
	"career-compass/internal/storage"
)

var ErrInternal = errors.New("internal error")

const (
	cacheKey = "analytics:overview"
	cacheTTL = 5 * time.Minute
)

// Cache is the subset of the redis client the overview needs; a nil cache
// disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Overview struct {
	TotalUsers           int64               `json:"totalUsers"`
	UsersByType          map[user.Type]int64 `json:"usersByType"`
	TotalWebinars        int                 `json:"totalWebinars"`
	WebinarRegistrations int                 `json:"webinarRegistrations"`
	VerifiedMentors      int                 `json:"verifiedMentors"`
	GeneratedAt          time.Time           `json:"generatedAt"`
}

type Service struct {
	store storage.Store
	cache Cache
}

func NewService(store storage.Store, cache Cache) *Service {
	return &Service{store: store, cache: cache}
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	if s.cache != nil {
		var cached Overview
		if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	byType, err := s.store.CountUsersByType(ctx)
	if err != nil {
		return Overview{}, ErrInternal
	}
	var total int64
	for _, n := range byType {
		total += n
	}

	webinars, err := s.store.ListWebinars(ctx)
	if err != nil {
		return Overview{}, ErrInternal
	}
	registrations := 0
	for _, w := range webinars {
		registrations += len(w.RegisteredUsers)
	}

	mentors, err := s.store.ListVerifiedMentors(ctx)
	if err != nil {
		return Overview{}, ErrInternal
	}

	out := Overview{
		TotalUsers:           total,
		UsersByType:          byType,
		TotalWebinars:        len(webinars),
		WebinarRegistrations: registrations,
		VerifiedMentors:      len(mentors),
		GeneratedAt:          time.Now().UTC(),
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, out, cacheTTL)
	}

	return out, nil
}
