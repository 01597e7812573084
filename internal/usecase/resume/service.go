package resume

import (
	"context"
	"errors"
	"strings"

	domain "career-compass/internal/domain/resume"
	"career-compass/internal/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resume not found")
	ErrInternal     = errors.New("internal error")
)

type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, userID int64) (domain.Resume, error) {
	r, err := s.store.GetResumeByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Resume{}, ErrNotFound
		}
		return domain.Resume{}, ErrInternal
	}
	return r, nil
}

func (s *Service) Create(ctx context.Context, userID int64, title string, content domain.Content) (domain.Resume, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Resume{}, ErrInvalidInput
	}

	r, err := s.store.CreateResume(ctx, storage.NewResume{
		UserID:  userID,
		Title:   title,
		Content: content,
	})
	if err != nil {
		return domain.Resume{}, ErrInternal
	}

	return s.rescore(ctx, r)
}

func (s *Service) Update(ctx context.Context, userID int64, title *string, content *domain.Content) (domain.Resume, error) {
	existing, err := s.store.GetResumeByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Resume{}, ErrNotFound
		}
		return domain.Resume{}, ErrInternal
	}

	if title != nil && strings.TrimSpace(*title) == "" {
		return domain.Resume{}, ErrInvalidInput
	}

	r, err := s.store.UpdateResume(ctx, existing.ID, storage.ResumePatch{
		Title:   title,
		Content: content,
	})
	if err != nil {
		return domain.Resume{}, ErrInternal
	}

	return s.rescore(ctx, r)
}

func (s *Service) rescore(ctx context.Context, r domain.Resume) (domain.Resume, error) {
	score, suggestions := Score(r.Content)
	updated, err := s.store.UpdateResume(ctx, r.ID, storage.ResumePatch{
		Score:       &score,
		Suggestions: &suggestions,
	})
	if err != nil {
		return domain.Resume{}, ErrInternal
	}
	return updated, nil
}

type scoreRule struct {
	points     int
	filled     func(domain.Content) bool
	suggestion string
}

var scoreRules = []scoreRule{
	{10, func(c domain.Content) bool {
		return strings.TrimSpace(c.PersonalInfo.FullName) != "" && strings.TrimSpace(c.PersonalInfo.Email) != ""
	}, "Complete your personal information"},
	{10, func(c domain.Content) bool { return strings.TrimSpace(c.Objective) != "" }, "Write a career objective"},
	{15, func(c domain.Content) bool { return len(c.Education) > 0 }, "Add your education history"},
	{25, func(c domain.Content) bool { return len(c.Experience) > 0 }, "Add at least one work experience entry"},
	{15, func(c domain.Content) bool { return len(c.Skills) > 0 }, "List your key skills"},
	{10, func(c domain.Content) bool { return len(c.Certifications) > 0 }, "Add certifications to stand out"},
	{10, func(c domain.Content) bool { return len(c.Projects) > 0 }, "Showcase projects you have worked on"},
	{5, func(c domain.Content) bool { return len(c.Awards) > 0 }, "Mention awards and honors"},
}

// Score rates the resume out of 100 and suggests the sections still worth
// filling in.
func Score(c domain.Content) (int, []string) {
	score := 0
	suggestions := []string{}
	for _, rule := range scoreRules {
		if rule.filled(c) {
			score += rule.points
			continue
		}
		suggestions = append(suggestions, rule.suggestion)
	}
	return score, suggestions
}
