package resume

import (
	"context"
	"errors"
	"testing"

	domain "career-compass/internal/domain/resume"
	"career-compass/internal/storage/memory"
)

func fullContent() domain.Content {
	return domain.Content{
		PersonalInfo: domain.PersonalInfo{FullName: "Alice Anderson", Email: "alice@example.com"},
		Objective:    "Become a backend engineer",
		Education:    []string{"BSc Computer Science"},
		Experience:   []string{"Intern at Acme"},
		Skills:       []string{"Go", "PostgreSQL"},
		Certifications: []string{
			"CKA",
		},
		Projects: []string{"career-compass"},
		Awards:   []string{"Dean's list"},
	}
}

func TestScore(t *testing.T) {
	score, suggestions := Score(domain.Content{})
	if score != 0 {
		t.Fatalf("empty content scores 0, got %d", score)
	}
	if len(suggestions) != 8 {
		t.Fatalf("empty content yields all suggestions, got %v", suggestions)
	}

	score, suggestions = Score(fullContent())
	if score != 100 {
		t.Fatalf("full content scores 100, got %d", score)
	}
	if len(suggestions) != 0 {
		t.Fatalf("full content yields no suggestions, got %v", suggestions)
	}

	partial := fullContent()
	partial.Experience = nil
	partial.Awards = nil
	score, suggestions = Score(partial)
	if score != 70 {
		t.Fatalf("expected 70, got %d", score)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", suggestions)
	}
	if suggestions[0] != "Add at least one work experience entry" {
		t.Fatalf("unexpected first suggestion: %q", suggestions[0])
	}
}

func TestScoreIgnoresWhitespaceOnlyFields(t *testing.T) {
	c := domain.Content{
		PersonalInfo: domain.PersonalInfo{FullName: "  ", Email: "a@b.c"},
		Objective:    "   ",
	}
	score, _ := Score(c)
	if score != 0 {
		t.Fatalf("whitespace-only fields must not score, got %d", score)
	}
}

func TestCreateScoresResume(t *testing.T) {
	svc := NewService(memory.NewStore())
	ctx := context.Background()

	r, err := svc.Create(ctx, 1, "Backend Engineer", fullContent())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Score != 100 {
		t.Fatalf("expected stored score 100, got %d", r.Score)
	}
	if len(r.ImprovementSuggestions) != 0 {
		t.Fatalf("expected no suggestions, got %v", r.ImprovementSuggestions)
	}

	if _, err := svc.Create(ctx, 2, "   ", domain.Content{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
}

func TestUpdateRescores(t *testing.T) {
	svc := NewService(memory.NewStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, "Backend Engineer", domain.Content{}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	content := fullContent()
	content.Certifications = nil
	r, err := svc.Update(ctx, 1, nil, &content)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if r.Score != 90 {
		t.Fatalf("expected rescored 90, got %d", r.Score)
	}
	if r.Title != "Backend Engineer" {
		t.Fatalf("nil title must leave the title alone, got %q", r.Title)
	}

	if _, err := svc.Update(ctx, 99, nil, &content); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
