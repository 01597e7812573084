package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"career-compass/internal/domain/resume"
	"career-compass/internal/storage"

	"github.com/jackc/pgx/v5"
)

const resumeColumns = `id, user_id, title, content, created_at, updated_at, score, improvement_suggestions`

func (s *Store) GetResumeByUserID(ctx context.Context, userID int64) (resume.Resume, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY id ASC LIMIT 1`, userID)
	return scanResume(row)
}

func (s *Store) CreateResume(ctx context.Context, in storage.NewResume) (resume.Resume, error) {
	content, err := marshalJSON(in.Content)
	if err != nil {
		return resume.Resume{}, err
	}

	row := s.db.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING `+resumeColumns,
		in.UserID, in.Title, content)
	return scanResume(row)
}

func (s *Store) UpdateResume(ctx context.Context, id int64, patch storage.ResumePatch) (resume.Resume, error) {
	var content any
	if patch.Content != nil {
		b, err := marshalJSON(*patch.Content)
		if err != nil {
			return resume.Resume{}, err
		}
		content = b
	}
	suggestions, err := stringsArg(patch.Suggestions)
	if err != nil {
		return resume.Resume{}, err
	}

	row := s.db.QueryRow(ctx,
		`UPDATE resumes SET
			title = COALESCE($2, title),
			content = COALESCE($3, content),
			score = COALESCE($4, score),
			improvement_suggestions = COALESCE($5, improvement_suggestions),
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+resumeColumns,
		id, patch.Title, content, patch.Score, suggestions)
	return scanResume(row)
}

func scanResume(row scannable) (resume.Resume, error) {
	var (
		r           resume.Resume
		content     []byte
		suggestions []byte
	)
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &content, &r.CreatedAt, &r.UpdatedAt, &r.Score, &suggestions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, storage.ErrNotFound
		}
		return resume.Resume{}, err
	}

	if len(content) > 0 {
		if err := json.Unmarshal(content, &r.Content); err != nil {
			return resume.Resume{}, err
		}
	}
	if err := unmarshalStrings(suggestions, &r.ImprovementSuggestions); err != nil {
		return resume.Resume{}, err
	}
	return r, nil
}
