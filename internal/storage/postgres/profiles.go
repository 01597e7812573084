package postgres

import (
	"context"
	"errors"

	"career-compass/internal/domain/user"
	"career-compass/internal/storage"

	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, user_id, education, skills, career_goals, achievements, experience, completion_percentage`

func (s *Store) GetProfileByUserID(ctx context.Context, userID int64) (user.Profile, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

func (s *Store) CreateProfile(ctx context.Context, in storage.NewProfile) (user.Profile, error) {
	education, err := stringsArg(&in.Education)
	if err != nil {
		return user.Profile{}, err
	}
	skills, err := stringsArg(&in.Skills)
	if err != nil {
		return user.Profile{}, err
	}
	goals, err := stringsArg(&in.CareerGoals)
	if err != nil {
		return user.Profile{}, err
	}
	achievements, err := stringsArg(&in.Achievements)
	if err != nil {
		return user.Profile{}, err
	}
	experience, err := stringsArg(&in.Experience)
	if err != nil {
		return user.Profile{}, err
	}

	row := s.db.QueryRow(ctx,
		`INSERT INTO profiles (user_id, education, skills, career_goals, achievements, experience, completion_percentage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+profileColumns,
		in.UserID, education, skills, goals, achievements, experience, in.Completion)

	p, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return user.Profile{}, storage.ErrConflict
		}
		return user.Profile{}, err
	}
	return p, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id int64, patch storage.ProfilePatch) (user.Profile, error) {
	education, err := stringsArg(patch.Education)
	if err != nil {
		return user.Profile{}, err
	}
	skills, err := stringsArg(patch.Skills)
	if err != nil {
		return user.Profile{}, err
	}
	goals, err := stringsArg(patch.CareerGoals)
	if err != nil {
		return user.Profile{}, err
	}
	achievements, err := stringsArg(patch.Achievements)
	if err != nil {
		return user.Profile{}, err
	}
	experience, err := stringsArg(patch.Experience)
	if err != nil {
		return user.Profile{}, err
	}

	row := s.db.QueryRow(ctx,
		`UPDATE profiles SET
			education = COALESCE($2, education),
			skills = COALESCE($3, skills),
			career_goals = COALESCE($4, career_goals),
			achievements = COALESCE($5, achievements),
			experience = COALESCE($6, experience),
			completion_percentage = COALESCE($7, completion_percentage)
		 WHERE id = $1
		 RETURNING `+profileColumns,
		id, education, skills, goals, achievements, experience, patch.Completion)
	return scanProfile(row)
}

func scanProfile(row scannable) (user.Profile, error) {
	var (
		p            user.Profile
		education    []byte
		skills       []byte
		goals        []byte
		achievements []byte
		experience   []byte
	)
	err := row.Scan(&p.ID, &p.UserID, &education, &skills, &goals, &achievements, &experience, &p.CompletionPercentage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, storage.ErrNotFound
		}
		return user.Profile{}, err
	}

	for _, f := range []struct {
		raw []byte
		out *[]string
	}{
		{education, &p.Education},
		{skills, &p.Skills},
		{goals, &p.CareerGoals},
		{achievements, &p.Achievements},
		{experience, &p.Experience},
	} {
		if err := unmarshalStrings(f.raw, f.out); err != nil {
			return user.Profile{}, err
		}
	}
	return p, nil
}
