package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"career-compass/internal/domain/mentor"
	"career-compass/internal/storage"

	"github.com/jackc/pgx/v5"
)

const mentorColumns = `id, user_id, company, position, specialization, availability, verified`

func (s *Store) CreateMentor(ctx context.Context, in storage.NewMentor) (mentor.Mentor, error) {
	specialization, err := stringsArg(&in.Specialization)
	if err != nil {
		return mentor.Mentor{}, err
	}
	availability := in.Availability
	if availability == nil {
		availability = map[string][]string{}
	}
	availB, err := marshalJSON(availability)
	if err != nil {
		return mentor.Mentor{}, err
	}

	row := s.db.QueryRow(ctx,
		`INSERT INTO mentors (user_id, company, position, specialization, availability)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+mentorColumns,
		in.UserID, in.Company, in.Position, specialization, availB)

	m, err := scanMentor(row)
	if err != nil {
		if isUniqueViolation(err) {
			return mentor.Mentor{}, storage.ErrConflict
		}
		return mentor.Mentor{}, err
	}
	return m, nil
}

func (s *Store) GetMentorByUserID(ctx context.Context, userID int64) (mentor.Mentor, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+mentorColumns+` FROM mentors WHERE user_id = $1`, userID)
	return scanMentor(row)
}

func (s *Store) ListVerifiedMentors(ctx context.Context) ([]mentor.Mentor, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+mentorColumns+` FROM mentors WHERE verified = true ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]mentor.Mentor, 0)
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) UpdateMentor(ctx context.Context, id int64, patch storage.MentorPatch) (mentor.Mentor, error) {
	specialization, err := stringsArg(patch.Specialization)
	if err != nil {
		return mentor.Mentor{}, err
	}
	var availability any
	if patch.Availability != nil {
		av := *patch.Availability
		if av == nil {
			av = map[string][]string{}
		}
		b, err := marshalJSON(av)
		if err != nil {
			return mentor.Mentor{}, err
		}
		availability = b
	}

	row := s.db.QueryRow(ctx,
		`UPDATE mentors SET
			company = COALESCE($2, company),
			position = COALESCE($3, position),
			specialization = COALESCE($4, specialization),
			availability = COALESCE($5, availability),
			verified = COALESCE($6, verified)
		 WHERE id = $1
		 RETURNING `+mentorColumns,
		id, patch.Company, patch.Position, specialization, availability, patch.Verified)
	return scanMentor(row)
}

func scanMentor(row scannable) (mentor.Mentor, error) {
	var (
		m              mentor.Mentor
		specialization []byte
		availability   []byte
	)
	err := row.Scan(&m.ID, &m.UserID, &m.Company, &m.Position, &specialization, &availability, &m.Verified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mentor.Mentor{}, storage.ErrNotFound
		}
		return mentor.Mentor{}, err
	}

	if err := unmarshalStrings(specialization, &m.Specialization); err != nil {
		return mentor.Mentor{}, err
	}
	m.Availability = map[string][]string{}
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &m.Availability); err != nil {
			return mentor.Mentor{}, err
		}
	}
	return m, nil
}
