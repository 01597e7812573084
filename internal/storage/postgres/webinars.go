package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"career-compass/internal/domain/webinar"
	"career-compass/internal/storage"

	"github.com/jackc/pgx/v5"
)

const webinarColumns = `id, title, description, speaker_name, speaker_title, date, registered_users`

func (s *Store) ListWebinars(ctx context.Context) ([]webinar.Webinar, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+webinarColumns+` FROM webinars ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]webinar.Webinar, 0)
	for rows.Next() {
		w, err := scanWebinar(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) GetWebinar(ctx context.Context, id int64) (webinar.Webinar, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+webinarColumns+` FROM webinars WHERE id = $1`, id)
	return scanWebinar(row)
}

func (s *Store) CreateWebinar(ctx context.Context, in storage.NewWebinar) (webinar.Webinar, error) {
	row := s.db.QueryRow(ctx,
		`INSERT INTO webinars (title, description, speaker_name, speaker_title, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+webinarColumns,
		in.Title, in.Description, in.SpeakerName, in.SpeakerTitle, in.Date.UTC())
	return scanWebinar(row)
}

// RegisterForWebinar appends the user in a single conditional update, so the
// membership check and the write cannot interleave with a concurrent
// duplicate attempt.
func (s *Store) RegisterForWebinar(ctx context.Context, webinarID, userID int64) (bool, error) {
	affected, err := s.db.Exec(ctx,
		`UPDATE webinars
		 SET registered_users = registered_users || to_jsonb($2::bigint)
		 WHERE id = $1 AND NOT registered_users @> to_jsonb($2::bigint)`,
		webinarID, userID)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func scanWebinar(row scannable) (webinar.Webinar, error) {
	var (
		w          webinar.Webinar
		registered []byte
	)
	err := row.Scan(&w.ID, &w.Title, &w.Description, &w.SpeakerName, &w.SpeakerTitle, &w.Date, &registered)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return webinar.Webinar{}, storage.ErrNotFound
		}
		return webinar.Webinar{}, err
	}

	w.RegisteredUsers = []int64{}
	if len(registered) > 0 {
		if err := json.Unmarshal(registered, &w.RegisteredUsers); err != nil {
			return webinar.Webinar{}, err
		}
	}
	return w, nil
}
