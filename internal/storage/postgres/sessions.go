package postgres

import (
	"context"
	"errors"
	"time"

	"career-compass/internal/domain/session"
	"career-compass/internal/storage"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateSession(ctx context.Context, sess session.Session) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO session (sid, user_id, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (sid) DO UPDATE SET user_id = $2, expires_at = $3`,
		sess.SID, sess.UserID, sess.ExpiresAt.UTC())
	return err
}

func (s *Store) GetSession(ctx context.Context, sid string) (session.Session, error) {
	var sess session.Session
	err := s.db.QueryRow(ctx,
		`SELECT sid, user_id, expires_at FROM session WHERE sid = $1`, sid).
		Scan(&sess.SID, &sess.UserID, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, storage.ErrNotFound
		}
		return session.Session{}, err
	}
	return sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, sid string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM session WHERE sid = $1`, sid)
	return err
}

func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return s.db.Exec(ctx, `DELETE FROM session WHERE expires_at <= $1`, now.UTC())
}
