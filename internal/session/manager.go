// Package session manages the server-side session records behind the sid
// cookie.
package session

import (
	"context"
	"errors"
	"time"

	domain "career-compass/internal/domain/session"
	"career-compass/internal/storage"

	"github.com/google/uuid"
)

// TTL bounds both the server-side record and the cookie max age.
const TTL = 24 * time.Hour

var ErrNoSession = errors.New("no active session")

type Manager struct {
	store storage.Store
	now   func() time.Time
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Create issues a fresh opaque session id for the user and persists it.
func (m *Manager) Create(ctx context.Context, userID int64) (domain.Session, error) {
	sess := domain.Session{
		SID:       uuid.NewString(),
		UserID:    userID,
		ExpiresAt: m.now().Add(TTL).UTC(),
	}
	if err := m.store.CreateSession(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// Resolve maps a session id to the owning user id. Expired records are
// deleted on sight and reported as ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, sid string) (int64, error) {
	if sid == "" {
		return 0, ErrNoSession
	}

	sess, err := m.store.GetSession(ctx, sid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, ErrNoSession
		}
		return 0, err
	}

	if sess.Expired(m.now()) {
		_ = m.store.DeleteSession(ctx, sid)
		return 0, ErrNoSession
	}

	return sess.UserID, nil
}

// Destroy removes the session record. Destroying an absent session is a
// no-op, so logout is idempotent.
func (m *Manager) Destroy(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return m.store.DeleteSession(ctx, sid)
}

// PurgeExpired sweeps expired records; intended for a periodic background
// call.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpiredSessions(ctx, m.now())
}
