package session

import "time"

// Session is a server-side record binding an opaque id to a user.
type Session struct {
	SID       string    `json:"sid"`
	UserID    int64     `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
