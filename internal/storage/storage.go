package storage

import (
	"context"
	"errors"
	"time"

	"career-compass/internal/domain/mentor"
	"career-compass/internal/domain/resume"
	"career-compass/internal/domain/roadmap"
	"career-compass/internal/domain/session"
	"career-compass/internal/domain/user"
	"career-compass/internal/domain/webinar"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Store is the data-access contract shared by the in-memory and postgres
// backends. Both must produce identical observable results for the same
// sequence of calls. Lookups that miss return ErrNotFound; the memory
// backend has no other failure mode, the postgres backend also surfaces
// transport and query errors.
type Store interface {
	GetUser(ctx context.Context, id int64) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)

	// CreateUser fails with ErrConflict when the username or email is
	// already taken.
	CreateUser(ctx context.Context, in NewUser) (user.User, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (user.User, error)

	GetProfileByUserID(ctx context.Context, userID int64) (user.Profile, error)

	// CreateProfile enforces one profile per user: a second create for the
	// same user fails with ErrConflict.
	CreateProfile(ctx context.Context, in NewProfile) (user.Profile, error)
	UpdateProfile(ctx context.Context, id int64, patch ProfilePatch) (user.Profile, error)

	GetResumeByUserID(ctx context.Context, userID int64) (resume.Resume, error)
	CreateResume(ctx context.Context, in NewResume) (resume.Resume, error)
	UpdateResume(ctx context.Context, id int64, patch ResumePatch) (resume.Resume, error)

	GetRoadmapByUserID(ctx context.Context, userID int64) (roadmap.Roadmap, error)
	CreateRoadmap(ctx context.Context, in NewRoadmap) (roadmap.Roadmap, error)
	UpdateRoadmap(ctx context.Context, id int64, patch RoadmapPatch) (roadmap.Roadmap, error)

	ListWebinars(ctx context.Context) ([]webinar.Webinar, error)
	GetWebinar(ctx context.Context, id int64) (webinar.Webinar, error)
	CreateWebinar(ctx context.Context, in NewWebinar) (webinar.Webinar, error)

	// RegisterForWebinar appends userID to the webinar's attendee list with
	// set semantics. It returns false when the webinar is missing or the
	// user is already registered; duplicate calls leave the list unchanged.
	RegisterForWebinar(ctx context.Context, webinarID, userID int64) (bool, error)

	// CreateMentor enforces one mentor profile per user: a second create
	// for the same user fails with ErrConflict.
	CreateMentor(ctx context.Context, in NewMentor) (mentor.Mentor, error)
	GetMentorByUserID(ctx context.Context, userID int64) (mentor.Mentor, error)
	ListVerifiedMentors(ctx context.Context) ([]mentor.Mentor, error)
	UpdateMentor(ctx context.Context, id int64, patch MentorPatch) (mentor.Mentor, error)

	CreateSession(ctx context.Context, s session.Session) error
	GetSession(ctx context.Context, sid string) (session.Session, error)
	DeleteSession(ctx context.Context, sid string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	CountUsersByType(ctx context.Context) (map[user.Type]int64, error)

	Close() error
}

type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	UserType     user.Type
	Phone        string
	Bio          string
}

type UserPatch struct {
	Email        *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	UserType     *user.Type
	Phone        *string
	Bio          *string
}

type NewProfile struct {
	UserID       int64
	Education    []string
	Skills       []string
	CareerGoals  []string
	Achievements []string
	Experience   []string
	Completion   int
}

type ProfilePatch struct {
	Education    *[]string
	Skills       *[]string
	CareerGoals  *[]string
	Achievements *[]string
	Experience   *[]string
	Completion   *int
}

type NewResume struct {
	UserID  int64
	Title   string
	Content resume.Content
}

type ResumePatch struct {
	Title       *string
	Content     *resume.Content
	Score       *int
	Suggestions *[]string
}

type NewRoadmap struct {
	UserID           int64
	Milestones       []roadmap.Milestone
	CurrentMilestone int64
}

type RoadmapPatch struct {
	Milestones       *[]roadmap.Milestone
	CurrentMilestone *int64
}

type NewWebinar struct {
	Title        string
	Description  string
	SpeakerName  string
	SpeakerTitle string
	Date         time.Time
}

type NewMentor struct {
	UserID         int64
	Company        string
	Position       string
	Specialization []string
	Availability   map[string][]string
}

type MentorPatch struct {
	Company        *string
	Position       *string
	Specialization *[]string
	Availability   *map[string][]string
	Verified       *bool
}
