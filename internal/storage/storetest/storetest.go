// Package storetest runs one scripted call sequence against any
// storage.Store implementation. Running it against both backends is what
// keeps their observable behavior identical.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-compass/internal/domain/roadmap"
	domsession "career-compass/internal/domain/session"
	"career-compass/internal/domain/user"
	"career-compass/internal/storage"
)

// Factory returns a fresh, empty store for each subtest.
type Factory func(t *testing.T) storage.Store

func Run(t *testing.T, factory Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, factory(t)) })
	t.Run("profiles", func(t *testing.T) { testProfiles(t, factory(t)) })
	t.Run("resumes", func(t *testing.T) { testResumes(t, factory(t)) })
	t.Run("roadmaps", func(t *testing.T) { testRoadmaps(t, factory(t)) })
	t.Run("webinars", func(t *testing.T) { testWebinars(t, factory(t)) })
	t.Run("mentors", func(t *testing.T) { testMentors(t, factory(t)) })
	t.Run("sessions", func(t *testing.T) { testSessions(t, factory(t)) })
}

func newUser(t *testing.T, s storage.Store, username, email string) user.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), storage.NewUser{
		Username:     username,
		Email:        email,
		PasswordHash: "x.y",
		FirstName:    "Test",
		LastName:     "User",
		UserType:     user.TypeStudent,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func testUsers(t *testing.T, s storage.Store) {
	ctx := context.Background()

	if _, err := s.GetUser(ctx, 42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	alice := newUser(t, s, "alice", "alice@example.com")
	if alice.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if alice.CreatedAt.IsZero() {
		t.Fatalf("expected server-generated createdAt")
	}

	bob := newUser(t, s, "bob", "bob@example.com")
	if bob.ID <= alice.ID {
		t.Fatalf("expected monotonic ids, got %d after %d", bob.ID, alice.ID)
	}

	// Username and email are unique.
	if _, err := s.CreateUser(ctx, storage.NewUser{
		Username:     "alice",
		Email:        "fresh@example.com",
		PasswordHash: "x.y",
		UserType:     user.TypeStudent,
	}); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate username, got %v", err)
	}
	if _, err := s.CreateUser(ctx, storage.NewUser{
		Username:     "fresh",
		Email:        "alice@example.com",
		PasswordHash: "x.y",
		UserType:     user.TypeStudent,
	}); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}

	got, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != alice.ID || got.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := s.GetUserByEmail(ctx, "bob@example.com"); err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if _, err := s.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	bio := "Career switcher"
	updated, err := s.UpdateUser(ctx, alice.ID, storage.UserPatch{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Bio != bio {
		t.Fatalf("expected patched bio, got %q", updated.Bio)
	}
	if updated.Username != "alice" || updated.Email != "alice@example.com" {
		t.Fatalf("patch must not clear untouched fields: %+v", updated)
	}

	if _, err := s.UpdateUser(ctx, 9999, storage.UserPatch{Bio: &bio}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	counts, err := s.CountUsersByType(ctx)
	if err != nil {
		t.Fatalf("CountUsersByType: %v", err)
	}
	if counts[user.TypeStudent] != 2 {
		t.Fatalf("expected 2 students, got %d", counts[user.TypeStudent])
	}
}

func testProfiles(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := newUser(t, s, "carol", "carol@example.com")

	if _, err := s.GetProfileByUserID(ctx, owner.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	p, err := s.CreateProfile(ctx, storage.NewProfile{
		UserID:     owner.ID,
		Skills:     []string{"Go", "SQL"},
		Completion: 20,
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if p.ID == 0 || p.UserID != owner.ID {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if len(p.Education) != 0 {
		t.Fatalf("expected empty education, got %v", p.Education)
	}

	// One profile per user.
	if _, err := s.CreateProfile(ctx, storage.NewProfile{UserID: owner.ID}); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict for second profile, got %v", err)
	}

	goals := []string{"Staff engineer"}
	completion := 40
	updated, err := s.UpdateProfile(ctx, p.ID, storage.ProfilePatch{
		CareerGoals: &goals,
		Completion:  &completion,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if len(updated.CareerGoals) != 1 || updated.CompletionPercentage != 40 {
		t.Fatalf("unexpected patched profile: %+v", updated)
	}
	if len(updated.Skills) != 2 {
		t.Fatalf("patch must not clear untouched sections: %+v", updated)
	}

	if _, err := s.UpdateProfile(ctx, 9999, storage.ProfilePatch{Completion: &completion}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testResumes(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := newUser(t, s, "dave", "dave@example.com")

	if _, err := s.GetResumeByUserID(ctx, owner.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	r, err := s.CreateResume(ctx, storage.NewResume{UserID: owner.ID, Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("CreateResume: %v", err)
	}
	if r.Score != 0 {
		t.Fatalf("expected default score 0, got %d", r.Score)
	}
	if r.ImprovementSuggestions == nil || len(r.ImprovementSuggestions) != 0 {
		t.Fatalf("expected empty suggestions, got %v", r.ImprovementSuggestions)
	}
	if r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
		t.Fatalf("expected server-generated timestamps")
	}

	score := 55
	suggestions := []string{"List your key skills"}
	updated, err := s.UpdateResume(ctx, r.ID, storage.ResumePatch{Score: &score, Suggestions: &suggestions})
	if err != nil {
		t.Fatalf("UpdateResume: %v", err)
	}
	if updated.Score != 55 || len(updated.ImprovementSuggestions) != 1 {
		t.Fatalf("unexpected patched resume: %+v", updated)
	}
	if updated.Title != "Backend Engineer" {
		t.Fatalf("patch must not clear title: %+v", updated)
	}

	got, err := s.GetResumeByUserID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetResumeByUserID: %v", err)
	}
	if got.ID != r.ID {
		t.Fatalf("expected resume %d, got %d", r.ID, got.ID)
	}
}

func testRoadmaps(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := newUser(t, s, "erin", "erin@example.com")

	if _, err := s.GetRoadmapByUserID(ctx, owner.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	r, err := s.CreateRoadmap(ctx, storage.NewRoadmap{
		UserID: owner.ID,
		Milestones: []roadmap.Milestone{
			{ID: 1, Title: "Learn Go", Status: roadmap.StatusInProgress},
			{ID: 2, Title: "Build a project", Status: roadmap.StatusLocked},
		},
		CurrentMilestone: 1,
	})
	if err != nil {
		t.Fatalf("CreateRoadmap: %v", err)
	}
	if r.ID == 0 || len(r.Milestones) != 2 {
		t.Fatalf("unexpected roadmap: %+v", r)
	}

	current := int64(2)
	milestones := []roadmap.Milestone{
		{ID: 1, Title: "Learn Go", Status: roadmap.StatusCompleted},
		{ID: 2, Title: "Build a project", Status: roadmap.StatusInProgress},
	}
	updated, err := s.UpdateRoadmap(ctx, r.ID, storage.RoadmapPatch{
		Milestones:       &milestones,
		CurrentMilestone: &current,
	})
	if err != nil {
		t.Fatalf("UpdateRoadmap: %v", err)
	}
	if updated.CurrentMilestone != 2 || updated.Milestones[0].Status != roadmap.StatusCompleted {
		t.Fatalf("unexpected patched roadmap: %+v", updated)
	}

	got, err := s.GetRoadmapByUserID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetRoadmapByUserID: %v", err)
	}
	if got.ID != r.ID {
		t.Fatalf("expected roadmap %d, got %d", r.ID, got.ID)
	}
}

func testWebinars(t *testing.T, s storage.Store) {
	ctx := context.Background()
	attendee := newUser(t, s, "frank", "frank@example.com")

	// Registering against a missing webinar is a clean false, no error.
	ok, err := s.RegisterForWebinar(ctx, 42, attendee.ID)
	if err != nil {
		t.Fatalf("RegisterForWebinar: %v", err)
	}
	if ok {
		t.Fatalf("expected false for missing webinar")
	}

	w, err := s.CreateWebinar(ctx, storage.NewWebinar{
		Title:       "Breaking into Tech",
		SpeakerName: "Grace",
		Date:        time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateWebinar: %v", err)
	}
	if len(w.RegisteredUsers) != 0 {
		t.Fatalf("expected fresh webinar with no attendees")
	}

	ok, err = s.RegisterForWebinar(ctx, w.ID, attendee.ID)
	if err != nil || !ok {
		t.Fatalf("expected first registration to succeed, ok=%v err=%v", ok, err)
	}

	ok, err = s.RegisterForWebinar(ctx, w.ID, attendee.ID)
	if err != nil {
		t.Fatalf("RegisterForWebinar: %v", err)
	}
	if ok {
		t.Fatalf("expected duplicate registration to report false")
	}

	got, err := s.GetWebinar(ctx, w.ID)
	if err != nil {
		t.Fatalf("GetWebinar: %v", err)
	}
	count := 0
	for _, id := range got.RegisteredUsers {
		if id == attendee.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one registration, got %d in %v", count, got.RegisteredUsers)
	}

	list, err := s.ListWebinars(ctx)
	if err != nil {
		t.Fatalf("ListWebinars: %v", err)
	}
	if len(list) != 1 || list[0].ID != w.ID {
		t.Fatalf("unexpected listing: %+v", list)
	}
}

func testMentors(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := newUser(t, s, "heidi", "heidi@example.com")

	if _, err := s.GetMentorByUserID(ctx, owner.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	m, err := s.CreateMentor(ctx, storage.NewMentor{
		UserID:         owner.ID,
		Company:        "Acme",
		Position:       "Principal Engineer",
		Specialization: []string{"backend"},
		Availability:   map[string][]string{"monday": {"09:00-11:00"}},
	})
	if err != nil {
		t.Fatalf("CreateMentor: %v", err)
	}
	if m.Verified {
		t.Fatalf("new mentor must start unverified")
	}

	// One mentor profile per user.
	if _, err := s.CreateMentor(ctx, storage.NewMentor{UserID: owner.ID}); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Unverified mentors are excluded from the public listing.
	list, err := s.ListVerifiedMentors(ctx)
	if err != nil {
		t.Fatalf("ListVerifiedMentors: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty verified listing, got %+v", list)
	}

	verified := true
	if _, err := s.UpdateMentor(ctx, m.ID, storage.MentorPatch{Verified: &verified}); err != nil {
		t.Fatalf("UpdateMentor: %v", err)
	}

	list, err = s.ListVerifiedMentors(ctx)
	if err != nil {
		t.Fatalf("ListVerifiedMentors: %v", err)
	}
	if len(list) != 1 || list[0].UserID != owner.ID {
		t.Fatalf("unexpected verified listing: %+v", list)
	}
	if len(list[0].Availability["monday"]) != 1 {
		t.Fatalf("availability did not round-trip: %+v", list[0].Availability)
	}
}

func testSessions(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := newUser(t, s, "ivan", "ivan@example.com")

	if _, err := s.GetSession(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	sess := domsession.Session{
		SID:       "sid-1",
		UserID:    owner.ID,
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSession(ctx, "sid-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.UserID != owner.ID {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := s.DeleteSession(ctx, "sid-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSession(ctx, "sid-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent session is a no-op.
	if err := s.DeleteSession(ctx, "sid-1"); err != nil {
		t.Fatalf("DeleteSession should be idempotent: %v", err)
	}

	expired := domsession.Session{
		SID:       "sid-2",
		UserID:    owner.ID,
		ExpiresAt: time.Now().Add(-time.Hour).UTC(),
	}
	if err := s.CreateSession(ctx, expired); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	n, err := s.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged session, got %d", n)
	}
}
