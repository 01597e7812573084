// Package memory implements storage.Store with in-process maps. It is the
// startup fallback when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"career-compass/internal/domain/mentor"
	"career-compass/internal/domain/resume"
	"career-compass/internal/domain/roadmap"
	"career-compass/internal/domain/session"
	"career-compass/internal/domain/user"
	"career-compass/internal/domain/webinar"
	"career-compass/internal/storage"
)

type Store struct {
	mu sync.RWMutex

	users    map[int64]user.User
	profiles map[int64]user.Profile
	resumes  map[int64]resume.Resume
	roadmaps map[int64]roadmap.Roadmap
	webinars map[int64]webinar.Webinar
	mentors  map[int64]mentor.Mentor
	sessions map[string]session.Session

	// Per-entity counters. IDs are monotonic and never reused.
	userID    int64
	profileID int64
	resumeID  int64
	roadmapID int64
	webinarID int64
	mentorID  int64

	now func() time.Time
}

var _ storage.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]user.User),
		profiles: make(map[int64]user.Profile),
		resumes:  make(map[int64]resume.Resume),
		roadmaps: make(map[int64]roadmap.Roadmap),
		webinars: make(map[int64]webinar.Webinar),
		mentors:  make(map[int64]mentor.Mentor),
		sessions: make(map[string]session.Session),
		now:      time.Now,
	}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) GetUser(_ context.Context, id int64) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, storage.ErrNotFound
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, storage.ErrNotFound
}

func (s *Store) CreateUser(_ context.Context, in storage.NewUser) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == in.Username || u.Email == in.Email {
			return user.User{}, storage.ErrConflict
		}
	}

	s.userID++
	u := user.User{
		ID:           s.userID,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		UserType:     in.UserType,
		Phone:        in.Phone,
		Bio:          in.Bio,
		CreatedAt:    s.now().UTC(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, patch storage.UserPatch) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}

	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.UserType != nil {
		u.UserType = *patch.UserType
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}

	s.users[id] = u
	return u, nil
}

func (s *Store) GetProfileByUserID(_ context.Context, userID int64) (user.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.UserID == userID {
			return cloneProfile(p), nil
		}
	}
	return user.Profile{}, storage.ErrNotFound
}

func (s *Store) CreateProfile(_ context.Context, in storage.NewProfile) (user.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.UserID == in.UserID {
			return user.Profile{}, storage.ErrConflict
		}
	}

	s.profileID++
	p := user.Profile{
		ID:                   s.profileID,
		UserID:               in.UserID,
		Education:            cloneStrings(in.Education),
		Skills:               cloneStrings(in.Skills),
		CareerGoals:          cloneStrings(in.CareerGoals),
		Achievements:         cloneStrings(in.Achievements),
		Experience:           cloneStrings(in.Experience),
		CompletionPercentage: in.Completion,
	}
	s.profiles[p.ID] = p
	return cloneProfile(p), nil
}

func (s *Store) UpdateProfile(_ context.Context, id int64, patch storage.ProfilePatch) (user.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return user.Profile{}, storage.ErrNotFound
	}

	if patch.Education != nil {
		p.Education = cloneStrings(*patch.Education)
	}
	if patch.Skills != nil {
		p.Skills = cloneStrings(*patch.Skills)
	}
	if patch.CareerGoals != nil {
		p.CareerGoals = cloneStrings(*patch.CareerGoals)
	}
	if patch.Achievements != nil {
		p.Achievements = cloneStrings(*patch.Achievements)
	}
	if patch.Experience != nil {
		p.Experience = cloneStrings(*patch.Experience)
	}
	if patch.Completion != nil {
		p.CompletionPercentage = *patch.Completion
	}

	s.profiles[id] = p
	return cloneProfile(p), nil
}

func (s *Store) GetResumeByUserID(_ context.Context, userID int64) (resume.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// First match by id, mirroring the relational backend's ordering.
	var (
		found bool
		best  resume.Resume
	)
	for _, r := range s.resumes {
		if r.UserID != userID {
			continue
		}
		if !found || r.ID < best.ID {
			best = r
			found = true
		}
	}
	if !found {
		return resume.Resume{}, storage.ErrNotFound
	}
	return cloneResume(best), nil
}

func (s *Store) CreateResume(_ context.Context, in storage.NewResume) (resume.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	s.resumeID++
	r := resume.Resume{
		ID:                     s.resumeID,
		UserID:                 in.UserID,
		Title:                  in.Title,
		Content:                cloneContent(in.Content),
		CreatedAt:              now,
		UpdatedAt:              now,
		Score:                  0,
		ImprovementSuggestions: []string{},
	}
	s.resumes[r.ID] = r
	return cloneResume(r), nil
}

func (s *Store) UpdateResume(_ context.Context, id int64, patch storage.ResumePatch) (resume.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.resumes[id]
	if !ok {
		return resume.Resume{}, storage.ErrNotFound
	}

	if patch.Title != nil {
		r.Title = *patch.Title
	}
	if patch.Content != nil {
		r.Content = cloneContent(*patch.Content)
	}
	if patch.Score != nil {
		r.Score = *patch.Score
	}
	if patch.Suggestions != nil {
		r.ImprovementSuggestions = cloneStrings(*patch.Suggestions)
	}
	r.UpdatedAt = s.now().UTC()

	s.resumes[id] = r
	return cloneResume(r), nil
}

func (s *Store) GetRoadmapByUserID(_ context.Context, userID int64) (roadmap.Roadmap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.roadmaps {
		if r.UserID == userID {
			return cloneRoadmap(r), nil
		}
	}
	return roadmap.Roadmap{}, storage.ErrNotFound
}

func (s *Store) CreateRoadmap(_ context.Context, in storage.NewRoadmap) (roadmap.Roadmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roadmapID++
	r := roadmap.Roadmap{
		ID:               s.roadmapID,
		UserID:           in.UserID,
		Milestones:       cloneMilestones(in.Milestones),
		CurrentMilestone: in.CurrentMilestone,
	}
	s.roadmaps[r.ID] = r
	return cloneRoadmap(r), nil
}

func (s *Store) UpdateRoadmap(_ context.Context, id int64, patch storage.RoadmapPatch) (roadmap.Roadmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.roadmaps[id]
	if !ok {
		return roadmap.Roadmap{}, storage.ErrNotFound
	}

	if patch.Milestones != nil {
		r.Milestones = cloneMilestones(*patch.Milestones)
	}
	if patch.CurrentMilestone != nil {
		r.CurrentMilestone = *patch.CurrentMilestone
	}

	s.roadmaps[id] = r
	return cloneRoadmap(r), nil
}

func (s *Store) ListWebinars(_ context.Context) ([]webinar.Webinar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]webinar.Webinar, 0, len(s.webinars))
	for _, w := range s.webinars {
		out = append(out, cloneWebinar(w))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetWebinar(_ context.Context, id int64) (webinar.Webinar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.webinars[id]
	if !ok {
		return webinar.Webinar{}, storage.ErrNotFound
	}
	return cloneWebinar(w), nil
}

func (s *Store) CreateWebinar(_ context.Context, in storage.NewWebinar) (webinar.Webinar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.webinarID++
	w := webinar.Webinar{
		ID:              s.webinarID,
		Title:           in.Title,
		Description:     in.Description,
		SpeakerName:     in.SpeakerName,
		SpeakerTitle:    in.SpeakerTitle,
		Date:            in.Date.UTC(),
		RegisteredUsers: []int64{},
	}
	s.webinars[w.ID] = w
	return cloneWebinar(w), nil
}

func (s *Store) RegisterForWebinar(_ context.Context, webinarID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.webinars[webinarID]
	if !ok {
		return false, nil
	}
	if w.Registered(userID) {
		return false, nil
	}

	w.RegisteredUsers = append(cloneInt64s(w.RegisteredUsers), userID)
	s.webinars[webinarID] = w
	return true, nil
}

func (s *Store) CreateMentor(_ context.Context, in storage.NewMentor) (mentor.Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.mentors {
		if m.UserID == in.UserID {
			return mentor.Mentor{}, storage.ErrConflict
		}
	}

	s.mentorID++
	m := mentor.Mentor{
		ID:             s.mentorID,
		UserID:         in.UserID,
		Company:        in.Company,
		Position:       in.Position,
		Specialization: cloneStrings(in.Specialization),
		Availability:   cloneAvailability(in.Availability),
		Verified:       false,
	}
	s.mentors[m.ID] = m
	return cloneMentor(m), nil
}

func (s *Store) GetMentorByUserID(_ context.Context, userID int64) (mentor.Mentor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.mentors {
		if m.UserID == userID {
			return cloneMentor(m), nil
		}
	}
	return mentor.Mentor{}, storage.ErrNotFound
}

func (s *Store) ListVerifiedMentors(_ context.Context) ([]mentor.Mentor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]mentor.Mentor, 0)
	for _, m := range s.mentors {
		if m.Verified {
			out = append(out, cloneMentor(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateMentor(_ context.Context, id int64, patch storage.MentorPatch) (mentor.Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.mentors[id]
	if !ok {
		return mentor.Mentor{}, storage.ErrNotFound
	}

	if patch.Company != nil {
		m.Company = *patch.Company
	}
	if patch.Position != nil {
		m.Position = *patch.Position
	}
	if patch.Specialization != nil {
		m.Specialization = cloneStrings(*patch.Specialization)
	}
	if patch.Availability != nil {
		m.Availability = cloneAvailability(*patch.Availability)
	}
	if patch.Verified != nil {
		m.Verified = *patch.Verified
	}

	s.mentors[id] = m
	return cloneMentor(m), nil
}

func (s *Store) CreateSession(_ context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.SID] = sess
	return nil
}

func (s *Store) GetSession(_ context.Context, sid string) (session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sid]
	if !ok {
		return session.Session{}, storage.ErrNotFound
	}
	return sess, nil
}

func (s *Store) DeleteSession(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sid)
	return nil
}

func (s *Store) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for sid, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, sid)
			n++
		}
	}
	return n, nil
}

func (s *Store) CountUsersByType(_ context.Context) (map[user.Type]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[user.Type]int64)
	for _, u := range s.users {
		out[u.UserType]++
	}
	return out, nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInt64s(in []int64) []int64 {
	if in == nil {
		return []int64{}
	}
	out := make([]int64, len(in))
	copy(out, in)
	return out
}

func cloneProfile(p user.Profile) user.Profile {
	p.Education = cloneStrings(p.Education)
	p.Skills = cloneStrings(p.Skills)
	p.CareerGoals = cloneStrings(p.CareerGoals)
	p.Achievements = cloneStrings(p.Achievements)
	p.Experience = cloneStrings(p.Experience)
	return p
}

func cloneContent(c resume.Content) resume.Content {
	c.Education = cloneStrings(c.Education)
	c.Experience = cloneStrings(c.Experience)
	c.Skills = cloneStrings(c.Skills)
	c.Certifications = cloneStrings(c.Certifications)
	c.Projects = cloneStrings(c.Projects)
	c.Awards = cloneStrings(c.Awards)
	return c
}

func cloneResume(r resume.Resume) resume.Resume {
	r.Content = cloneContent(r.Content)
	r.ImprovementSuggestions = cloneStrings(r.ImprovementSuggestions)
	return r
}

func cloneMilestones(in []roadmap.Milestone) []roadmap.Milestone {
	if in == nil {
		return []roadmap.Milestone{}
	}
	out := make([]roadmap.Milestone, len(in))
	copy(out, in)
	return out
}

func cloneRoadmap(r roadmap.Roadmap) roadmap.Roadmap {
	r.Milestones = cloneMilestones(r.Milestones)
	return r
}

func cloneWebinar(w webinar.Webinar) webinar.Webinar {
	w.RegisteredUsers = cloneInt64s(w.RegisteredUsers)
	return w
}

func cloneAvailability(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = cloneStrings(v)
	}
	return out
}

func cloneMentor(m mentor.Mentor) mentor.Mentor {
	m.Specialization = cloneStrings(m.Specialization)
	m.Availability = cloneAvailability(m.Availability)
	return m
}
