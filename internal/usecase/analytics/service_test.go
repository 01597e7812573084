package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"career-compass/internal/domain/user"
	"career-compass/internal/storage"
	"career-compass/internal/storage/memory"
)

type fakeCache struct {
	entries map[string][]byte
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.gets++
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func seed(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()

	for _, in := range []storage.NewUser{
		{Username: "alice", Email: "alice@example.com", PasswordHash: "x.y", UserType: user.TypeStudent},
		{Username: "bob", Email: "bob@example.com", PasswordHash: "x.y", UserType: user.TypeStudent},
		{Username: "carol", Email: "carol@example.com", PasswordHash: "x.y", UserType: user.TypeMentor},
	} {
		if _, err := store.CreateUser(ctx, in); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}

	w, err := store.CreateWebinar(ctx, storage.NewWebinar{Title: "Careers 101", Date: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("CreateWebinar: %v", err)
	}
	if _, err := store.RegisterForWebinar(ctx, w.ID, 1); err != nil {
		t.Fatalf("RegisterForWebinar: %v", err)
	}
	if _, err := store.RegisterForWebinar(ctx, w.ID, 2); err != nil {
		t.Fatalf("RegisterForWebinar: %v", err)
	}

	m, err := store.CreateMentor(ctx, storage.NewMentor{UserID: 3, Company: "Acme"})
	if err != nil {
		t.Fatalf("CreateMentor: %v", err)
	}
	verified := true
	if _, err := store.UpdateMentor(ctx, m.ID, storage.MentorPatch{Verified: &verified}); err != nil {
		t.Fatalf("UpdateMentor: %v", err)
	}
}

func TestOverview(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)

	svc := NewService(store, nil)
	got, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if got.TotalUsers != 3 {
		t.Fatalf("expected 3 users, got %d", got.TotalUsers)
	}
	if got.UsersByType[user.TypeStudent] != 2 || got.UsersByType[user.TypeMentor] != 1 {
		t.Fatalf("unexpected breakdown: %v", got.UsersByType)
	}
	if got.TotalWebinars != 1 || got.WebinarRegistrations != 2 {
		t.Fatalf("unexpected webinar stats: %+v", got)
	}
	if got.VerifiedMentors != 1 {
		t.Fatalf("expected 1 verified mentor, got %d", got.VerifiedMentors)
	}
	if got.GeneratedAt.IsZero() {
		t.Fatalf("expected generatedAt to be set")
	}
}

func TestOverviewUsesCache(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	cache := newFakeCache()

	svc := NewService(store, cache)
	ctx := context.Background()

	first, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected overview to be cached, sets=%d", cache.sets)
	}

	// Change the underlying data; the cached snapshot must win until TTL.
	if _, err := store.CreateUser(ctx, storage.NewUser{
		Username: "dave", Email: "dave@example.com", PasswordHash: "x.y", UserType: user.TypeStudent,
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	second, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if second.TotalUsers != first.TotalUsers {
		t.Fatalf("expected cached overview, got %d users", second.TotalUsers)
	}
	if cache.sets != 1 {
		t.Fatalf("cache hit must not rewrite the entry, sets=%d", cache.sets)
	}
}
