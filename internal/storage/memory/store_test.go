package memory

import (
	"context"
	"sync"
	"testing"

	"career-compass/internal/domain/user"
	"career-compass/internal/storage"
	"career-compass/internal/storage/storetest"
)

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return NewStore()
	})
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	created, err := s.CreateWebinar(ctx, storage.NewWebinar{Title: "Mock Interviews"})
	if err != nil {
		t.Fatalf("CreateWebinar: %v", err)
	}

	got, err := s.GetWebinar(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetWebinar: %v", err)
	}
	got.RegisteredUsers = append(got.RegisteredUsers, 99)

	again, err := s.GetWebinar(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetWebinar: %v", err)
	}
	if len(again.RegisteredUsers) != 0 {
		t.Fatalf("caller mutation leaked into store: %v", again.RegisteredUsers)
	}
}

func TestConcurrentWebinarRegistration(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	w, err := s.CreateWebinar(ctx, storage.NewWebinar{Title: "Career Fair"})
	if err != nil {
		t.Fatalf("CreateWebinar: %v", err)
	}
	u, err := s.CreateUser(ctx, storage.NewUser{
		Username: "judy", Email: "judy@example.com",
		PasswordHash: "x.y", UserType: user.TypeStudent,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	const workers = 16
	added := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.RegisterForWebinar(ctx, w.ID, u.ID)
			if err != nil {
				t.Errorf("RegisterForWebinar: %v", err)
				return
			}
			added <- ok
		}()
	}
	wg.Wait()
	close(added)

	wins := 0
	for ok := range added {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning registration, got %d", wins)
	}

	got, err := s.GetWebinar(ctx, w.ID)
	if err != nil {
		t.Fatalf("GetWebinar: %v", err)
	}
	if len(got.RegisteredUsers) != 1 {
		t.Fatalf("expected one attendee, got %v", got.RegisteredUsers)
	}
}
