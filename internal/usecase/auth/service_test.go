package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	coreauth "career-compass/internal/auth"
	"career-compass/internal/domain/user"
	"career-compass/internal/session"
	"career-compass/internal/storage"
	"career-compass/internal/storage/memory"
)

func newService() *Service {
	store := memory.NewStore()
	return NewService(store, coreauth.NewScryptHasher(), session.NewManager(store))
}

func validInput() RegisterInput {
	return RegisterInput{
		Username:  "alice",
		Email:     "Alice@Example.com",
		Password:  "s3cret",
		FirstName: "Alice",
		LastName:  "Anderson",
	}
}

func TestRegisterEstablishesSession(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, sid, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sid == "" {
		t.Fatalf("registration must establish a session")
	}
	if u.PasswordHash != "" {
		t.Fatalf("returned user must not carry the password hash")
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.UserType != user.TypeStudent {
		t.Fatalf("expected default student type, got %q", u.UserType)
	}

	current, err := svc.CurrentUser(ctx, sid)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current.ID != u.ID {
		t.Fatalf("session resolves to user %d, want %d", current.ID, u.ID)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newService()

	in := validInput()
	in.Email = "   "
	in.Password = ""

	_, _, err := svc.Register(context.Background(), in)
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if len(missing.Fields) != 2 || missing.Fields[0] != "email" || missing.Fields[1] != "password" {
		t.Fatalf("unexpected missing fields: %v", missing.Fields)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("MissingFieldsError must unwrap to ErrInvalidInput")
	}
}

func TestRegisterRejectsUnknownUserType(t *testing.T) {
	svc := newService()

	in := validInput()
	in.UserType = "wizard"

	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterDuplicateUsernameAndEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	dup := validInput()
	dup.Email = "other@example.com"
	if _, _, err := svc.Register(ctx, dup); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	dup = validInput()
	dup.Username = "alice2"
	if _, _, err := svc.Register(ctx, dup); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterConcurrentDuplicates(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, coreauth.NewScryptHasher(), session.NewManager(store))
	ctx := context.Background()

	const workers = 8
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Register(ctx, validInput())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		if !errors.Is(err, ErrUsernameTaken) && !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("loser must see a conflict error, got %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one successful registration, got %d", wins)
	}

	u, err := store.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected a single stored user, got id %d", u.ID)
	}
}

func TestLogin(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, sid, err := svc.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sid == "" || u.Username != "alice" {
		t.Fatalf("unexpected login result: user=%+v sid=%q", u, sid)
	}
	if u.PasswordHash != "" {
		t.Fatalf("returned user must not carry the password hash")
	}
}

func TestLoginGenericFailure(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Wrong password and unknown username produce the same error.
	if _, _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginSurvivesMalformedStoredHash(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, coreauth.NewScryptHasher(), session.NewManager(store))
	ctx := context.Background()

	_, err := store.CreateUser(ctx, storage.NewUser{
		Username:     "legacy",
		Email:        "legacy@example.com",
		PasswordHash: "not-a-valid-hash",
		FirstName:    "Legacy",
		LastName:     "Record",
		UserType:     user.TypeStudent,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if _, _, err := svc.Login(ctx, "legacy", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, sid, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(ctx, sid); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.CurrentUser(ctx, sid); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}

	// Logout without a live session is a no-op.
	if err := svc.Logout(ctx, sid); err != nil {
		t.Fatalf("repeated Logout: %v", err)
	}
	if err := svc.Logout(ctx, ""); err != nil {
		t.Fatalf("Logout with empty sid: %v", err)
	}
}

func TestCurrentUserUnknownSID(t *testing.T) {
	svc := newService()
	if _, err := svc.CurrentUser(context.Background(), "bogus"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
