package auth

import (
	"context"
	"errors"
	"strings"

	"career-compass/internal/auth"
	domain "career-compass/internal/domain/user"
	"career-compass/internal/session"
	"career-compass/internal/storage"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

// MissingFieldsError names the registration fields that were absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrInvalidInput
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserType  string
	Phone     string
	Bio       string
}

type Service struct {
	store    storage.Store
	hasher   auth.Hasher
	sessions *session.Manager
}

func NewService(store storage.Store, hasher auth.Hasher, sessions *session.Manager) *Service {
	return &Service{store: store, hasher: hasher, sessions: sessions}
}

// Register creates the user and immediately establishes a session for it:
// registration implies login. The returned user carries no password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"username", in.Username},
		{"email", in.Email},
		{"password", in.Password},
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.User{}, "", &MissingFieldsError{Fields: missing}
	}

	userType := domain.Type(strings.TrimSpace(in.UserType))
	if userType == "" {
		userType = domain.TypeStudent
	}
	if !userType.Valid() {
		return domain.User{}, "", ErrInvalidInput
	}

	// Username and email are checked separately so the conflict response
	// can name the colliding field.
	if _, err := s.store.GetUserByUsername(ctx, in.Username); err == nil {
		return domain.User{}, "", ErrUsernameTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return domain.User{}, "", ErrInternal
	}
	if _, err := s.store.GetUserByEmail(ctx, in.Email); err == nil {
		return domain.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return domain.User{}, "", ErrInternal
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, "", ErrInternal
	}

	u, err := s.store.CreateUser(ctx, storage.NewUser{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		UserType:     userType,
		Phone:        strings.TrimSpace(in.Phone),
		Bio:          strings.TrimSpace(in.Bio),
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return domain.User{}, "", ErrUsernameTaken
		}
		return domain.User{}, "", ErrInternal
	}

	sess, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return domain.User{}, "", ErrInternal
	}

	return sanitizeUser(u), sess.SID, nil
}

// Login verifies the credentials and establishes a session. Unknown
// username and wrong password collapse into the same generic error so
// callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, "", ErrInvalidCredentials
	}

	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", ErrInternal
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil || !ok {
		// A malformed stored hash rejects the login, it never crashes
		// the request.
		return domain.User{}, "", ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return domain.User{}, "", ErrInternal
	}

	return sanitizeUser(u), sess.SID, nil
}

// Logout destroys the session; logging out without one is a no-op.
func (s *Service) Logout(ctx context.Context, sid string) error {
	return s.sessions.Destroy(ctx, sid)
}

// CurrentUser resolves the session cookie to the full user record.
func (s *Service) CurrentUser(ctx context.Context, sid string) (domain.User, error) {
	userID, err := s.sessions.Resolve(ctx, sid)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return domain.User{}, ErrUnauthenticated
		}
		return domain.User{}, ErrInternal
	}

	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, ErrUnauthenticated
		}
		return domain.User{}, ErrInternal
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func sanitizeUser(u domain.User) domain.User {
	u.PasswordHash = ""
	return u
}
