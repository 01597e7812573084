package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	coreauth "career-compass/internal/auth"
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/routes"
	"career-compass/internal/session"
	"career-compass/internal/storage"
	"career-compass/internal/storage/memory"
	ucanalytics "career-compass/internal/usecase/analytics"
	ucauth "career-compass/internal/usecase/auth"
	ucresume "career-compass/internal/usecase/resume"
	ucwebinar "career-compass/internal/usecase/webinar"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func newTestApp(t *testing.T) (*fiber.App, storage.Store) {
	t.Helper()

	store := memory.NewStore()
	logger := log.New(io.Discard, "", 0)
	sessions := session.NewManager(store)
	hub := ws.NewHub(logger)

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(logger, false).Middleware())

	authSvc := ucauth.NewService(store, coreauth.NewScryptHasher(), sessions)
	registry := &routes.Registry{
		Health:      handler.NewHealthHandler(),
		Auth:        handler.NewAuthHandler(authSvc, false),
		Profile:     handler.NewProfileHandler(store),
		Resume:      handler.NewResumeHandler(ucresume.NewService(store)),
		Roadmap:     handler.NewRoadmapHandler(store),
		Webinar:     handler.NewWebinarHandler(ucwebinar.NewService(store), hub),
		Mentor:      handler.NewMentorHandler(store),
		Analytics:   handler.NewAnalyticsHandler(ucanalytics.NewService(store, nil)),
		Events:      ws.NewHandler(hub, logger),
		SessionAuth: middleware.NewSessionAuth(sessions),
	}
	registry.Register(app)

	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 15 * time.Second, FailOnTimeout: true})
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func registerBody(username, email string) map[string]any {
	return map[string]any{
		"username":  username,
		"email":     email,
		"password":  "s3cret",
		"firstName": "Test",
		"lastName":  "User",
	}
}

// TestAuthLifecycle walks the whole session flow: register, fail a login,
// log in, read the current user with the cookie, log out, and get rejected
// afterwards.
func TestAuthLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	// Register.
	resp := doJSON(t, app, "POST", "/api/register", registerBody("alice", "alice@example.com"), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	regCookie := sessionCookie(resp)
	if regCookie == nil || regCookie.Value == "" {
		t.Fatalf("register must set the session cookie")
	}
	if !regCookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	body := decodeBody(t, resp)
	if body["username"] != "alice" {
		t.Fatalf("unexpected register body: %v", body)
	}
	if _, ok := body["passwordHash"]; ok {
		t.Fatalf("response must not expose the password hash")
	}

	// Wrong password.
	resp = doJSON(t, app, "POST", "/api/login", map[string]any{
		"username": "alice", "password": "wrong",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Invalid credentials" {
		t.Fatalf("unexpected error body: %v", body)
	}

	// Correct password.
	resp = doJSON(t, app, "POST", "/api/login", map[string]any{
		"username": "alice", "password": "s3cret",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	cookie := sessionCookie(resp)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("login must set the session cookie")
	}
	decodeBody(t, resp)

	// Current user with the cookie.
	resp = doJSON(t, app, "GET", "/api/user", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get user: expected 200, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["email"] != "alice@example.com" {
		t.Fatalf("unexpected user body: %v", body)
	}

	// Logout clears the session server-side.
	resp = doJSON(t, app, "POST", "/api/logout", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	cleared := sessionCookie(resp)
	if cleared == nil || cleared.Value != "" {
		t.Fatalf("logout must clear the cookie, got %+v", cleared)
	}
	if !cleared.Expires.IsZero() && !cleared.Expires.Before(time.Now()) {
		t.Fatalf("cleared cookie must be expired, got %v", cleared.Expires)
	}
	decodeBody(t, resp)

	resp = doJSON(t, app, "GET", "/api/user", nil, cookie)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("get user after logout: expected 401, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRegisterValidationAndConflicts(t *testing.T) {
	app, _ := newTestApp(t)

	// Missing fields are named in the message.
	resp := doJSON(t, app, "POST", "/api/register", map[string]any{"username": "alice"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	msg, _ := body["error"].(string)
	if msg != "Missing required fields: email, password, firstName, lastName" {
		t.Fatalf("unexpected error message: %q", msg)
	}

	resp = doJSON(t, app, "POST", "/api/register", registerBody("alice", "alice@example.com"), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Duplicate username.
	resp = doJSON(t, app, "POST", "/api/register", registerBody("alice", "other@example.com"), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Username already exists" {
		t.Fatalf("unexpected error body: %v", body)
	}

	// Duplicate email.
	resp = doJSON(t, app, "POST", "/api/register", registerBody("alice2", "alice@example.com"), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Email already exists" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []string{"/api/profile", "/api/resume", "/api/roadmap", "/api/analytics/overview"} {
		resp := doJSON(t, app, "GET", target, nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without a session, got %d", target, resp.StatusCode)
		}
		resp.Body.Close()
	}

	// Public listings stay open.
	for _, target := range []string{"/health", "/api/webinars", "/api/mentors"} {
		resp := doJSON(t, app, "GET", target, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestWebinarRegistrationFlow(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/register", registerBody("alice", "alice@example.com"), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	cookie := sessionCookie(resp)
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/webinars", map[string]any{
		"title":       "Resume clinic",
		"speakerName": "Grace",
		"date":        time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}, cookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create webinar: expected 201, got %d", resp.StatusCode)
	}
	created := decodeBody(t, resp)
	id, ok := created["id"].(float64)
	if !ok || id == 0 {
		t.Fatalf("expected webinar id in %v", created)
	}

	target := "/api/webinars/1/register"
	resp = doJSON(t, app, "POST", target, nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register for webinar: expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if users, ok := body["registeredUsers"].([]any); !ok || len(users) != 1 {
		t.Fatalf("expected one attendee, got %v", body["registeredUsers"])
	}

	// Second registration is a conflict, not a duplicate.
	resp = doJSON(t, app, "POST", target, nil, cookie)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate registration: expected 409, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/webinars/999/register", nil, cookie)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing webinar: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMentorVerifyRequiresAdmin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/register", registerBody("mallory", "mallory@example.com"), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	cookie := sessionCookie(resp)
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/mentors", map[string]any{
		"company":  "Acme",
		"position": "Principal Engineer",
	}, cookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create mentor: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// A student cannot verify mentors.
	resp = doJSON(t, app, "PATCH", "/api/mentors/1/verify", nil, cookie)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("verify as student: expected 403, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	admin := registerBody("root", "root@example.com")
	admin["userType"] = "admin"
	resp = doJSON(t, app, "POST", "/api/register", admin, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register admin: expected 201, got %d", resp.StatusCode)
	}
	adminCookie := sessionCookie(resp)
	resp.Body.Close()

	resp = doJSON(t, app, "PATCH", "/api/mentors/1/verify", nil, adminCookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify as admin: expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if verified, _ := body["verified"].(bool); !verified {
		t.Fatalf("expected verified mentor, got %v", body)
	}
}
