package handler_test

import (
	"net/http"
	"testing"
)

func TestProfileLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/register", registerBody("alice", "alice@example.com"), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	cookie := sessionCookie(resp)
	resp.Body.Close()

	// No profile yet.
	resp = doJSON(t, app, "GET", "/api/profile", nil, cookie)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before creation, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Two of five sections filled.
	resp = doJSON(t, app, "POST", "/api/profile", map[string]any{
		"skills":    []string{"Go", "SQL"},
		"education": []string{"BSc Computer Science"},
	}, cookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create profile: expected 201, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if pct, _ := body["completionPercentage"].(float64); pct != 40 {
		t.Fatalf("expected 40%% completion, got %v", body["completionPercentage"])
	}

	// A second create is a conflict.
	resp = doJSON(t, app, "POST", "/api/profile", map[string]any{}, cookie)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate create, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Patch one more section; untouched sections survive and the
	// percentage reflects the merged state.
	resp = doJSON(t, app, "PATCH", "/api/profile", map[string]any{
		"careerGoals": []string{"Staff engineer"},
	}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch profile: expected 200, got %d", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if pct, _ := body["completionPercentage"].(float64); pct != 60 {
		t.Fatalf("expected 60%% completion, got %v", body["completionPercentage"])
	}
	if skills, ok := body["skills"].([]any); !ok || len(skills) != 2 {
		t.Fatalf("patch must not clear skills, got %v", body["skills"])
	}

	// Clearing a section lowers the percentage again.
	resp = doJSON(t, app, "PATCH", "/api/profile", map[string]any{
		"skills": []string{},
	}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch profile: expected 200, got %d", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if pct, _ := body["completionPercentage"].(float64); pct != 40 {
		t.Fatalf("expected 40%% completion after clearing skills, got %v", body["completionPercentage"])
	}
}
