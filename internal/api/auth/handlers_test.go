package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/courtside/matchpoint/internal/ratelimit"
	"github.com/courtside/matchpoint/internal/testutil"
)

func newAuthHandlers(t *testing.T) *Handlers {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewHandlers(database.Queries, NewSessions(false), nil)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestRegisterCreatesPlayer(t *testing.T) {
	handlers := newAuthHandlers(t)

	w := postJSON(t, handlers.HandleRegister, "/api/register", map[string]any{
		"name":     "Serena",
		"email":    "Serena@Example.com",
		"password": "topspin",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var player struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &player); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if player.ID == 0 {
		t.Error("player id missing from response")
	}
	if player.Email != "serena@example.com" {
		t.Errorf("email = %q, want lowercased", player.Email)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Error("response leaks password material")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handlers := newAuthHandlers(t)
	payload := map[string]any{"name": "Serena", "email": "serena@example.com", "password": "topspin"}

	if w := postJSON(t, handlers.HandleRegister, "/api/register", payload); w.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", w.Code)
	}
	if w := postJSON(t, handlers.HandleRegister, "/api/register", payload); w.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", w.Code)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	handlers := newAuthHandlers(t)

	w := postJSON(t, handlers.HandleRegister, "/api/register", map[string]any{
		"name": "Serena",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRegisterRejectsBadPhone(t *testing.T) {
	handlers := newAuthHandlers(t)

	w := postJSON(t, handlers.HandleRegister, "/api/register", map[string]any{
		"name":     "Serena",
		"email":    "serena@example.com",
		"password": "topspin",
		"phone":    "not-a-number",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	handlers := newAuthHandlers(t)
	register := map[string]any{"name": "Serena", "email": "serena@example.com", "password": "topspin"}
	if w := postJSON(t, handlers.HandleRegister, "/api/register", register); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}

	w := postJSON(t, handlers.HandleLogin, "/api/login", map[string]any{
		"email":    "serena@example.com",
		"password": "topspin",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("session cookie not set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	// The cookie must resolve back to the player.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(sessionCookie)
	if _, ok := handlers.sessions.PlayerID(r); !ok {
		t.Error("session cookie does not resolve to a player")
	}
}

func TestLoginRejectionsAreUniform(t *testing.T) {
	handlers := newAuthHandlers(t)
	register := map[string]any{"name": "Serena", "email": "serena@example.com", "password": "topspin"}
	if w := postJSON(t, handlers.HandleRegister, "/api/register", register); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}

	wrongPassword := postJSON(t, handlers.HandleLogin, "/api/login", map[string]any{
		"email": "serena@example.com", "password": "wrong",
	})
	unknownAccount := postJSON(t, handlers.HandleLogin, "/api/login", map[string]any{
		"email": "ghost@example.com", "password": "topspin",
	})

	if wrongPassword.Code != http.StatusUnauthorized || unknownAccount.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", wrongPassword.Code, unknownAccount.Code)
	}
	if wrongPassword.Body.String() != unknownAccount.Body.String() {
		t.Error("rejection bodies differ between wrong password and unknown account")
	}
}

func TestAuthRateLimit(t *testing.T) {
	database := testutil.NewTestDB(t)
	limiter := ratelimit.New(&ratelimit.Config{
		MaxPerWindow: 2,
		Window:       time.Minute,
		Lockout:      time.Minute,
	})
	handlers := NewHandlers(database.Queries, NewSessions(false), limiter)

	payload := map[string]any{"email": "serena@example.com", "password": "topspin"}
	for i := 0; i < 2; i++ {
		if w := postJSON(t, handlers.HandleLogin, "/api/login", payload); w.Code == http.StatusTooManyRequests {
			t.Fatalf("attempt %d rate limited too early", i+1)
		}
	}
	w := postJSON(t, handlers.HandleLogin, "/api/login", payload)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	handlers := newAuthHandlers(t)
	register := map[string]any{"name": "Serena", "email": "serena@example.com", "password": "topspin"}
	if w := postJSON(t, handlers.HandleRegister, "/api/register", register); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}
	login := postJSON(t, handlers.HandleLogin, "/api/login", map[string]any{
		"email": "serena@example.com", "password": "topspin",
	})
	cookies := login.Result().Cookies()

	r := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	for _, cookie := range cookies {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handlers.HandleLogout(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	check := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		check.AddCookie(cookie)
	}
	if _, ok := handlers.sessions.PlayerID(check); ok {
		t.Error("session still valid after logout")
	}
}
