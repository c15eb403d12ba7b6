package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openleaf/openleaf/api/auth"
	"github.com/openleaf/openleaf/model"
)

func TestSignUpAndSignIn(t *testing.T) {
	h, _ := newTestHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username": "alice", "password": "secret123"}`))
	w := httptest.NewRecorder()
	h.signUp(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var user model.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("Password hash must never leave the server")
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("Expected first account to be admin, got %s", user.Role)
	}

	r = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username": "alice", "password": "secret123"}`))
	w = httptest.NewRecorder()
	h.signIn(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, auth.AccessTokenCookieName+"=") {
		t.Errorf("Expected access token cookie, got %q", cookie)
	}
	if !strings.Contains(cookie, "HttpOnly") {
		t.Errorf("Expected HttpOnly cookie, got %q", cookie)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	h, _ := newTestHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username": "bob", "password": "secret123"}`))
	w := httptest.NewRecorder()
	h.signUp(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username": "bob", "password": "wrong"}`))
	w = httptest.NewRecorder()
	h.signIn(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for wrong password, got %d", w.Code)
	}
}

func TestSignUpRejectsDuplicateUsername(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"username": "carol", "password": "secret123"}`
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.signUp(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	w = httptest.NewRecorder()
	h.signUp(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate username, got %d", w.Code)
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username": "erin", "password": "secret123", "email": "erin@example.com"}`))
	w := httptest.NewRecorder()
	h.signUp(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	r = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username": "erin2", "password": "secret123", "email": "erin@example.com"}`))
	w = httptest.NewRecorder()
	h.signUp(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate email, got %d", w.Code)
	}
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	h, _ := newTestHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username": "dave", "password": "abc"}`))
	w := httptest.NewRecorder()
	h.signUp(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for short password, got %d", w.Code)
	}
}
