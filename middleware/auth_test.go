package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"worktime/models"
)

func newTestAuth(users map[uint]*models.User) *Auth {
	return NewAuth("test-secret", time.Hour, func(ctx context.Context, id uint) (*models.User, error) {
		u, ok := users[id]
		if !ok {
			return nil, errors.New("not found")
		}
		return u, nil
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	a := newTestAuth(nil)
	user := &models.User{ID: 7, Username: "alice", Role: models.RoleUser}

	token, err := a.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	claims, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Role != models.RoleUser {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected token id")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := newTestAuth(nil).GenerateToken(&models.User{ID: 1})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	other := NewAuth("other-secret", time.Hour, nil)
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}

func TestMiddlewareNoToken(t *testing.T) {
	handler := newTestAuth(nil).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/api/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestMiddlewareInvalidToken(t *testing.T) {
	handler := newTestAuth(nil).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/api/stats", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "invalid-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if c := rec.Header().Get("Set-Cookie"); !strings.Contains(c, "Max-Age=0") {
		t.Errorf("Set-Cookie = %q, want cleared cookie", c)
	}
}

func TestMiddlewareBearerToken(t *testing.T) {
	user := &models.User{ID: 3, Username: "bob", Role: models.RoleUser}
	a := newTestAuth(map[uint]*models.User{3: user})
	token, err := a.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var got *models.User
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got == nil || got.ID != 3 {
		t.Errorf("user = %+v, want id 3", got)
	}
}

func TestMiddlewareDeletedUser(t *testing.T) {
	a := newTestAuth(map[uint]*models.User{})
	token, err := a.GenerateToken(&models.User{ID: 9})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))
	req := httptest.NewRequest("GET", "/api/stats", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func withUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), UserContextKey, user))
}

func TestRequirePasswordChange(t *testing.T) {
	handler := RequirePasswordChange("/api/password")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	user := &models.User{ID: 1, MustChangePassword: true}

	tests := []struct {
		path string
		want int
	}{
		{"/api/stats", http.StatusForbidden},
		{"/api/password", http.StatusOK},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withUser(httptest.NewRequest("GET", tt.path, nil), user))
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withUser(httptest.NewRequest("GET", "/api/stats", nil), &models.User{ID: 2}))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/users", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, withUser(httptest.NewRequest("POST", "/api/users", nil), &models.User{Role: models.RoleUser}))
	if rec.Code != http.StatusForbidden {
		t.Errorf("user status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, withUser(httptest.NewRequest("POST", "/api/users", nil), &models.User{Role: models.RoleAdmin}))
	if rec.Code != http.StatusOK {
		t.Errorf("admin status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/time/1", nil))

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "status=404") || !strings.Contains(out, "path=/api/time/1") {
		t.Errorf("log output = %q", out)
	}
}
