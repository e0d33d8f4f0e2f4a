package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ortofrutticola/internal/admin"

	"go.uber.org/zap"
)

func newTestSessions() *admin.Sessions {
	return admin.NewSessions(admin.NewStaticAuthenticator("admin123"), "test-secret", time.Hour)
}

func protectedHandler(sessions *admin.Sessions) http.Handler {
	mw := AdminAuthMiddleware(sessions, zap.NewNop())
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionID(r.Context()); !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	sessions := newTestSessions()
	token, err := sessions.Login("admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	protectedHandler(sessions).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/admin/products", nil)
	w := httptest.NewRecorder()

	protectedHandler(newTestSessions()).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminAuthRejectsMalformedHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/admin/products", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()

	protectedHandler(newTestSessions()).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminAuthRejectsRevokedSession(t *testing.T) {
	sessions := newTestSessions()
	token, err := sessions.Login("admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := sessions.ValidateToken(token)
	if err != nil {
		t.Fatalf("token did not validate: %v", err)
	}
	sessions.Logout(claims.SessionID)

	req := httptest.NewRequest("GET", "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	protectedHandler(sessions).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}
