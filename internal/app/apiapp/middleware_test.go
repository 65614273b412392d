package apiapp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	authsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/auth"
)

func TestDeviceIDMiddlewareSetsContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/trials", nil)
	req.Header.Set("X-Device-Id", "device-mw-1")
	rr := httptest.NewRecorder()

	DeviceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID, ok := authsvc.DeviceIDFromContext(r.Context())
		if !ok || deviceID != "device-mw-1" {
			t.Fatalf("device id missing in context: %q", deviceID)
		}
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestDeviceIDMiddlewareSkipsBlankHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/trials", nil)
	req.Header.Set("X-Device-Id", "   ")
	rr := httptest.NewRecorder()

	DeviceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authsvc.DeviceIDFromContext(r.Context()); ok {
			t.Fatal("blank device id must not be set in context")
		}
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	mw := AuthMiddleware(newMiddlewareAuthService(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/trials", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not be called without a token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewarePropagatesGuestIdentity(t *testing.T) {
	service := newMiddlewareAuthService(t)
	mw := AuthMiddleware(service, zap.NewNop())

	login, err := service.LoginGuest(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "device-mw-2")
	if err != nil {
		t.Fatalf("LoginGuest: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/trials", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authsvc.IdentityFromContext(r.Context())
		if !ok {
			t.Fatal("identity missing in context")
		}
		if !identity.Anonymous {
			t.Fatal("guest identity must be anonymous")
		}
		if identity.DeviceID != "device-mw-2" {
			t.Fatalf("device id = %q, want device-mw-2", identity.DeviceID)
		}
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func newMiddlewareAuthService(t *testing.T) *authsvc.Service {
	t.Helper()

	mr := newTestRedis(t)
	sessions := newTestSessionRepo(mr)
	return authsvc.NewService(
		authsvc.NewJWTManager("mw-secret", 15*time.Minute),
		sessions,
		staticUserStore{},
		60*24*time.Hour,
	)
}
