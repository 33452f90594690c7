package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func okHandler(hit *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hit = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	validClaims := jwt.MapClaims{
		"user_id": float64(7),
		"role":    "scorer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + signedToken(t, validClaims, testSecret), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc123", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signedToken(t, validClaims, "other-secret"), http.StatusUnauthorized},
		{"expired token", "Bearer " + signedToken(t, jwt.MapClaims{
			"user_id": float64(7),
			"role":    "scorer",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}, testSecret), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit := false
			handler := Authenticate(testSecret)(okHandler(&hit))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if tc.wantStatus == http.StatusOK && !hit {
				t.Error("next handler was not called")
			}
			if tc.wantStatus != http.StatusOK && hit {
				t.Error("next handler was called for a rejected request")
			}
		})
	}
}

func TestAuthenticateStoresClaims(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"user_id": float64(7),
		"role":    "organizer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	var gotID int
	var gotRole models.UserRole
	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotID, err = GetUserIDFromContext(r.Context())
		if err != nil {
			t.Errorf("GetUserIDFromContext: %v", err)
		}
		gotRole, err = GetUserRoleFromContext(r.Context())
		if err != nil {
			t.Errorf("GetUserRoleFromContext: %v", err)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != 7 {
		t.Errorf("expected user id 7, got %d", gotID)
	}
	if gotRole != models.RoleOrganizer {
		t.Errorf("expected organizer role, got %q", gotRole)
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name       string
		role       string
		allowed    []models.UserRole
		wantStatus int
	}{
		{"allowed role", "admin", []models.UserRole{models.RoleAdmin}, http.StatusOK},
		{"one of several", "scorer", []models.UserRole{models.RoleAdmin, models.RoleOrganizer, models.RoleScorer}, http.StatusOK},
		{"denied role", "viewer", []models.UserRole{models.RoleAdmin}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := signedToken(t, jwt.MapClaims{
				"user_id": float64(1),
				"role":    tc.role,
				"exp":     time.Now().Add(time.Hour).Unix(),
			}, testSecret)

			hit := false
			handler := Authenticate(testSecret)(RequireRole(tc.allowed...)(okHandler(&hit)))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestRequireRoleWithoutAuthenticate(t *testing.T) {
	hit := false
	handler := RequireRole(models.RoleAdmin)(okHandler(&hit))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if hit {
		t.Error("next handler was called without claims")
	}
}
