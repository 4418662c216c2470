package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shelterlink/api/internal/app"
	"github.com/shelterlink/api/internal/domain"
)

func TestHandleMagicLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "success",
			body:           `{"email":"staff@example.org"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid json",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown email",
			body:           `{"email":"nobody@example.org"}`,
			serviceErr:     domain.ErrStaffNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubMagicLinkService{err: tt.serviceErr}

			req := httptest.NewRequest(http.MethodPost, "/auth/magic-link", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			HandleMagicLink(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandleVerify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"token":"link-token"}`,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"token_type":"bearer"`,
		},
		{
			name:           "empty token",
			body:           `{"token":""}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid token",
			body:           `{"token":"expired"}`,
			serviceErr:     domain.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubMagicLinkService{
				accessToken: "access-token",
				staff:       domain.Staff{ID: "staff-1", Email: "staff@example.org", Role: domain.RoleStaff},
				err:         tt.serviceErr,
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/verify", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			HandleVerify(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromContext(r.Context())
		if !ok {
			t.Fatal("expected identity in context")
		}
		if identity.StaffID != "staff-1" {
			t.Fatalf("expected staff-1, got %q", identity.StaffID)
		}
		w.WriteHeader(http.StatusOK)
	})

	verifier := &stubVerifier{identity: app.Identity{StaffID: "staff-1", Role: domain.RoleStaff}}

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/staff", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()

		RequireAuth(verifier, next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/staff", nil)
		rec := httptest.NewRecorder()

		RequireAuth(verifier, next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		bad := &stubVerifier{err: domain.ErrInvalidToken}
		req := httptest.NewRequest(http.MethodGet, "/admin/staff", nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec := httptest.NewRecorder()

		RequireAuth(bad, next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin allowed", func(t *testing.T) {
		verifier := &stubVerifier{identity: app.Identity{StaffID: "admin-1", Role: domain.RoleAdmin}}
		req := httptest.NewRequest(http.MethodGet, "/admin/staff", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()

		RequireAdmin(verifier, next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("staff forbidden", func(t *testing.T) {
		verifier := &stubVerifier{identity: app.Identity{StaffID: "staff-1", Role: domain.RoleStaff}}
		req := httptest.NewRequest(http.MethodGet, "/admin/staff", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()

		RequireAdmin(verifier, next).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", rec.Code)
		}
	})
}

type stubMagicLinkService struct {
	accessToken string
	staff       domain.Staff
	err         error
}

func (s *stubMagicLinkService) RequestMagicLink(_ context.Context, _ string) error {
	return s.err
}

func (s *stubMagicLinkService) VerifyMagicLink(_ context.Context, _ string) (string, domain.Staff, error) {
	if s.err != nil {
		return "", domain.Staff{}, s.err
	}
	return s.accessToken, s.staff, nil
}
