package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shelterlink/api/internal/app"
	"github.com/shelterlink/api/internal/domain"
)

// MagicLinkService is the minimal interface for the auth endpoints.
type MagicLinkService interface {
	RequestMagicLink(ctx context.Context, email string) error
	VerifyMagicLink(ctx context.Context, token string) (string, domain.Staff, error)
}

// TokenVerifier validates bearer tokens for protected endpoints.
type TokenVerifier interface {
	VerifyAccessToken(token string) (app.Identity, error)
}

// HandleMagicLink returns an HTTP handler that emails a sign-in link.
func HandleMagicLink(svc MagicLinkService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req magicLinkRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		if err := svc.RequestMagicLink(r.Context(), req.Email); err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(magicLinkResponse{Message: "magic link sent"})
	}
}

// HandleVerify returns an HTTP handler that exchanges a link token for an
// access token.
func HandleVerify(svc MagicLinkService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req verifyRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Token == "" {
			writeError(w, http.StatusBadRequest, codeInvalidToken, "token is required")
			return
		}

		token, staff, err := svc.VerifyMagicLink(r.Context(), req.Token)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
			Role:        string(staff.Role),
		})
	}
}

type identityKey struct{}

// RequireAuth rejects requests without a valid bearer token and attaches the
// caller identity to the request context.
func RequireAuth(verifier TokenVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		identity, err := verifier.VerifyAccessToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeInvalidToken, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin layers an ADMIN role check on top of RequireAuth.
func RequireAdmin(verifier TokenVerifier, next http.Handler) http.Handler {
	return RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := identityFromContext(r.Context())
		if identity.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, codeForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func identityFromContext(ctx context.Context) (app.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(app.Identity)
	return identity, ok
}

type magicLinkRequest struct {
	Email string `json:"email"`
}

type magicLinkResponse struct {
	Message string `json:"message"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}
