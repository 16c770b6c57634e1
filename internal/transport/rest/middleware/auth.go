package middleware

import (
	"context"
	"net/http"
	"strings"

	"questhunt/internal/model"
	"questhunt/internal/service"
)

type contextKey string

const (
	TeamIDKey   contextKey = "teamId"
	TeamNameKey contextKey = "teamName"
	RoleKey     contextKey = "role"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireTeam validates the bearer token and injects the team identity.
func (m *AuthMiddleware) RequireTeam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := m.claims(r)
		if claims == nil {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// RequireAdmin additionally rejects non-admin tokens.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := m.claims(r)
		if claims == nil {
			unauthorized(w)
			return
		}
		if claims.Role != model.RoleAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"Forbidden","message":"admin access required"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func (m *AuthMiddleware) claims(r *http.Request) *model.TeamClaims {
	token := extractBearerToken(r)
	if token == "" {
		return nil
	}
	claims, err := m.authSvc.ValidateToken(token)
	if err != nil {
		return nil
	}
	return claims
}

func withClaims(ctx context.Context, claims *model.TeamClaims) context.Context {
	ctx = context.WithValue(ctx, TeamIDKey, claims.TeamID)
	ctx = context.WithValue(ctx, TeamNameKey, claims.TeamName)
	ctx = context.WithValue(ctx, RoleKey, claims.Role)
	return ctx
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Unauthorized","message":"missing or invalid token"}`))
}

// GetTeamID extracts the authenticated team ID from context.
func GetTeamID(ctx context.Context) string {
	if v := ctx.Value(TeamIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetRole extracts the authenticated role from context.
func GetRole(ctx context.Context) model.Role {
	if v := ctx.Value(RoleKey); v != nil {
		return v.(model.Role)
	}
	return ""
}

// IsAdmin reports whether the request was made with an admin token.
func IsAdmin(ctx context.Context) bool {
	return GetRole(ctx) == model.RoleAdmin
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
