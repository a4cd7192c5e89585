package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"custodia/internal/authz"
	id "custodia/pkg/domain"
	"custodia/pkg/requestcontext"
)

// TokenVerifier validates a bearer token and returns the principal it
// carries. The backend never validates credentials itself; the token is the
// identity provider's word on who is calling.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

// Claims is the opaque principal extracted from a verified token.
type Claims struct {
	UserID id.UserID
	Role   id.Role
}

// RequireAuth rejects requests without a valid bearer token and stores the
// principal in the request context for handlers and services.
func RequireAuth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeAuthError(w, http.StatusUnauthorized, "missing or invalid Authorization header")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx = requestcontext.WithUserID(ctx, claims.UserID)
			ctx = requestcontext.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission consults the access control gate for the principal's
// role. It must sit after RequireAuth on protected routes; on public routes
// it evaluates the policy for RolePublic.
func RequirePermission(gate authz.Gate, op authz.Operation, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			role := requestcontext.Role(ctx)
			if !gate.Permitted(role, op) {
				logger.WarnContext(ctx, "forbidden",
					"role", string(role),
					"operation", string(op),
					"request_id", requestcontext.RequestID(ctx),
				)
				writeAuthError(w, http.StatusForbidden, "role lacks permission for this operation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	code := "unauthorized"
	if status == http.StatusForbidden {
		code = "forbidden"
	}
	_, _ = w.Write([]byte(`{"error":"` + code + `","message":"` + message + `"}`))
}
