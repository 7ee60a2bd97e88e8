package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireRole ensures the authenticated user carries one of the allowed roles.
func RequireRole(logger *zap.Logger, allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok {
				logger.Warn("Role not found in context")
				respondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			for _, allowedRole := range allowed {
				if role == allowedRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("User role not authorized",
				zap.String("role", role),
				zap.Strings("allowed_roles", allowed),
			)
			respondWithError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

// RequireAdmin gates catalog-management endpoints.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, "admin")
}
