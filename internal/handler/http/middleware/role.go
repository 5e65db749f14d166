package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-report-engine/internal/handler/http/response"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester, ok := RequesterFromContext(r.Context())
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !user.HasPermission(requester.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, requester.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
