package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-report-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-report-engine/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type requesterKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the token's requester in the request context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		tokenType, ok := claims[jwt.ClaimType].(string)
		if !ok || tokenType != "access" {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		userID, ok := claims[jwt.ClaimUserID].(string)
		if !ok || userID == "" {
			response.HandleError(w, user.ErrRequesterIDRequired)
			return
		}
		role, _ := claims[jwt.ClaimRole].(string)

		ctx := context.WithValue(r.Context(), requesterKey{}, user.Requester{
			UserID: userID,
			Role:   user.Role(role),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequesterFromContext returns the requester stored by AuthRequired.
func RequesterFromContext(ctx context.Context) (user.Requester, bool) {
	requester, ok := ctx.Value(requesterKey{}).(user.Requester)
	return requester, ok
}

// WithRequester stores requester in ctx.
func WithRequester(ctx context.Context, requester user.Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, requester)
}
