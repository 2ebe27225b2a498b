package auth

import (
	"context"
	"net/http"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/handlers/response"
	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
)

type contextKey struct{}

// Middleware rejects requests without a valid bearer token and stores the caller's id in the context.
// The token query parameter is not accepted here.
func Middleware(tokens *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := tokens.UserIDFromHeader(r)
			if err != nil {
				response.JSON(w, http.StatusUnauthorized, response.ErrorResponse{Error: appErrors.PublicMessage(appErrors.ErrUnauthenticated)})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserIDFromContext returns the authenticated caller set by Middleware
func UserIDFromContext(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(contextKey{}).(int)
	if !ok || userID <= 0 {
		return 0, appErrors.ErrUnauthenticated
	}
	return userID, nil
}
