package adapthttp

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// authMiddleware verifies the bearer token issued by the hosted identity
// provider and stores the token subject as the request's user id.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.disableAuth {
			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				userID = "test-user"
			}
			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
			return
		}

		if s.verifier == nil {
			http.Error(w, "auth not configured", http.StatusServiceUnavailable)
			return
		}

		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		idToken, err := s.verifier.Verify(r.Context(), raw)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), idToken.Subject)))
	})
}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// requestUserID returns the authenticated user id stored by authMiddleware.
func requestUserID(r *http.Request) string {
	if v, ok := r.Context().Value(userIDContextKey).(string); ok {
		return v
	}
	return ""
}
