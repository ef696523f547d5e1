package auth

import (
	"context"
	"net/http"
)

type contextKey string

const tokenKey contextKey = "sessionToken"

// RequireSession guards authenticated pages: a missing or expired token
// redirects to the auth page with no error shown. The token travels in the
// request context for handlers.
func RequireSession(cookies Cookies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cookies.Token(r)
			if err != nil || !TokenUsable(token) {
				cookies.Clear(w)
				http.Redirect(w, r, "/auth", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenKey, token)))
		})
	}
}

// RedirectIfAuthenticated sends an already logged-in user from the auth page
// straight to the dashboard.
func RedirectIfAuthenticated(cookies Cookies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, err := cookies.Token(r); err == nil && TokenUsable(token) {
				http.Redirect(w, r, "/dashboard", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionToken returns the bearer token RequireSession stored on the request.
func SessionToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}
