package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"smartparking/internal/auth"
)

var testCookies = auth.Cookies{Name: "parking_token"}

func protectedHandler(called *bool, token *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*token = auth.SessionToken(r)
	})
}

func TestRequireSession(t *testing.T) {
	valid := signedToken(t, jwt.MapClaims{"sub": "1", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signedToken(t, jwt.MapClaims{"sub": "1", "exp": time.Now().Add(-time.Hour).Unix()})

	tests := []struct {
		name         string
		cookie       string
		wantRedirect bool
	}{
		{"no cookie redirects to auth", "", true},
		{"expired token redirects to auth", expired, true},
		{"valid token passes through", valid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var gotToken string
			handler := auth.RequireSession(testCookies)(protectedHandler(&called, &gotToken))

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: testCookies.Name, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if tt.wantRedirect {
				assert.False(t, called)
				assert.Equal(t, http.StatusFound, rec.Code)
				assert.Equal(t, "/auth", rec.Header().Get("Location"))
			} else {
				assert.True(t, called)
				assert.Equal(t, tt.cookie, gotToken)
			}
		})
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	valid := signedToken(t, jwt.MapClaims{"sub": "1", "exp": time.Now().Add(time.Hour).Unix()})

	var called bool
	var gotToken string
	handler := auth.RedirectIfAuthenticated(testCookies)(protectedHandler(&called, &gotToken))

	t.Run("logged-in user goes to dashboard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth", nil)
		req.AddCookie(&http.Cookie{Name: testCookies.Name, Value: valid})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})

	t.Run("anonymous user sees the auth page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.True(t, called)
	})
}

func TestCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	testCookies.Set(rec, "tok-123")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	token, err := testCookies.Token(req)
	assert.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestCookieClear(t *testing.T) {
	rec := httptest.NewRecorder()
	testCookies.Clear(rec)

	cookies := rec.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	}
}
