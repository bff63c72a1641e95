package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/services/auth"
)

// SessionCookieName names the cookie holding the session token
const SessionCookieName = "session"

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// GetUser retrieves the authenticated user from the request context
// Returns nil if no user is logged in
func GetUser(ctx context.Context) *model.SessionUser {
	user, _ := ctx.Value(userContextKey).(*model.SessionUser)
	return user
}

// GetToken returns the session token of the current request, if any
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// Auth returns middleware that requires a logged in user.
// Logged out visitors are sent to the login page.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, ok := withSession(r, authService)
			if !ok {
				// Store original URL to redirect back after login
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, _ := withSession(r, authService)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func withSession(r *http.Request, authService *auth.Service) (context.Context, bool) {
	ctx := r.Context()
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ctx, false
	}

	user, err := authService.CurrentUser(cookie.Value)
	if err != nil {
		return ctx, false
	}

	ctx = context.WithValue(ctx, userContextKey, &user)
	ctx = context.WithValue(ctx, tokenContextKey, cookie.Value)
	return ctx, true
}
