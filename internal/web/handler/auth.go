package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/services/auth"
	"github.com/mcoot/gamestore/internal/services/storefront"
	"github.com/mcoot/gamestore/internal/web/middleware"
	"github.com/mcoot/gamestore/internal/web/templates/pages"
)

// AuthHandler handles login, signup and logout
type AuthHandler struct {
	storefront      *storefront.Service
	authService     *auth.Service
	sessionDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(storefront *storefront.Service, authService *auth.Service, sessionDuration time.Duration) *AuthHandler {
	return &AuthHandler{
		storefront:      storefront,
		authService:     authService,
		sessionDuration: sessionDuration,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		// Already logged in, go to the catalog
		http.Redirect(w, r, "/games", http.StatusSeeOther)
		return
	}

	render(w, r, http.StatusOK, pages.Login(pages.LoginData{
		PageData: pageData(r, "Log in"),
		Next:     r.URL.Query().Get("next"),
	}))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "", "")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	session, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		h.renderLoginError(w, r, model.UserMessage(err), email, next)
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, "success", storefront.MsgLoggedIn+" Welcome, "+session.User.Name+".")

	// Redirect to original destination or the catalog
	if isLocalPath(next) {
		http.Redirect(w, r, next, http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/games", http.StatusSeeOther)
	}
}

// SignupPage renders the account creation page
func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, "/games", http.StatusSeeOther)
		return
	}

	render(w, r, http.StatusOK, pages.Signup(pages.SignupData{
		PageData: pageData(r, "Sign up"),
	}))
}

// Signup handles signup form submission. On success the user is sent to
// log in; no session is created.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderSignupError(w, r, "Invalid form data", pages.SignupData{})
		return
	}

	in := storefront.RegisterInput{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
		DOB:      strings.TrimSpace(r.FormValue("dob")),
	}

	if _, err := h.storefront.Register(r.Context(), in); err != nil {
		h.renderSignupError(w, r, model.UserMessage(err), pages.SignupData{
			Username: in.Username,
			Email:    in.Email,
			DOB:      in.DOB,
		})
		return
	}

	middleware.SetFlash(w, "success", storefront.MsgRegistered)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout ends the session and returns to the login page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.GetToken(r.Context()); token != "" {
		h.authService.InvalidateSession(token)
	}

	// Clear session cookie
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email, next string) {
	render(w, r, http.StatusOK, pages.Login(pages.LoginData{
		PageData: pageData(r, "Log in"),
		Email:    email,
		Error:    errorMsg,
		Next:     next,
	}))
}

func (h *AuthHandler) renderSignupError(w http.ResponseWriter, r *http.Request, errorMsg string, data pages.SignupData) {
	data.PageData = pageData(r, "Sign up")
	data.Error = errorMsg
	render(w, r, http.StatusOK, pages.Signup(data))
}

// isLocalPath reports whether next is a path on this site. Browsers treat a
// backslash like a slash, so "/\host" is rejected along with "//host".
func isLocalPath(next string) bool {
	if !strings.HasPrefix(next, "/") || strings.Contains(next, "\\") {
		return false
	}
	u, err := url.Parse(next)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && !strings.HasPrefix(next, "//")
}
