package handler

import (
	"net/http"

	"github.com/mcoot/gamestore/internal/web/middleware"
)

// HomeHandler handles the site root
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home sends logged in users to the catalog and everyone else to login
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/games", http.StatusSeeOther)
}
