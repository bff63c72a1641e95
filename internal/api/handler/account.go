package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/gamestore/internal/api/middleware"
	"github.com/mcoot/gamestore/internal/api/request"
	"github.com/mcoot/gamestore/internal/api/response"
	"github.com/mcoot/gamestore/internal/services/auth"
	"github.com/mcoot/gamestore/internal/services/storefront"
)

// AccountHandler handles account endpoints
type AccountHandler struct {
	storefront  *storefront.Service
	authService *auth.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(storefront *storefront.Service, authService *auth.Service) *AccountHandler {
	return &AccountHandler{
		storefront:  storefront,
		authService: authService,
	}
}

// Register handles POST /api/v1/accounts/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	id, err := h.storefront.Register(r.Context(), storefront.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		DOB:      req.DOB,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/accounts/login", response.RegisterResponse{
		UserID:  int64(id),
		Message: storefront.MsgRegistered,
	})
}

// Login handles POST /api/v1/accounts/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/accounts/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.authService.InvalidateSession(session.Token)
	response.NoContent(w)
}

// GetMe handles GET /api/v1/accounts/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
