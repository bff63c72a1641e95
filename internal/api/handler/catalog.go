package handler

import (
	"net/http"

	"github.com/mcoot/gamestore/internal/api/middleware"
	"github.com/mcoot/gamestore/internal/api/response"
	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/services/storefront"
)

// CatalogHandler handles game browsing and purchasing
type CatalogHandler struct {
	storefront *storefront.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(storefront *storefront.Service) *CatalogHandler {
	return &CatalogHandler{storefront: storefront}
}

// List handles GET /api/v1/games, optionally filtered by ?q=
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.JSON(w, http.StatusOK, response.GameListFromModel(h.storefront.ListGames(r.Context())))
		return
	}

	games, err := h.storefront.SearchGames(r.Context(), query)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameListFromModel(games))
}

// Get handles GET /api/v1/games/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	detail, ok := h.storefront.GetGameDetails(r.Context(), model.GameID(id))
	if !ok {
		WriteError(w, model.ErrGameNotFound)
		return
	}
	response.JSON(w, http.StatusOK, response.GameDetailFromModel(detail))
}

// Purchase handles POST /api/v1/games/{id}/purchase
func (h *CatalogHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.storefront.Purchase(r.Context(), user.ID, model.GameID(id)); err != nil {
		WriteError(w, err)
		return
	}
	response.Created(w, "/api/v1/library", response.PurchaseResponse{
		GameID:  id,
		Message: storefront.MsgPurchased,
	})
}

// ByPublisher handles GET /api/v1/publishers/{id}/games
func (h *CatalogHandler) ByPublisher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	games, err := h.storefront.GamesByPublisher(r.Context(), model.PublisherID(id))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameListFromModel(games))
}

// ByDeveloper handles GET /api/v1/developers/{id}/games
func (h *CatalogHandler) ByDeveloper(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	games, err := h.storefront.GamesByDeveloper(r.Context(), model.DeveloperID(id))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameListFromModel(games))
}

// Library handles GET /api/v1/library
func (h *CatalogHandler) Library(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	items, err := h.storefront.Library(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LibraryFromModel(items))
}
