package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/services/storefront"
	"github.com/mcoot/gamestore/internal/web/middleware"
	"github.com/mcoot/gamestore/internal/web/templates/pages"
)

// CatalogHandler handles browsing, purchasing and the library
type CatalogHandler struct {
	storefront *storefront.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(storefront *storefront.Service) *CatalogHandler {
	return &CatalogHandler{storefront: storefront}
}

// Games renders the catalog. ?q= filters by name and ?game=ID opens the
// detail panel.
func (h *CatalogHandler) Games(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	data := pages.CatalogData{
		PageData: pageData(r, "Games"),
		Heading:  "All games",
		Query:    query,
	}

	if query == "" {
		data.Games = h.storefront.ListGames(ctx)
	} else {
		data.Heading = "Results for \"" + query + "\""
		games, err := h.storefront.SearchGames(ctx, query)
		if err != nil {
			data.Error = model.UserMessage(err)
		}
		data.Games = games
	}

	if raw := r.URL.Query().Get("game"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		detail, ok := h.storefront.GetGameDetails(ctx, model.GameID(id))
		if err != nil || !ok {
			data.Error = "Could not load details for the selected game."
		} else {
			data.Selected = detail
		}
	}

	render(w, r, http.StatusOK, pages.Catalog(data))
}

// PurchasePage renders the confirmation step for buying a game
func (h *CatalogHandler) PurchasePage(w http.ResponseWriter, r *http.Request) {
	detail, ok := h.lookup(w, r)
	if !ok {
		return
	}

	render(w, r, http.StatusOK, pages.Purchase(pages.PurchaseData{
		PageData: pageData(r, "Confirm purchase"),
		Game:     detail,
	}))
}

// Purchase buys the game once the user has confirmed
func (h *CatalogHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := "/games?game=" + strconv.FormatInt(id, 10)

	if err := r.ParseForm(); err != nil || r.FormValue("confirm") != "yes" {
		middleware.SetFlash(w, "info", "Purchase cancelled.")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	if err := h.storefront.Purchase(r.Context(), user.ID, model.GameID(id)); err != nil {
		middleware.SetFlash(w, "error", model.UserMessage(err))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", storefront.MsgPurchased)
	http.Redirect(w, r, "/library", http.StatusSeeOther)
}

// Library renders the user's owned games
func (h *CatalogHandler) Library(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	items, err := h.storefront.Library(r.Context(), user.ID)
	if err != nil {
		middleware.SetFlash(w, "error", model.UserMessage(err))
		http.Redirect(w, r, "/games", http.StatusSeeOther)
		return
	}

	render(w, r, http.StatusOK, pages.Library(pages.LibraryData{
		PageData: pageData(r, "Library"),
		Items:    items,
	}))
}

// Publisher lists the games of one publisher
func (h *CatalogHandler) Publisher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	games, err := h.storefront.GamesByPublisher(r.Context(), model.PublisherID(id))
	h.renderListing(w, r, "Games by this publisher", games, err)
}

// Developer lists the games of one developer
func (h *CatalogHandler) Developer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	games, err := h.storefront.GamesByDeveloper(r.Context(), model.DeveloperID(id))
	h.renderListing(w, r, "Games by this developer", games, err)
}

func (h *CatalogHandler) renderListing(w http.ResponseWriter, r *http.Request, heading string, games []model.GameSummary, err error) {
	data := pages.CatalogData{
		PageData: pageData(r, heading),
		Heading:  heading,
		Games:    games,
	}
	if err != nil {
		data.Error = model.UserMessage(err)
	}
	render(w, r, http.StatusOK, pages.Catalog(data))
}

func (h *CatalogHandler) lookup(w http.ResponseWriter, r *http.Request) (*model.GameDetail, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	detail, ok := h.storefront.GetGameDetails(r.Context(), model.GameID(id))
	if !ok {
		middleware.SetFlash(w, "error", model.UserMessage(model.ErrGameNotFound))
		http.Redirect(w, r, "/games", http.StatusSeeOther)
		return nil, false
	}
	return detail, true
}
