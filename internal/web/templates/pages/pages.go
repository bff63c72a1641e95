// Package pages renders the storefront's web pages.
package pages

import (
	"embed"

	"github.com/a-h/templ"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/web/templates/layout"
)

//go:embed *.html
var files embed.FS

var (
	loginTmpl    = layout.Page(files, "login.html")
	signupTmpl   = layout.Page(files, "signup.html")
	catalogTmpl  = layout.Page(files, "catalog.html")
	purchaseTmpl = layout.Page(files, "purchase.html")
	libraryTmpl  = layout.Page(files, "library.html")
)

// LoginData holds data for the login page
type LoginData struct {
	layout.PageData
	Email string
	Error string
	Next  string
}

// Login renders the login page
func Login(data LoginData) templ.Component {
	return templ.FromGoHTML(loginTmpl, data)
}

// SignupData holds data for the signup page
type SignupData struct {
	layout.PageData
	Username string
	Email    string
	DOB      string
	Error    string
}

// Signup renders the account creation page
func Signup(data SignupData) templ.Component {
	return templ.FromGoHTML(signupTmpl, data)
}

// CatalogData holds data for the game list with an optional detail panel
type CatalogData struct {
	layout.PageData
	Heading  string
	Query    string
	Games    []model.GameSummary
	Selected *model.GameDetail
	Error    string
}

// Catalog renders a game listing
func Catalog(data CatalogData) templ.Component {
	return templ.FromGoHTML(catalogTmpl, data)
}

// PurchaseData holds data for the purchase confirmation step
type PurchaseData struct {
	layout.PageData
	Game *model.GameDetail
}

// Purchase renders the purchase confirmation
func Purchase(data PurchaseData) templ.Component {
	return templ.FromGoHTML(purchaseTmpl, data)
}

// LibraryData holds the user's owned games
type LibraryData struct {
	layout.PageData
	Items []model.LibraryItem
}

// Library renders the library page
func Library(data LibraryData) templ.Component {
	return templ.FromGoHTML(libraryTmpl, data)
}
