// Package layout holds the page shell shared by every web page.
package layout

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/mcoot/gamestore/internal/model"
)

//go:embed layout.html
var files embed.FS

// FlashMessage is a one-shot notification shown at the top of a page
type FlashMessage struct {
	Type    string // "success", "error" or "info"
	Message string
}

// PageData is embedded in every page's data
type PageData struct {
	Title string
	User  *model.SessionUser
	Flash *FlashMessage
}

var funcs = template.FuncMap{
	"price": func(p float64) string {
		if p == 0 {
			return "Free"
		}
		return fmt.Sprintf("$%.2f", p)
	},
	"date": func(t time.Time) string {
		return t.Format(model.DateLayout)
	},
}

var base = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(files, "layout.html"))

// Page returns the layout combined with the named page template from fsys.
// The page must define a "content" block.
func Page(fsys fs.FS, name string) *template.Template {
	t := template.Must(base.Clone())
	return template.Must(t.ParseFS(fsys, name))
}
