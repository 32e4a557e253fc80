package web

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{}

func init() {
	base := template.Must(template.ParseFS(templateFS, "templates/layout.html"))
	for _, name := range []string{"home", "list", "details", "form", "delete", "notfound"} {
		pages[name] = template.Must(template.Must(base.Clone()).ParseFS(templateFS, "templates/"+name+".html"))
	}
}

// component renders the named page inside the shared layout.
func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return pages[name].ExecuteTemplate(w, "layout", data)
	})
}

func HomePage(v HomeView) templ.Component         { return component("home", v) }
func ListPage(v ListView) templ.Component         { return component("list", v) }
func DetailsPage(v DetailsView) templ.Component   { return component("details", v) }
func FormPage(v FormView) templ.Component         { return component("form", v) }
func DeletePage(v DeleteView) templ.Component     { return component("delete", v) }
func NotFoundPage(v NotFoundView) templ.Component { return component("notfound", v) }
