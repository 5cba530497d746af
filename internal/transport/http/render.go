package http

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed views/*.html
var viewsFS embed.FS

//go:embed public
var publicFS embed.FS

var pages = []string{"index.html", "ideias.html", "error.html"}

// Public holds the stylesheet and script served from the site root.
func Public() fs.FS {
	return echo.MustSubFS(publicFS, "public")
}

// Template implements echo.Renderer over the embedded views.
type Template struct {
	templates map[string]*template.Template
}

func NewTemplate() (*Template, error) {
	funcs := template.FuncMap{
		// stored text is already escaped once; undo it so html/template
		// escapes exactly once on output
		"text": html.UnescapeString,
		"date": func(t time.Time) string {
			return t.Format("02/01/2006")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	t := &Template{templates: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(viewsFS, "views/layout.html", "views/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		t.templates[page] = tmpl
	}

	return t, nil
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return tmpl.ExecuteTemplate(w, name, data)
}
