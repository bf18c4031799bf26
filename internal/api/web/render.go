// Package web renders the HTML pages of the booking site.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/agenda/internal/api/flash"
	"github.com/sirpyerre/agenda/internal/core/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{
	"login.html",
	"cadastro.html",
	"dashboard.html",
	"detalhes.html",
	"admin.html",
	"error.html",
}

// View is the data every page template receives.
type View struct {
	Title string
	User  *domain.User
	Flash *flash.Message
	Data  any
}

// Renderer implements echo.Renderer over the embedded templates. Each page is
// parsed together with the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"datetime": func(t time.Time) string { return t.Format(domain.DateTimeLayout) },
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

// MustRenderer panics on template errors; the templates are embedded, so a
// failure is a build defect.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
