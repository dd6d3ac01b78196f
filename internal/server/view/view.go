// Package view renders the HTML pages from templates embedded in the binary.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Each page is parsed together with the shared layout so pages can override
// the layout's content block without clashing with each other.
var pageFiles = []string{
	"home.html",
	"result.html",
	"review.html",
	"history.html",
	"chat.html",
}

var funcs = template.FuncMap{
	"timefmt": func(t time.Time) string {
		return t.Local().Format("2006-01-02 15:04:05")
	},
	"preview": func(s string) string {
		const max = 200
		// Truncate on a rune boundary so multibyte input stays valid UTF-8.
		runes := []rune(s)
		if len(runes) > max {
			return string(runes[:max]) + "..."
		}
		return s
	},
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses all embedded page templates.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		tmpl, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page to w with the given status code. The page is
// executed into a buffer first so a template error never produces a
// half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("failed to render page %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}
