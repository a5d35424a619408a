package handler

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"

	"github.com/gnanalytica/website/internal/core/domain"
)

const layoutFile = "layout.html"

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"year": func() int {
		return time.Now().Year()
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		r := []rune(s)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	},
	"servicesIn": func(services []domain.Service, category string) []domain.Service {
		out := make([]domain.Service, 0, len(services))
		for _, s := range services {
			if s.Category == category {
				out = append(out, s)
			}
		}
		return out
	},
}

// Renderer implements echo.Renderer over a shared layout. Each page file
// defines a "content" block and is parsed into its own clone of the layout,
// so pages never see each other's blocks.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses layout.html plus every other *.html file in fsys. Pages
// are addressed by file name without extension.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	layout, err := template.New("layout").Funcs(templateFuncs).ParseFS(fsys, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		page, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := page.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[strings.TrimSuffix(path.Base(file), ".html")] = page
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return page.ExecuteTemplate(w, "layout", data)
}

// Page is the view model handed to every template.
type Page struct {
	Title       string
	Description string
	Site        domain.SiteContent
	Session     *domain.Session
	CSRF        string
	Data        any
}
