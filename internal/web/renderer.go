// Package web holds the storefront's HTML templates and the gin renderer
// that serves them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
	"github.com/shopspring/decimal"

	"github.com/nexcart/storefront/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// ImageResolver turns a stored image name into a URL, or "" for none.
type ImageResolver interface {
	ImageURL(name string) string
}

// Renderer implements gin's render.HTMLRender. Each page is parsed on top of
// its own copy of the layout so pages can redefine the same blocks.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer(images ImageResolver) (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcMap(images)).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
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
		if _, err := page.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}

		r.pages[strings.TrimSuffix(path.Base(file), ".html")] = page
	}

	// Instance and the error handlers fall back to these.
	for _, name := range []string{"error", "404"} {
		if !r.Has(name) {
			return nil, fmt.Errorf("missing %s template", name)
		}
	}

	return r, nil
}

// Instance renders the named page (file name without extension).
func (r *Renderer) Instance(name string, data any) render.Render {
	page, ok := r.pages[name]
	if !ok {
		page = r.pages["error"]
	}

	return render.HTML{
		Template: page,
		Name:     "layout",
		Data:     data,
	}
}

// Has reports whether a page with this name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func funcMap(images ImageResolver) template.FuncMap {
	return template.FuncMap{
		"imageURL": func(p models.Product) string {
			return images.ImageURL(p.ImageName())
		},
		"money": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
		"initial": func(s string) string {
			for _, r := range s {
				return strings.ToUpper(string(r))
			}
			return "?"
		},
	}
}
