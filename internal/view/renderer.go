package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded stylesheet directory for e.StaticFS.
func Static() fs.FS {
	return echo.MustSubFS(staticFS, "static")
}

// Renderer implements echo.Renderer.  Each page template is parsed together
// with the shared layout so pages can all define the same "content" block.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses layout.html plus every other template in templates/.
// The view name is the file name without extension.
func NewRenderer() (*Renderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, e := range entries {
		if e.IsDir() || e.Name() == "layout.html" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		t, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustRenderer is NewRenderer that panics on a malformed template.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes the named view inside the layout.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
