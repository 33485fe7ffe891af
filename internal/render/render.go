// Package render compiles stored page artifacts with pongo2 and executes them
// against per-request contexts.
package render

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/flosch/pongo2/v6"

	apperrors "github.com/skilltreedocs/skilltreedocs/pkg/errors"
)

//go:embed layouts/*.html
var layoutFS embed.FS

// Layout names available to stored artifacts through extends.
const (
	LayoutUser    = "user.html"
	LayoutDocs    = "docs.html"
	LayoutMissing = "missing.html"
)

// Context is the variable mapping a template is executed against.
type Context = pongo2.Context

// Engine holds the compiled page templates. Templates are registered once at
// startup and executed concurrently afterwards.
type Engine struct {
	set *pongo2.TemplateSet

	mu        sync.RWMutex
	templates map[string]*pongo2.Template
}

// New creates an Engine backed by the embedded layouts.
func New() (*Engine, error) {
	sub, err := fs.Sub(layoutFS, "layouts")
	if err != nil {
		return nil, err
	}
	return NewWithFS(sub)
}

// NewWithFS creates an Engine whose extends/include statements resolve
// against layouts.
func NewWithFS(layouts fs.FS) (*Engine, error) {
	loader, err := pongo2.NewHttpFileSystemLoader(http.FS(layouts), "")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeTemplateRender, "failed to create layout loader", err)
	}
	return &Engine{
		set:       pongo2.NewSet("skilltreedocs", loader),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Register compiles source under name, replacing any previous template.
func (e *Engine) Register(name, source string) error {
	tpl, err := e.set.FromString(source)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeTemplateRender,
			fmt.Sprintf("failed to compile template %s", name), err)
	}
	e.mu.Lock()
	e.templates[name] = tpl
	e.mu.Unlock()
	return nil
}

// Has reports whether a template is registered under name.
func (e *Engine) Has(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.templates[name]
	return ok
}

// Len returns the number of registered templates.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.templates)
}

// Render executes a registered template.
func (e *Engine) Render(name string, ctx Context) (string, error) {
	e.mu.RLock()
	tpl, ok := e.templates[name]
	e.mu.RUnlock()
	if !ok {
		return "", apperrors.ErrNotFound(fmt.Sprintf("template %s", name))
	}
	return execute(name, tpl, ctx)
}

// RenderLayout executes one of the layouts directly.
func (e *Engine) RenderLayout(name string, ctx Context) (string, error) {
	tpl, err := e.set.FromCache(name)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeTemplateRender,
			fmt.Sprintf("failed to load layout %s", name), err)
	}
	return execute(name, tpl, ctx)
}

func execute(name string, tpl *pongo2.Template, ctx Context) (string, error) {
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeTemplateRender,
			fmt.Sprintf("failed to render %s", name), err)
	}
	return out, nil
}

// TabTemplate is the template name for a package tab.
func TabTemplate(pkg, tab string) string {
	return "tab:" + pkg + "/" + tab
}

// SkillTemplate is the template name for a skill page.
func SkillTemplate(id string) string {
	return "skill:" + id
}
