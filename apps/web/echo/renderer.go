package echoweb

import (
	"html/template"
	"io"
	"path/filepath"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/core/nav"
	"github.com/migeprof/fehub/core/session"
)

type renderer struct {
	templates map[string]*template.Template
}

var _ echo.Renderer = (*renderer)(nil)

// newRenderer parses every page under assets/templates/web against the shared
// base layout. Pages prefixed with "_" are partials and not addressable.
func newRenderer() *renderer {
	r := &renderer{templates: make(map[string]*template.Template)}

	root := filepath.Join(core.Conf.WorkDir, "assets", "templates", "web")
	base := filepath.Join(root, "_base.gohtml")
	pages, err := filepath.Glob(filepath.Join(root, "*.gohtml"))
	if err != nil {
		panic(errors.Wrap(err, "globbing page templates"))
	}

	funcs := template.FuncMap{
		"active": nav.Active,
	}

	for _, page := range pages {
		name := filepath.Base(page)
		if name[0] == '_' {
			continue
		}
		name = name[:len(name)-len(".gohtml")]
		tmpl, err := template.New("_base.gohtml").Funcs(funcs).ParseFiles(base, page)
		if err != nil {
			panic(errors.Wrapf(err, "parsing page template %q", name))
		}
		r.templates[name] = tmpl
	}
	return r
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("page template %q not found", name)
	}
	return errors.Wrapf(tmpl.Execute(w, data), "rendering %q", name)
}

// page is the envelope handed to every template.
type page struct {
	Title   string
	AppName string
	Session session.Session
	Links   []nav.Link
	Path    string
	CSRF    template.HTML
	Flash   string
	Data    interface{}
}

func renderPage(ctx echo.Context, code int, name, title string, data interface{}) error {
	sess := getContextSession(ctx)
	return ctx.Render(code, name, page{
		Title:   title,
		AppName: core.Conf.AppName,
		Session: sess,
		Links:   nav.LinksFor(sess.Role),
		Path:    ctx.Request().URL.Path,
		CSRF:    csrf.TemplateField(ctx.Request()),
		Flash:   popFlash(ctx),
		Data:    data,
	})
}
