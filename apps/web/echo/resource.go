package echoweb

import (
	"io/ioutil"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/core/resource"
)

// resourcePage serves one entity behind the shared list+form template. Every
// mutation redirects back to the page so the table is always a fresh fetch,
// never a locally patched copy.
type resourcePage struct {
	path    string
	title   string
	manager *resource.Manager
	logger  core.Logger

	// options supplies choices for Select fields whose values are not fixed
	// in the schema. It sees the currently submitted values so dependent
	// selects can narrow their choices.
	options func(ctx echo.Context, current resource.Values) (map[string][]string, error)

	// readOnly pages list and delete but never create or edit.
	readOnly bool
}

type resourcePageData struct {
	Schema   resource.Schema
	Records  []resource.Record
	Form     resource.Values
	Errors   map[string]string
	Error    string
	EditID   string
	Options  map[string][]string
	ReadOnly bool
}

func (s *server) registerResource(g *echo.Group, p *resourcePage) {
	p.logger = s.opts.Logger
	ep := p.manager.Schema.Endpoints
	g.GET(p.path, p.list)
	if !p.readOnly {
		g.POST(p.path, p.save)
	}
	if ep.Delete != "" || ep.Item != "" {
		g.POST(p.path+"/delete/:id", p.delete)
	}
	if ep.Toggle != "" {
		g.POST(p.path+"/toggle/:id", p.toggle)
	}
}

func (p *resourcePage) list(ctx echo.Context) error {
	records, err := p.manager.List(reqCtx(ctx))
	if err != nil {
		// the page still renders, with an empty table and a notification
		p.logger.Error("listing "+p.manager.Schema.Name, err)
		return p.render(ctx, http.StatusOK, resourcePageData{
			Records: []resource.Record{},
			Form:    resource.Values{},
			Error:   upstreamErrMsg(err),
		})
	}

	form := resource.Values{}
	editID := ctx.QueryParam("edit")
	if editID != "" {
		for _, rec := range records {
			if rec.ID(p.manager.Schema.IDField) == editID {
				for _, f := range p.manager.Schema.Fields {
					if !f.WriteOnly {
						form[f.Name] = rec.StringOr(f.Name, "")
					}
				}
				break
			}
		}
	}

	return p.render(ctx, http.StatusOK, resourcePageData{
		Records: records,
		Form:    form,
		EditID:  editID,
	})
}

func (p *resourcePage) save(ctx echo.Context) error {
	vals, files, err := p.parseForm(ctx)
	if err != nil {
		return err
	}

	editID := ctx.FormValue("_id")
	if editID == "" {
		err = p.manager.Create(reqCtx(ctx), vals, files)
	} else {
		err = p.manager.Update(reqCtx(ctx), editID, vals, files)
	}
	if err != nil {
		data := resourcePageData{Form: vals, EditID: editID}
		if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
			data.Errors = vErr.FieldMap()
			data.Error = vErr.Error()
		} else {
			// backend failure: the entered values stay in the form and the
			// error surfaces as a page-local notification
			p.logger.Error("saving "+p.manager.Schema.Singular, err)
			data.Error = upstreamErrMsg(err)
		}
		if records, lErr := p.manager.List(reqCtx(ctx)); lErr == nil {
			data.Records = records
		}
		return p.render(ctx, http.StatusOK, data)
	}

	if editID == "" {
		setFlash(ctx, p.manager.Schema.Singular+" created")
	} else {
		setFlash(ctx, p.manager.Schema.Singular+" updated")
	}
	return ctx.Redirect(http.StatusSeeOther, p.path)
}

func (p *resourcePage) delete(ctx echo.Context) error {
	if err := p.manager.Delete(reqCtx(ctx), ctx.Param("id")); err != nil {
		p.logger.Error("deleting "+p.manager.Schema.Singular, err)
		setFlash(ctx, upstreamErrMsg(err))
	} else {
		setFlash(ctx, p.manager.Schema.Singular+" deleted")
	}
	return ctx.Redirect(http.StatusSeeOther, p.path)
}

func (p *resourcePage) toggle(ctx echo.Context) error {
	if err := p.manager.Toggle(reqCtx(ctx), ctx.Param("id")); err != nil {
		p.logger.Error("toggling "+p.manager.Schema.Singular, err)
		setFlash(ctx, upstreamErrMsg(err))
	} else {
		setFlash(ctx, p.manager.Schema.Singular+" status updated")
	}
	return ctx.Redirect(http.StatusSeeOther, p.path)
}

func (p *resourcePage) render(ctx echo.Context, code int, data resourcePageData) error {
	data.Schema = p.manager.Schema
	data.ReadOnly = p.readOnly
	if p.options != nil {
		opts, err := p.options(ctx, data.Form)
		if err != nil {
			p.logger.Error("loading options for "+p.manager.Schema.Name, err)
			if data.Error == "" {
				data.Error = upstreamErrMsg(err)
			}
			opts = nil
		}
		data.Options = opts
	}
	return renderPage(ctx, code, "resource", p.title, data)
}

func (p *resourcePage) parseForm(ctx echo.Context) (resource.Values, []resource.Upload, error) {
	vals := resource.Values{}
	var files []resource.Upload

	for _, f := range p.manager.Schema.Fields {
		if f.Kind == resource.File {
			fh, err := ctx.FormFile(f.Name)
			if err != nil {
				continue // absent file is handled by validation
			}
			src, err := fh.Open()
			if err != nil {
				return nil, nil, errors.Wrapf(err, "opening upload %q", f.Name)
			}
			content, err := ioutil.ReadAll(src)
			_ = src.Close()
			if err != nil {
				return nil, nil, errors.Wrapf(err, "reading upload %q", f.Name)
			}
			files = append(files, resource.Upload{
				FieldName: f.Name,
				Filename:  fh.Filename,
				Content:   content,
			})
			continue
		}
		vals[f.Name] = ctx.FormValue(f.Name)
	}
	return vals, files, nil
}
