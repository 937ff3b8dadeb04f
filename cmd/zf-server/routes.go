package main

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	response "github.com/zf-go/response"
	"github.com/zf-go/response/view"
)

type app struct {
	store  view.Store
	engine *view.Engine
	rules  Rules
}

func (a *app) routes(config response.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	config.Router = r
	config.Views = a.engine

	r.Get("/", config.Handler(a.page("index")).ServeHTTP)
	r.Get("/pages/{name}", config.Handler(func(b *response.Builder) error {
		return a.page(chi.URLParam(b.Request(), "name"))(b)
	}).ServeHTTP)
	r.Get("/old", config.Handler(func(b *response.Builder) error {
		return b.Redirect("/", true)
	}).ServeHTTP)
	r.Get("/download/{name}", config.Handler(a.download).ServeHTTP)
	r.Get("/debug", config.Handler(func(b *response.Builder) error {
		if err := b.Trace(b.Request().Header); err != nil {
			return err
		}
		b.SetBody("traced", "text/plain", "")
		return nil
	}).ServeHTTP)
	r.NotFound(config.Handler(func(b *response.Builder) error {
		return b.NotFound("Not Found")
	}).ServeHTTP)

	return r
}

// page renders the named template, answering 304 when the client copy is current.
func (a *app) page(name string) response.HandlerFunc {
	return func(b *response.Builder) error {
		tmpl, ok, err := a.store.Get(name)
		if err != nil {
			return err
		}
		if !ok {
			return b.NotFound("Not Found")
		}
		if notModified, err := b.LastModified(tmpl.Modified); err != nil || notModified {
			return err
		}
		body, err := b.Render(name, map[string]any{
			"path": b.Request().URL.Path,
		})
		if err != nil {
			return err
		}
		b.SetBody(body, "", "")
		a.rules.Apply(b)
		return nil
	}
}

// download sends the source of a template as an attachment.
func (a *app) download(b *response.Builder) error {
	name := chi.URLParam(b.Request(), "name")
	tmpl, ok, err := a.store.Get(name)
	if err != nil {
		return err
	}
	if !ok {
		return b.NotFound("Not Found")
	}
	return b.Download([]byte(tmpl.Source), name+".html", int64(len(tmpl.Source)))
}

// seed stores templates, all marked as modified at the given time.
func seed(store view.Store, templates map[string]string, modified time.Time) error {
	for name, source := range templates {
		if err := store.Put(view.Template{Name: name, Modified: modified, Source: source}); err != nil {
			return err
		}
	}
	return nil
}
