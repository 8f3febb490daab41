// Package web provides infrastructure for serving server-rendered views with
// Go templates. Templates are parsed once at startup and cloned per view so
// each view can define its own "content" block, and views are declared as
// data so route tables stay static.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"
)

// Site carries process-wide values every view needs.
type Site struct {
	Name     string
	BasePath string
	// MountID is the id of the single element views render into.
	MountID string
	Refresh time.Duration
	Nav     []NavItem
}

// NavItem is one entry of the site navigation.
type NavItem struct {
	Path  string
	Title string
}

// RefreshSeconds returns Refresh rounded down to whole seconds.
func (s Site) RefreshSeconds() int {
	return int(s.Refresh / time.Second)
}

// ViewDef defines a view with its route, template file, title, and bundle name.
type ViewDef struct {
	Route    string
	Template string
	Title    string
	Bundle   string
}

// ViewData contains the data passed to view templates during rendering.
type ViewData struct {
	Site        Site
	Title       string
	Bundle      string
	CurrentPath string
	Query       map[string]string
	Data        any
	Err         string
}

// DataFunc loads the data a view renders.
type DataFunc func(r *http.Request) (any, error)

// ErrorFunc maps a DataFunc failure to the response status.
type ErrorFunc func(r *http.Request, err error) int

// TemplateSet holds pre-parsed templates keyed by view template name.
type TemplateSet struct {
	views   map[string]*template.Template
	site    Site
	onError ErrorFunc
}

// NewTemplateSet parses layouts and plugin partials once, then clones the
// result for every view and parses the view template into the clone.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir string, site Site, views []ViewDef, plugins ...Plugin) (*TemplateSet, error) {
	base := template.New("")
	for _, p := range plugins {
		if p.Funcs != nil {
			base = base.Funcs(p.Funcs)
		}
	}

	base, err := base.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	for _, p := range plugins {
		if p.Partials == nil {
			continue
		}
		if base, err = base.ParseFS(p.Partials, p.PartialGlob); err != nil {
			return nil, fmt.Errorf("parse %s partials: %w", p.Name, err)
		}
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]*template.Template, len(views))
	for _, v := range views {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err = t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		parsed[v.Template] = t
	}

	return &TemplateSet{
		views: parsed,
		site:  site,
		onError: func(*http.Request, error) int {
			return http.StatusInternalServerError
		},
	}, nil
}

// OnError sets the function that maps DataFunc failures to a response status.
func (ts *TemplateSet) OnError(fn ErrorFunc) {
	ts.onError = fn
}

// ErrorHandler returns an HTTP handler that renders an error view with the
// given status code.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ts.viewData(r, view)
		if err := ts.Render(w, status, layout, view.Template, data); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}

// PageHandler returns an HTTP handler that renders a view without data.
func (ts *TemplateSet) PageHandler(layout string, view ViewDef) http.HandlerFunc {
	return ts.ViewHandler(layout, view, nil)
}

// ViewHandler returns an HTTP handler that loads data with load and renders
// view. A failed load still renders the view with the status chosen by the
// OnError function and Err set to that status's text. The error itself stays
// with OnError.
func (ts *TemplateSet) ViewHandler(layout string, view ViewDef, load DataFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ts.viewData(r, view)
		status := http.StatusOK

		if load != nil {
			v, err := load(r)
			if err != nil {
				status = ts.onError(r, err)
				data.Err = http.StatusText(status)
			} else {
				data.Data = v
			}
		}

		if err := ts.Render(w, status, layout, view.Template, data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// Render executes the named layout for the given view template into a buffer
// and writes it with status. Nothing is written if execution fails.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layoutName, viewTemplate string, data ViewData) error {
	t, ok := ts.views[viewTemplate]
	if !ok {
		return fmt.Errorf("template not found: %s", viewTemplate)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutName, data); err != nil {
		return fmt.Errorf("execute %s: %w", viewTemplate, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (ts *TemplateSet) viewData(r *http.Request, view ViewDef) ViewData {
	query := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	return ViewData{
		Site:        ts.site,
		Title:       view.Title,
		Bundle:      view.Bundle,
		CurrentPath: r.URL.Path,
		Query:       query,
	}
}
