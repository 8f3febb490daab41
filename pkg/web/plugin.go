package web

import (
	"html/template"
	"io/fs"
	"net/http"
)

// Plugin is a UI component library installed into a TemplateSet. It
// contributes template functions, partial templates, and static assets.
type Plugin struct {
	Name        string
	Funcs       template.FuncMap
	Partials    fs.FS
	PartialGlob string
	// Assets is rooted at the directory served under /dist/{Name}/.
	Assets fs.FS
}

// AssetPrefix returns the URL prefix the plugin's assets are served under.
func (p Plugin) AssetPrefix() string {
	return "/dist/" + p.Name + "/"
}

// AssetRoute returns the route serving the plugin's assets, or false when the
// plugin has none.
func (p Plugin) AssetRoute() (Route, bool) {
	if p.Assets == nil {
		return Route{}, false
	}

	prefix := p.AssetPrefix()
	handler := http.StripPrefix(prefix, http.FileServer(http.FS(p.Assets)))

	return Route{
		Method:  "GET",
		Pattern: prefix,
		Handler: handler.ServeHTTP,
	}, true
}
