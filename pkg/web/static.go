package web

import (
	"bytes"
	"io/fs"
	"net/http"
	"path"
	"time"
)

// Route is a method, ServeMux pattern, and handler triple.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// PublicFile serves a single file from subdir of fsys.
func PublicFile(fsys fs.FS, subdir, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ServeEmbeddedFile(w, r, fsys, path.Join(subdir, name))
	}
}

// PublicFileRoutes builds one GET route per file, served at the root.
func PublicFileRoutes(fsys fs.FS, subdir string, files ...string) []Route {
	routes := make([]Route, 0, len(files))
	for _, f := range files {
		routes = append(routes, Route{
			Method:  "GET",
			Pattern: "/" + f,
			Handler: PublicFile(fsys, subdir, f),
		})
	}
	return routes
}

// ServeEmbeddedFile writes name from fsys, or 404 if it does not exist.
func ServeEmbeddedFile(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, path.Base(name), time.Time{}, bytes.NewReader(data))
}
