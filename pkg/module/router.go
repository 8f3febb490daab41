package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by first path segment and
// falls back to a native mux for everything else.
type Router struct {
	native  *http.ServeMux
	modules map[string]*Module
	root    *Module
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		native:  http.NewServeMux(),
		modules: make(map[string]*Module),
	}
}

// HandleNative registers a handler on the native mux using ServeMux patterns.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount attaches m to the router. Mounting the same prefix twice panics.
func (r *Router) Mount(m *Module) {
	if m.prefix == Root {
		if r.root != nil {
			panic("module: root module already mounted")
		}
		r.root = m
		r.native.HandleFunc("/", m.Serve)
		return
	}

	if _, ok := r.modules[m.prefix]; ok {
		panic("module: prefix already mounted: " + m.prefix)
	}
	r.modules[m.prefix] = m
}

// Mounted reports the number of mounted modules.
func (r *Router) Mounted() int {
	n := len(r.modules)
	if r.root != nil {
		n++
	}
	return n
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		if path := normalizePath(req.URL.Path); path != req.URL.Path {
			req = req.Clone(req.Context())
			req.URL.Path = path
		}
		m.Serve(w, req)
		return
	}

	r.native.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	rest := path[1:]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return "/" + rest
}

func normalizePath(path string) string {
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return strings.TrimSuffix(path, "/")
	}
	return path
}
