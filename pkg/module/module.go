// Package module composes independently routed HTTP modules under
// single-segment path prefixes.
package module

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/crypto-monitor/pkg/middleware"
)

// Root is the prefix of a module that owns every path not claimed by a
// prefixed module or a native route.
const Root = "/"

// Module is an http.Handler mounted at a prefix with its own middleware stack.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New creates a module at prefix. The prefix must be Root or a single path
// segment with a leading slash, such as "/api". Invalid prefixes panic.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != "" {
		panic("module: " + err + ": " + prefix)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module's stack.
func (m *Module) Use(mw middleware.Middleware) {
	m.middleware.Use(mw)
}

// Handler returns the module router wrapped in its middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Serve strips the module prefix from the request path and dispatches to Handler.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	if m.prefix == Root {
		m.Handler().ServeHTTP(w, req)
		return
	}

	path := strings.TrimPrefix(req.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r := req.Clone(req.Context())
	r.URL.Path = path
	r.URL.RawPath = ""

	m.Handler().ServeHTTP(w, r)
}

func validatePrefix(prefix string) string {
	if prefix == Root {
		return ""
	}
	if prefix == "" {
		return "empty prefix"
	}
	if !strings.HasPrefix(prefix, "/") {
		return "prefix must start with /"
	}
	if strings.Count(prefix, "/") > 1 {
		return "prefix must be a single segment"
	}
	return ""
}
