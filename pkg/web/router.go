package web

import "net/http"

// Router wraps http.ServeMux with a fallback for requests no pattern matches.
type Router struct {
	mux      *http.ServeMux
	fallback http.HandlerFunc
}

// NewRouter creates a Router without a fallback.
func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// Handle registers handler for pattern.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers handler for pattern.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// SetFallback sets the handler used when no registered pattern matches.
func (r *Router) SetFallback(handler http.HandlerFunc) {
	r.fallback = handler
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback != nil {
		if _, pattern := r.mux.Handler(req); pattern == "" {
			r.fallback(w, req)
			return
		}
	}
	r.mux.ServeHTTP(w, req)
}
