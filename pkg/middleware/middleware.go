// Package middleware provides composable HTTP middleware: request ids,
// request logging, CORS, and trailing-slash canonicalization.
package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// System accumulates middleware and applies it to a handler.
type System interface {
	Use(mw Middleware)
	Apply(handler http.Handler) http.Handler
}

type system struct {
	stack []Middleware
}

// New creates an empty middleware system.
func New() System {
	return &system{}
}

// Use appends mw to the stack. Middleware registered first runs first.
func (s *system) Use(mw Middleware) {
	s.stack = append(s.stack, mw)
}

// Apply wraps handler with the registered middleware.
func (s *system) Apply(handler http.Handler) http.Handler {
	for i := len(s.stack) - 1; i >= 0; i-- {
		handler = s.stack[i](handler)
	}
	return handler
}
