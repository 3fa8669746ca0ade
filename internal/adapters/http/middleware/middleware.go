// Package middleware holds the net/http middleware stack.
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain applies middlewares in the order they were added; the first one is
// the outermost.
type Chain struct {
	middlewares []Middleware
}

func New() *Chain {
	return &Chain{}
}

func (c *Chain) Use(m Middleware) *Chain {
	c.middlewares = append(c.middlewares, m)
	return c
}

func (c *Chain) Then(h http.Handler) http.Handler {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h
}

func (c *Chain) Apply(mux *http.ServeMux) http.Handler {
	return c.Then(mux)
}
