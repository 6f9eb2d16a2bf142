// Package middleware provides interceptors for the JSON-RPC request path.
package middleware

import (
	"context"
	"encoding/json"

	"github.com/hedeqiang/courier/transport"
)

// Handler sends a JSON-RPC request and returns its raw result.
type Handler func(ctx context.Context, req *transport.Request) (json.RawMessage, error)

// Middleware wraps a Handler, adding cross-cutting behavior. A middleware may
// rewrite the request in place before calling next, or return a result
// without calling next at all, short-circuiting the rest of the chain.
type Middleware interface {
	// Wrap returns a new Handler that decorates the given inner handler.
	Wrap(next Handler) Handler
}

// Chain composes multiple middlewares into a single Handler, applying them in
// the order provided (first middleware is outermost).
func Chain(handler Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i].Wrap(handler)
	}
	return handler
}

// Func adapts a plain function to the Middleware interface.
type Func func(next Handler) Handler

// Wrap implements Middleware.
func (f Func) Wrap(next Handler) Handler {
	return f(next)
}
