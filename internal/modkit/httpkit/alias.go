// Package httpkit is what modules use to mount handlers. They never import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "servicehistory/internal/platform/net/http"
	"servicehistory/internal/platform/net/http/bind"
)

type (
	// Response lets a handler pick a status other than 200
	Response = phttp.Response

	// Handler is what Router methods accept
	Handler = phttp.Handler

	// Router is the platform router
	Router = phttp.Router
)

// WriteJSON writes v as JSON with status, for routes that keep their own wire format
func WriteJSON(w http.ResponseWriter, status int, v any) { phttp.JSON(w, status, v) }

// JSON binds and validates a T body then wraps the handler result in the envelope.
// opts overrides the binder defaults
func JSON[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return phttp.Error(err)
		}
		return respond(fn(r, in))
	})
}

// Call adapts a handler that takes no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response { return respond(fn(r)) })
}

// Get mounts fn on GET path through Call
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, Call(fn))
}

// respond passes a Response through untouched and wraps anything else as data
func respond(out any, err error) phttp.Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(phttp.Response); ok {
		return resp
	}
	return phttp.OK(out)
}
