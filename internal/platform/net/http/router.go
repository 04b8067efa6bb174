package http

import "net/http"

// Handler is the handler shape every route registers
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against. It keeps chi out of module code
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h http.Handler)

	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux is the assembled handler, for servers and tests
	Mux() http.Handler
}
