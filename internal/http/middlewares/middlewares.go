// Package middlewares contiene los middlewares HTTP de portero.
package middlewares

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain aplica los middlewares en orden: el primero de la lista es el
// más externo.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
