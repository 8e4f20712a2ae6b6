// Package api implements the showroom HTTP API using chi.
package api

import (
	"net/http"
)

// Readiness reports whether the catalog is available.
type Readiness interface {
	Ready() error
}

// RequireCatalog returns middleware that answers 503 while the catalog has
// not loaded, so no route renders against an empty store.
func RequireCatalog(rd Readiness) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := rd.Ready(); err != nil {
				writeError(w, "ready", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
