// Package middleware holds small, composable HTTP wrappers that run after
// the edge rewriter.
package middleware

import (
	"net/http"

	"github.com/yanizio/newsroom/internal/tenant"
)

// ForceHTTPS wraps h.  Plain-HTTP requests for a mapped domain that did not
// arrive as localhost get a 308 to the same URL on https.  The target is built from the
// propagated domain and the pre-rewrite URI, never from r.Host.
// Everything else continues unchanged.
func ForceHTTPS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := tenant.EdgeFrom(r.Context())
		if r.TLS != nil || e == nil || !e.Mapped || e.Local ||
			r.Header.Get("X-Forwarded-Proto") == "https" {
			h.ServeHTTP(w, r)
			return
		}

		target := "https://" + e.Domain.String() + e.OriginalURI
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	})
}
