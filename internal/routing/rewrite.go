// internal/routing/rewrite.go
//
// Edge rewriter: host → tenant → internal path.
//
// Context
// -------
// Public sites serve clean URLs ("/", "/article/x", "/category/y").  The
// page router only knows the internal tree "/t/{slug}/...".  Rewriter sits
// first in the chain, attributes the request to a domain and, for mapped
// domains and recognised shapes, rewrites the path.
//
// Workflow
// --------
//  1. Normalise r.Host (the only place in the module that reads it).
//  2. Directory lookup (localhost is substituted by the dev domain there).
//  3. Decide: rewrite or pass through.
//  4. Propagate a *tenant.Edge in the context and mirror the domain into the
//     X-Tenant-Domain request and response headers.
//
// Notes
// -----
// • Unmapped domains are never rejected; the settings provider gets the final
//   say on whether anyone owns them.
// • Anything that is not a public page shape (legal pages, assets, /api,
//   /t/..., /healthz) passes through untouched.

package routing

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/newsroom/internal/metrics"
	"github.com/yanizio/newsroom/internal/tenant"
)

// Directory is the lookup the rewriter needs; *tenant.Directory satisfies it.
type Directory interface {
	Lookup(d tenant.Domain) tenant.Lookup
}

// Decision is the outcome of Decide.
type Decision struct {
	Path      string
	Rewritten bool
}

// publicPrefixes are the shapes that live under /t/{slug}.
var publicPrefixes = []string{"/article/", "/category/"}

// Decide is the pure half of the rewriter.
func Decide(l tenant.Lookup, path string) Decision {
	if !l.Mapped || !isPublicShape(path) {
		return Decision{Path: path}
	}
	return Decision{Path: TenantPath(l.Slug, path), Rewritten: true}
}

func isPublicShape(path string) bool {
	if path == "/" {
		return true
	}
	for _, p := range publicPrefixes {
		if len(path) > len(p) && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Rewriter returns chi-compatible middleware.
func Rewriter(dir Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := tenant.Normalize(r.Host)
			l := dir.Lookup(host)
			d := Decide(l, r.URL.Path)

			edge := &tenant.Edge{
				Domain:      l.Domain,
				Slug:        l.Slug,
				Mapped:      l.Mapped,
				Local:       host.IsLocal(),
				Rewritten:   d.Rewritten,
				OriginalURI: r.URL.RequestURI(),
			}

			r = r.Clone(tenant.WithEdge(r.Context(), edge))
			r.Header.Set(tenant.HeaderTenantDomain, l.Domain.String())
			w.Header().Set(tenant.HeaderTenantDomain, l.Domain.String())

			switch {
			case d.Rewritten:
				r.URL.Path = d.Path
				r.URL.RawPath = ""
				metrics.EdgeRequestsTotal.WithLabelValues(metrics.EdgeRewritten).Inc()
			case !l.Mapped:
				metrics.EdgeRequestsTotal.WithLabelValues(metrics.EdgeUnmapped).Inc()
			default:
				metrics.EdgeRequestsTotal.WithLabelValues(metrics.EdgePassthrough).Inc()
			}

			zap.L().Debug("edge",
				zap.String("domain", l.Domain.String()),
				zap.String("slug", l.Slug),
				zap.Bool("mapped", l.Mapped),
				zap.String("from", edge.OriginalURI),
				zap.String("to", r.URL.Path))

			next.ServeHTTP(w, r)
		})
	}
}
