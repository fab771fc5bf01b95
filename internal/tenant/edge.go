// edge.go defines the propagation channel between the edge rewriter and
// everything downstream.
//
// The rewriter is the only code that reads the raw Host header.  It stores
// an *Edge in the request context and mirrors the domain into the
// X-Tenant-Domain header for proxies and sidecars.  Handlers, the resolver,
// and the settings cascade read the context value, never r.Host, and never
// the inbound header (a client could forge it).
package tenant

import "context"

// HeaderTenantDomain carries the resolved domain on requests and responses.
const HeaderTenantDomain = "X-Tenant-Domain"

// Edge is what the rewriter learned about a request.
type Edge struct {
	Domain      Domain `json:"domain"` // resolved domain, after localhost substitution
	Slug        string `json:"slug"`   // mapped slug, or the default slug when !Mapped
	Mapped      bool   `json:"mapped"`
	Local       bool   `json:"local"`       // raw Host was localhost, before substitution
	Rewritten   bool   `json:"rewritten"`   // path was rewritten to /t/{slug}/...
	OriginalURI string `json:"originalUri"` // request URI before any rewrite
}

type edgeKey struct{}

// WithEdge returns ctx carrying e.
func WithEdge(ctx context.Context, e *Edge) context.Context {
	return context.WithValue(ctx, edgeKey{}, e)
}

// EdgeFrom returns the Edge stored by the rewriter, or nil.
func EdgeFrom(ctx context.Context) *Edge {
	e, _ := ctx.Value(edgeKey{}).(*Edge)
	return e
}

// DomainFrom returns the propagated domain.  ok is false when the rewriter
// has not run.
func DomainFrom(ctx context.Context) (Domain, bool) {
	if e := EdgeFrom(ctx); e != nil {
		return e.Domain, true
	}
	return "", false
}
