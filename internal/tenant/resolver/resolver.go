// Package resolver attributes a request to a tenant.
//
// Two modes:
//
//	slug   – path-based multi-tenancy (/t/{slug} reached directly); identity
//	         comes from the provider's tenant endpoint.
//	domain – the edge-propagated domain is run through the settings cascade
//	         and the tri-state result becomes flags on the record.
//
// Resolve never returns an error.  Every failure is a flag on the Record.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/yanizio/newsroom/internal/provider"
	"github.com/yanizio/newsroom/internal/settings"
	"github.com/yanizio/newsroom/internal/tenant"
	"github.com/yanizio/newsroom/internal/theme"
)

// Tenants looks a tenant up by slug.
type Tenants interface {
	TenantBySlug(ctx context.Context, slug string) (provider.Tenant, error)
}

// Settings is the part of *settings.Cascade the resolver uses.
type Settings interface {
	ForRequest(ctx context.Context) settings.Result
	GetEffectiveSettings(ctx context.Context, domain string) settings.Result
}

// Resolver attributes requests to tenants.  It is safe for concurrent use.
type Resolver struct {
	tenants  Tenants
	settings Settings
}

// New returns a Resolver reading identities from t and settings from s.
func New(t Tenants, s Settings) *Resolver {
	return &Resolver{tenants: t, settings: s}
}

// Resolve returns the tenant for the request in ctx.  A non-empty
// slugOverride selects slug mode.
func (r *Resolver) Resolve(ctx context.Context, slugOverride string) tenant.Record {
	rec, _ := r.ResolveWithSettings(ctx, slugOverride)
	return rec
}

// ResolveWithSettings is Resolve plus the settings it was derived from, so
// page handlers do not fetch twice.
func (r *Resolver) ResolveWithSettings(ctx context.Context, slugOverride string) (tenant.Record, settings.Result) {
	if slugOverride != "" {
		return r.bySlug(ctx, slugOverride)
	}
	return r.byDomain(ctx)
}

func (r *Resolver) byDomain(ctx context.Context) (tenant.Record, settings.Result) {
	res := r.settings.ForRequest(ctx)
	edge := tenant.EdgeFrom(ctx)

	var d tenant.Domain
	if edge != nil {
		d = edge.Domain
	}

	switch res.State() {
	case settings.StateDomainNotLinked:
		return tenant.Record{IsDomainNotLinked: true, Name: d.String(), Domain: d}, res
	case settings.StateHealthy:
		return fromSettings(res.Settings(), edge), res
	default:
		return tenant.Record{IsAPIError: true, Domain: d}, res
	}
}

// fromSettings reads identity from the payload, falling back to what the
// edge knew.
func fromSettings(e *settings.Effective, edge *tenant.Edge) tenant.Record {
	rec := tenant.Record{
		ID:       e.TenantID(),
		Slug:     e.TenantSlug(),
		Name:     e.TenantName(),
		ThemeKey: theme.Coerce(e.ThemeKey()),
	}
	if edge != nil {
		rec.Domain = edge.Domain
		if rec.Slug == "" {
			rec.Slug = edge.Slug
		}
	}
	if rec.Name == "" {
		rec.Name = e.SiteName()
	}
	return rec
}

func (r *Resolver) bySlug(ctx context.Context, slug string) (tenant.Record, settings.Result) {
	t, err := r.lookup(ctx, slug)
	if err != nil {
		zap.L().Warn("tenant lookup by slug failed", zap.String("slug", slug), zap.Error(err))
		return tenant.Record{IsAPIError: true}, settings.Failed(err)
	}

	res := r.slugSettings(ctx, t)
	key := t.ThemeKey
	if key == "" && res.Settings() != nil {
		key = res.Settings().ThemeKey()
	}
	rec := tenant.Record{
		ID:       t.ID,
		Slug:     t.Slug,
		Name:     t.Name,
		ThemeKey: theme.Coerce(key),
	}
	if rec.Slug == "" {
		rec.Slug = slug
	}
	return rec, res
}

// lookup shields callers from a panicking provider.
func (r *Resolver) lookup(ctx context.Context, slug string) (t provider.Tenant, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("resolver: provider panic: %v", p)
		}
	}()
	return r.tenants.TenantBySlug(ctx, slug)
}

// slugSettings borrows the tenant's primary-domain settings for branding.
// Domain-level degraded states do not apply in slug mode, so when they are
// unavailable a minimal document is built from the identity alone.
func (r *Resolver) slugSettings(ctx context.Context, t provider.Tenant) settings.Result {
	if t.Domain != "" {
		if res := r.settings.GetEffectiveSettings(ctx, t.Domain); res.State() == settings.StateHealthy {
			return res
		}
	}
	doc, _ := json.Marshal(map[string]any{
		"tenant":   map[string]string{"id": t.ID, "slug": t.Slug, "name": t.Name},
		"branding": map[string]string{"siteName": t.Name},
		"theme":    map[string]string{"key": t.ThemeKey},
	})
	return settings.Healthy(settings.NewEffective(doc))
}
