// internal/page/handler.go
//
// Page entry points.
//
// Routes
// ------
//
//	/t/{tenant}                         home
//	/t/{tenant}/article/{slug}          article
//	/t/{tenant}/category/{slug}         category
//	/, /article/{slug}, /category/{slug} same, for unmapped domains
//	/{legal}                            closed legal-page set
//	/api/tenant                         resolved record as JSON
//
// Every page runs resolve → classify → render.  Tenant problems never
// become 500s: not-linked is a 404 page, provider trouble a 503 page with
// Retry-After, EPAPER a 200 explanatory page.
//
// A /t/{tenant} request the edge did not produce is path-based
// multi-tenancy and resolves by slug.
package page

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/newsroom/internal/head"
	"github.com/yanizio/newsroom/internal/metrics"
	"github.com/yanizio/newsroom/internal/settings"
	"github.com/yanizio/newsroom/internal/tenant"
	"github.com/yanizio/newsroom/internal/theme"
)

// LegalSlugs is the closed set of legal pages served at the site root.
var LegalSlugs = []string{
	"privacy-policy",
	"terms-and-conditions",
	"about-us",
	"contact-us",
	"disclaimer",
	"editorial-policy",
	"cookie-policy",
}

// Resolver is satisfied by *resolver.Resolver.
type Resolver interface {
	ResolveWithSettings(ctx context.Context, slugOverride string) (tenant.Record, settings.Result)
}

// Themes is satisfied by *theme.Registry.
type Themes interface {
	Select(raw string) theme.Renderer
}

// Handler serves tenant pages.  It holds no per-request state.
type Handler struct {
	resolver Resolver
	themes   Themes
}

// New returns a Handler that resolves with r and renders with t.
func New(r Resolver, t Themes) *Handler {
	return &Handler{resolver: r, themes: t}
}

// Routes returns a router with every page route mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/t/{tenant}", func(r chi.Router) {
		r.Get("/", h.tenantPage(theme.KindHome))
		r.Get("/article/{slug}", h.tenantPage(theme.KindArticle))
		r.Get("/category/{slug}", h.tenantPage(theme.KindCategory))
	})

	r.Get("/", h.domainPage(theme.KindHome))
	r.Get("/article/{slug}", h.domainPage(theme.KindArticle))
	r.Get("/category/{slug}", h.domainPage(theme.KindCategory))

	for _, s := range LegalSlugs {
		r.Get("/"+s, h.legalPage(s))
	}

	r.Get("/api/tenant", h.apiTenant)
	return r
}

// tenantPage serves the /t/{tenant} tree.
func (h *Handler) tenantPage(kind theme.PageKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, kind, slugOverride(r), chi.URLParam(r, "slug"))
	}
}

// domainPage serves clean paths, reached on unmapped domains.
func (h *Handler) domainPage(kind theme.PageKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, kind, "", chi.URLParam(r, "slug"))
	}
}

func (h *Handler) legalPage(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, theme.KindLegal, "", slug)
	}
}

// slugOverride is empty when the edge rewrote this request from a domain.
func slugOverride(r *http.Request) string {
	if e := tenant.EdgeFrom(r.Context()); e != nil && e.Rewritten {
		return ""
	}
	return chi.URLParam(r, "tenant")
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, kind theme.PageKind, override, slug string) {
	rec, res := h.resolver.ResolveWithSettings(r.Context(), override)
	st := Classify(rec, res)
	metrics.TenantResolutionTotal.WithLabelValues(st.String()).Inc()

	zap.L().Debug("page",
		zap.String("domain", rec.Domain.String()),
		zap.String("slug", rec.Slug),
		zap.String("state", st.String()),
		zap.String("kind", string(kind)))

	switch st {
	case RenderNotLinked:
		notLinked(w, rec.Domain.String())
		return
	case RenderTechnicalIssues:
		technicalIssues(w)
		return
	case EPaperBlocked:
		ePaper(w, rec.Domain.String())
		return
	}

	p := buildPage(kind, slug, rec, res.Settings())
	rdr := h.themes.Select(string(rec.ThemeKey))

	var buf bytes.Buffer
	if err := render(&buf, rdr, p); err != nil {
		zap.L().Error("theme render",
			zap.String("theme", string(rdr.Key())),
			zap.String("kind", string(kind)),
			zap.Error(err))
		technicalIssues(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func render(buf *bytes.Buffer, rdr theme.Renderer, p *theme.Page) error {
	switch p.Kind {
	case theme.KindArticle:
		return theme.Article(rdr).RenderArticle(buf, p)
	case theme.KindCategory:
		return theme.Category(rdr).RenderCategory(buf, p)
	case theme.KindLegal:
		return theme.Generic().RenderLegal(buf, p)
	default:
		return rdr.RenderHome(buf, p)
	}
}

// buildPage assembles the renderer input and seeds <head>.
func buildPage(kind theme.PageKind, slug string, rec tenant.Record, e *settings.Effective) *theme.Page {
	site := e.SiteName()
	if site == "" {
		site = rec.Name
	}

	hb := head.New()
	hb.SetTitle(site)
	hb.Meta(`<meta charset="utf-8">`)
	hb.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	hb.Meta(`<meta property="og:site_name" content="` + template.HTMLEscapeString(site) + `">`)
	hb.Favicon(e.FaviconURL())
	base := e.CanonicalBaseURL()
	if base != "" {
		hb.Canonical(base + publicPath(kind, slug))
	}
	if kind == theme.KindHome {
		if ld, err := websiteLD(site, base); err == nil {
			hb.JSONLD(ld)
		}
	}

	return &theme.Page{
		Kind:        kind,
		Slug:        slug,
		TenantSlug:  rec.Slug,
		SiteName:    site,
		LogoURL:     e.LogoURL(),
		Lang:        e.DefaultLanguage(),
		LayoutStyle: e.LayoutStyle(),
		Colors:      e.ThemeColors(),
		Head:        hb,
	}
}

// websiteLD is the schema.org WebSite document for a tenant's front page.
// json.Marshal escapes <, > and &, so the result is safe inside <script>.
func websiteLD(name, url string) (string, error) {
	b, err := json.Marshal(struct {
		Context string `json:"@context"`
		Type    string `json:"@type"`
		Name    string `json:"name"`
		URL     string `json:"url,omitempty"`
	}{"https://schema.org", "WebSite", name, url})
	return string(b), err
}

// publicPath is the clean URL a reader would share for this page.
func publicPath(kind theme.PageKind, slug string) string {
	switch kind {
	case theme.KindArticle:
		return "/article/" + slug
	case theme.KindCategory:
		return "/category/" + slug
	case theme.KindLegal:
		return "/" + slug
	}
	return "/"
}
