package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/newsroom/internal/provider"
	"github.com/yanizio/newsroom/internal/settings"
	"github.com/yanizio/newsroom/internal/tenant"
	"github.com/yanizio/newsroom/internal/tenant/resolver"
	"github.com/yanizio/newsroom/internal/theme"
)

func newTestRouter(t *testing.T, forceHTTPS bool) http.Handler {
	t.Helper()
	t.Setenv(tenant.LocalhostAliasEnv, "")

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get(tenant.HeaderTenantDomain) {
		case "kaburlutoday.com":
			_, _ = w.Write([]byte(`{"data":{"theme":{"key":"style1"},"branding":{"siteName":"Kaburlu Today"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"DOMAIN_NOT_LINKED"}`))
		}
	}))
	t.Cleanup(upstream.Close)

	prov, err := provider.New(provider.Options{BaseURL: upstream.URL, Timeout: time.Second})
	require.NoError(t, err)

	dir, err := tenant.NewDirectory([]tenant.Mapping{{Domain: "kaburlutoday.com", Slug: "kaburlu-today"}},
		"kaburlu-today", "kaburlutoday.com")
	require.NoError(t, err)

	themes, err := theme.NewRegistry(theme.DefaultFactories())
	require.NoError(t, err)

	return newRouter(routerOptions{
		Directory:      dir,
		Resolver:       resolver.New(prov, settings.NewCascade(prov)),
		Themes:         themes,
		ForceHTTPS:     forceHTTPS,
		RequestTimeout: 5 * time.Second,
	})
}

func do(h http.Handler, host, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Host = host
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Page(t *testing.T) {
	h := newTestRouter(t, false)

	rec := do(h, "www.kaburlutoday.com", "/article/budget-2025")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "s1-article")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "kaburlutoday.com", rec.Header().Get(tenant.HeaderTenantDomain))

	rec = do(h, "parked.example", "/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Operational(t *testing.T) {
	h := newTestRouter(t, true)

	rec := do(h, "kaburlutoday.com", "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code, "health checks are never redirected")
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(h, "kaburlutoday.com", "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "edge_requests_total")
}

func TestRouter_ForceHTTPS(t *testing.T) {
	h := newTestRouter(t, true)
	rec := do(h, "kaburlutoday.com", "/category/politics")
	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "https://kaburlutoday.com/category/politics", rec.Header().Get("Location"))
}
