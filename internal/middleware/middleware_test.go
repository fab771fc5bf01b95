package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/newsroom/internal/requestinfo"
	"github.com/yanizio/newsroom/internal/routing"
	"github.com/yanizio/newsroom/internal/tenant"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
	_, _ = w.Write([]byte("brew"))
})

func withEdge(r *http.Request, e *tenant.Edge) *http.Request {
	return r.WithContext(tenant.WithEdge(r.Context(), e))
}

func TestForceHTTPS(t *testing.T) {
	mapped := &tenant.Edge{Domain: "kaburlutoday.com", Mapped: true, OriginalURI: "/article/x?y=1"}

	cases := []struct {
		name     string
		edge     *tenant.Edge
		mutate   func(*http.Request)
		code     int
		location string
	}{
		{"redirect", mapped, nil, http.StatusPermanentRedirect, "https://kaburlutoday.com/article/x?y=1"},
		{"tls", mapped, func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, http.StatusTeapot, ""},
		{"proxy tls", mapped, func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https") }, http.StatusTeapot, ""},
		{"unmapped", &tenant.Edge{Domain: "x.com"}, nil, http.StatusTeapot, ""},
		{"local", &tenant.Edge{Domain: "kaburlutoday.com", Mapped: true, Local: true}, nil, http.StatusTeapot, ""},
		{"no edge", nil, nil, http.StatusTeapot, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/t/kaburlu-today/article/x?y=1", nil)
			if tc.edge != nil {
				req = withEdge(req, tc.edge)
			}
			if tc.mutate != nil {
				tc.mutate(req)
			}
			rec := httptest.NewRecorder()
			ForceHTTPS(ok).ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}
}

func TestForceHTTPS_AfterRewriter(t *testing.T) {
	t.Setenv(tenant.LocalhostAliasEnv, "")
	dir, err := tenant.NewDirectory([]tenant.Mapping{
		{Domain: "kaburlutoday.com", Slug: "kaburlu-today"},
	}, "kaburlu-today", "kaburlutoday.com")
	require.NoError(t, err)
	h := routing.Rewriter(dir)(ForceHTTPS(ok))

	local := httptest.NewRecorder()
	h.ServeHTTP(local, httptest.NewRequest(http.MethodGet, "http://localhost:8080/article/x", nil))
	assert.Equal(t, http.StatusTeapot, local.Code)
	assert.Empty(t, local.Header().Get("Location"))

	public := httptest.NewRecorder()
	h.ServeHTTP(public, httptest.NewRequest(http.MethodGet, "http://kaburlutoday.com/article/x", nil))
	assert.Equal(t, http.StatusPermanentRedirect, public.Code)
	assert.Equal(t, "https://kaburlutoday.com/article/x", public.Header().Get("Location"))
}

func TestSecurity(t *testing.T) {
	h := Security(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rec.Header().Get("Strict-Transport-Security"), "max-age=")
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	defer undo()

	h := requestinfo.Enrich(AccessLog(ok))
	req := httptest.NewRequest(http.MethodGet, "/t/kaburlu-today", nil)
	req = withEdge(req, &tenant.Edge{Domain: "kaburlutoday.com", OriginalURI: "/"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, int64(4), fields["bytes"])
	assert.Equal(t, "kaburlutoday.com", fields["domain"])
	assert.Equal(t, "/", fields["uri"])
	assert.Contains(t, fields, "browser")
}
