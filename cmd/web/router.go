package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/newsroom/internal/middleware"
	"github.com/yanizio/newsroom/internal/page"
	"github.com/yanizio/newsroom/internal/requestinfo"
	"github.com/yanizio/newsroom/internal/routing"
)

type routerOptions struct {
	Directory      routing.Directory
	Resolver       page.Resolver
	Themes         page.Themes
	ForceHTTPS     bool
	RequestTimeout time.Duration
}

// newRouter builds the full middleware chain.  The rewriter runs before
// anything that looks at the tenant, and before chi matches a route.
func newRouter(o routerOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		routing.Rewriter(o.Directory),
		requestinfo.Enrich,
		middleware.AccessLog,
		chimw.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if o.ForceHTTPS {
			r.Use(middleware.ForceHTTPS)
		}
		r.Use(middleware.Security)
		if o.RequestTimeout > 0 {
			r.Use(chimw.Timeout(o.RequestTimeout))
		}
		r.Mount("/", page.New(o.Resolver, o.Themes).Routes())
	})
	return r
}
