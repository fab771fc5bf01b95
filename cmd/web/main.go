// cmd/web/main.go
//
// Newsroom – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → conf/.env via config).
//
//  2. Load and validate configuration, start the daily rotating logger
//     (tees to console when running in a TTY).
//
//  3. Resolve vault: references (provider token, database DSN).
//
//  4. Build the tenant directory once, from config or the control-plane
//     database, and publish its size.
//
//  5. Wire provider client → settings cascade → resolver → theme registry.
//
//  6. Serve the chi router until SIGINT/SIGTERM, then drain.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yanizio/newsroom/internal/config"
	"github.com/yanizio/newsroom/internal/database"
	"github.com/yanizio/newsroom/internal/logger"
	"github.com/yanizio/newsroom/internal/metrics"
	"github.com/yanizio/newsroom/internal/provider"
	"github.com/yanizio/newsroom/internal/requestinfo"
	"github.com/yanizio/newsroom/internal/server"
	"github.com/yanizio/newsroom/internal/settings"
	"github.com/yanizio/newsroom/internal/tenant"
	"github.com/yanizio/newsroom/internal/tenant/meta"
	"github.com/yanizio/newsroom/internal/tenant/resolver"
	"github.com/yanizio/newsroom/internal/theme"
	"github.com/yanizio/newsroom/internal/vault"
)

const serverEnvPath = "/usr/local/etc/newsroom/global.env"

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "newsroom:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Config + logger ─────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Paths.Root, cfg.Log.Level, runningInTTY())
	if err != nil {
		return fmt.Errorf("start logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	//
	// ── 2.  Secrets ─────────────────────────────────────────────────────
	//
	token, dsn, err := resolveSecrets(ctx, cfg)
	if err != nil {
		return err
	}

	//
	// ── 3.  Tenant directory ────────────────────────────────────────────
	//
	mappings, err := loadMappings(ctx, cfg, dsn)
	if err != nil {
		return err
	}
	dir, err := tenant.NewDirectory(mappings, cfg.Tenancy.DefaultSlug, cfg.Tenancy.DevDomain)
	if err != nil {
		return fmt.Errorf("tenant directory: %w", err)
	}
	metrics.DirectoryEntries.Set(float64(dir.Len()))
	log.Infow("tenant directory online", "source", cfg.Tenancy.Source, "domains", dir.Len())
	for _, m := range dir.Entries() {
		log.Debugw("domain mapped", "domain", m.Domain, "slug", m.Slug)
	}

	if err := requestinfo.InitGeo(cfg.GeoIP.Path); err != nil {
		log.Warnw("geoip disabled", "err", err)
	}
	defer requestinfo.CloseGeo()

	//
	// ── 4.  Engine ──────────────────────────────────────────────────────
	//
	prov, err := provider.New(provider.Options{
		BaseURL:  cfg.Provider.BaseURL,
		Token:    token,
		Timeout:  cfg.Provider.Timeout,
		RetryMax: cfg.Provider.RetryMax,
	})
	if err != nil {
		return fmt.Errorf("provider client: %w", err)
	}

	sentinels := make([]settings.Sentinel, 0, len(cfg.Settings.Sentinels))
	for _, s := range cfg.Settings.Sentinels {
		sentinels = append(sentinels, settings.Sentinel{Marker: s.Marker, Owner: s.Owner})
	}
	cascade := settings.NewCascade(prov, sentinels...)

	themes, err := theme.NewRegistry(theme.DefaultFactories())
	if err != nil {
		return fmt.Errorf("theme registry: %w", err)
	}

	//
	// ── 5.  Serve ───────────────────────────────────────────────────────
	//
	h := newRouter(routerOptions{
		Directory:      dir,
		Resolver:       resolver.New(prov, cascade),
		Themes:         themes,
		ForceHTTPS:     cfg.HTTP.ForceHTTPS,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})
	srv := server.New(cfg.HTTP.ListenAddr, h, cfg.HTTP.RequestTimeout)
	return server.ListenAndRun(ctx, srv)
}

// resolveSecrets swaps vault: references for their values.  Vault is only
// contacted when a reference is present.
func resolveSecrets(ctx context.Context, cfg *config.Config) (token, dsn string, err error) {
	token, dsn = cfg.Provider.Token, cfg.Database.DSN
	if !vault.IsRef(token) && !vault.IsRef(dsn) {
		return token, dsn, nil
	}

	vc, err := vault.New(ctx)
	if err != nil {
		return "", "", fmt.Errorf("vault: %w", err)
	}
	if token, err = vc.Resolve(ctx, token); err != nil {
		return "", "", fmt.Errorf("provider.token: %w", err)
	}
	if dsn, err = vc.Resolve(ctx, dsn); err != nil {
		return "", "", fmt.Errorf("database.dsn: %w", err)
	}
	zap.L().Info("secrets resolved from vault")
	return token, dsn, nil
}

// loadMappings reads the domain table from config or, for the database
// source, once from tenant_domain.  The connection is closed afterwards.
func loadMappings(ctx context.Context, cfg *config.Config, dsn string) ([]tenant.Mapping, error) {
	if cfg.Tenancy.Source != config.SourceDatabase {
		out := make([]tenant.Mapping, 0, len(cfg.Tenancy.Domains))
		for _, d := range cfg.Tenancy.Domains {
			out = append(out, tenant.Mapping{Domain: d.Domain, Slug: d.Slug})
		}
		return out, nil
	}

	db, err := database.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("control-plane db: %w", err)
	}
	defer db.Close()

	m, err := meta.Mappings(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("load tenant_domain: %w", err)
	}
	return m, nil
}
