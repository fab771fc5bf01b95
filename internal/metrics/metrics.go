// Package metrics holds Prometheus instruments that are used across the
// engine.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Label values for EdgeRequestsTotal.
const (
	EdgeRewritten   = "rewritten"
	EdgePassthrough = "passthrough"
	EdgeUnmapped    = "unmapped"
)

var (
	EdgeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_requests_total",
			Help: "Requests seen by the edge rewriter, by rewrite outcome.",
		}, []string{"result"})

	SettingsFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settings_fetch_total",
			Help: "Effective-settings fetches, by classified outcome.",
		}, []string{"outcome"})

	SettingsFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "settings_fetch_duration_seconds",
			Help:    "Latency of remote settings provider calls.",
			Buckets: prometheus.DefBuckets,
		})

	SettingsSentinelHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "settings_sentinel_hits_total",
			Help: "Payloads rejected because they carried a wrong-tenant marker.",
		})

	ThemeKeyCoercedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "theme_key_coerced_total",
			Help: "Theme keys that were missing or unrecognised and fell back to the default.",
		})

	TenantResolutionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_resolution_total",
			Help: "Page requests by terminal classification state.",
		}, []string{"state"})

	DirectoryEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tenant_directory_entries",
			Help: "Number of domain mappings in the tenant directory.",
		})
)

func init() {
	prometheus.MustRegister(
		EdgeRequestsTotal,
		SettingsFetchTotal,
		SettingsFetchDuration,
		SettingsSentinelHitsTotal,
		ThemeKeyCoercedTotal,
		TenantResolutionTotal,
		DirectoryEntries,
	)
}
