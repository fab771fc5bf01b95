// internal/config/model.go
//
// Typed configuration model for Newsroom.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                            – dotenv values,
//   • `conf/global.yaml`                         – primary static file,
//   • `NEWSROOM_`-prefixed environment overrides – highest precedence.
//
// Values beginning with `vault:` (currently only `provider.token`) are
// resolved through the Vault client by cmd/web before the provider client
// is built, so the engine never sees Vault URIs.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • Domain mappings are a list, not a map.  Koanf splits keys on ".", so
//     a map keyed by host name would be shredded.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr     string        `koanf:"listen_addr"     validate:"required,hostname_port"`
	ForceHTTPS     bool          `koanf:"force_https"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gte=0"`
}

//
// Log section
//

type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

//
// Tenancy section
//

// Tenancy configures the Tenant Directory.  With Source == "database" the
// Domains list is ignored and mappings are read from `tenant_domain`.
type Tenancy struct {
	Source      string          `koanf:"source"       validate:"omitempty,oneof=static database"`
	DefaultSlug string          `koanf:"default_slug" validate:"required"`
	DevDomain   string          `koanf:"dev_domain"`
	Domains     []DomainMapping `koanf:"domains"      validate:"dive"`
}

// DomainMapping is one row of the static domain → tenant table.
type DomainMapping struct {
	Domain string `koanf:"domain" validate:"required"`
	Slug   string `koanf:"slug"   validate:"required"`
}

//
// Database section
//

// Database is only required when Tenancy.Source == "database".
type Database struct {
	DSN string `koanf:"dsn"`
}

//
// Provider section
//

// Provider points at the remote tenant/settings service.  RetryMax is the
// provider-side retry budget; the settings cascade itself never retries.
type Provider struct {
	BaseURL  string        `koanf:"base_url"  validate:"required,url"`
	Token    string        `koanf:"token"`
	Timeout  time.Duration `koanf:"timeout"   validate:"gte=0"`
	RetryMax int           `koanf:"retry_max" validate:"gte=0,lte=5"`
}

//
// Settings section
//

type Settings struct {
	Sentinels []Sentinel `koanf:"sentinels" validate:"dive"`
}

// Sentinel is a marker that betrays the provider answering with another
// tenant's sample data.  Owner is the domain that legitimately carries it.
type Sentinel struct {
	Marker string `koanf:"marker" validate:"required"`
	Owner  string `koanf:"owner"`
}

//
// GeoIP section
//

type GeoIP struct {
	Path string `koanf:"path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // NEWSROOM_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load().  main passes it
// down explicitly.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Log      Log      `koanf:"log"`
	Tenancy  Tenancy  `koanf:"tenancy"`
	Database Database `koanf:"database"`
	Provider Provider `koanf:"provider"`
	Settings Settings `koanf:"settings"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"`
}
