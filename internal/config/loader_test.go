package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConf(t *testing.T, body string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "conf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(body), 0o644))
	return root
}

const minimalYAML = `
tenancy:
  default_slug: kaburlu-today
  dev_domain: kaburlutoday.com
  domains:
    - domain: kaburlutoday.com
      slug: kaburlu-today
    - domain: prajavani.news
      slug: praja-vani
provider:
  base_url: https://api.example.com/api/v1
settings:
  sentinels:
    - marker: Kaburlu Demo Tenant
      owner: demo.kaburlu.com
`

func TestLoadFrom_DefaultsAndYAML(t *testing.T) {
	root := writeConf(t, minimalYAML)

	cfg, err := LoadFrom(root)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, SourceStatic, cfg.Tenancy.Source)
	assert.Equal(t, "kaburlu-today", cfg.Tenancy.DefaultSlug)
	require.Len(t, cfg.Tenancy.Domains, 2)
	assert.Equal(t, "prajavani.news", cfg.Tenancy.Domains[1].Domain)
	require.Len(t, cfg.Settings.Sentinels, 1)
	assert.Equal(t, "demo.kaburlu.com", cfg.Settings.Sentinels[0].Owner)
	assert.Equal(t, root, cfg.Paths.Root)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	root := writeConf(t, minimalYAML)
	t.Setenv("NEWSROOM_HTTP__LISTEN_ADDR", "127.0.0.1:9090")
	t.Setenv("NEWSROOM_PROVIDER__RETRY_MAX", "2")

	cfg, err := LoadFrom(root)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.ListenAddr)
	assert.Equal(t, 2, cfg.Provider.RetryMax)
}

func TestLoadFrom_Validation(t *testing.T) {
	t.Run("missing provider", func(t *testing.T) {
		root := writeConf(t, "tenancy:\n  default_slug: x\n")
		_, err := LoadFrom(root)
		require.Error(t, err)
	})

	t.Run("database source without dsn", func(t *testing.T) {
		root := writeConf(t, minimalYAML+"\n")
		t.Setenv("NEWSROOM_TENANCY__SOURCE", "database")
		_, err := LoadFrom(root)
		require.ErrorIs(t, err, ErrMissingDSN)
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "http.listen_addr", envKey("NEWSROOM_HTTP__LISTEN_ADDR"))
	assert.Equal(t, "tenancy.dev_domain", envKey("NEWSROOM_TENANCY__DEV_DOMAIN"))
}

func TestLoadFrom_ShippedConfig(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join("..", ".."))
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, cfg.Tenancy.Source)
	assert.NotEmpty(t, cfg.Tenancy.Domains)
	assert.Equal(t, 0, cfg.Provider.RetryMax)
}
