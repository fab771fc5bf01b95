// internal/vault/vault.go
//
// Vault client wrapper.
//
// Context
// -------
//   - Thin concurrency-safe wrapper around the HashiCorp Vault Go SDK.
//   - Background token renewal and Resolve for config values written as
//     "vault:<mount>/<path>#<key>".  References are read once at boot, so
//     nothing is cached.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(ctx)                        // during boot, only
//     when some config value is a vault reference.
//  2. tok, err := cli.Resolve(ctx, cfg.Provider.Token)  // plain values pass
//     through unchanged.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"
)

// RefPrefix marks a config value that must be fetched from Vault.
const RefPrefix = "vault:"

// ErrBadRef is returned for a malformed vault reference.
var ErrBadRef = errors.New("vault: reference must look like vault:<mount>/<path>#<key>")

//
// SECTION 1.  Public façade
//

// Client is safe for concurrent use.  Zero value is invalid.
type Client struct {
	api *vault.Client
}

// New constructs a Vault client from the environment and starts a
// background token-renewal loop bound to ctx.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – initial token.
func New(ctx context.Context) (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}
	c, err := newClient(cfg, os.Getenv("VAULT_TOKEN"))
	if err != nil {
		return nil, err
	}
	go c.renewLoop(ctx)
	return c, nil
}

func newClient(cfg *vault.Config, token string) (*Client, error) {
	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if token != "" {
		apiCli.SetToken(token)
	}
	return &Client{api: apiCli}, nil
}

// IsRef reports whether v should be resolved through Vault.
func IsRef(v string) bool { return strings.HasPrefix(v, RefPrefix) }

// Resolve returns v unchanged unless it is a vault reference, in which case
// the referenced KV-v2 value is fetched.
func (c *Client) Resolve(ctx context.Context, v string) (string, error) {
	if !IsRef(v) {
		return v, nil
	}
	path, key, err := parseRef(v)
	if err != nil {
		return "", err
	}
	return c.getKV(ctx, path, key)
}

// getKV fetches a single key from a KV-v2 secret.
func (c *Client) getKV(ctx context.Context, secretPath, key string) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}

	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}

	return sval, nil
}

//
// SECTION 2.  Background token renewal
//

func (c *Client) renewLoop(ctx context.Context) {
	log := zap.S().Named("vault")
	for ctx.Err() == nil {
		wait := c.renewOnce(ctx, log)
		backoff(ctx, wait)
	}
}

// renewOnce watches the current token until renewal stops and returns how
// long to wait before trying again.
func (c *Client) renewOnce(ctx context.Context, log *zap.SugaredLogger) time.Duration {
	sec, err := c.api.Auth().Token().RenewSelfWithContext(ctx, 0)
	if err != nil {
		log.Warnw("token renew-self failed", "err", err)
		return 30 * time.Second
	}
	if sec == nil || sec.Auth == nil || !sec.Auth.Renewable {
		log.Infow("token is not renewable")
		return time.Hour
	}

	w, err := c.api.NewLifetimeWatcher(&vault.LifetimeWatcherInput{Secret: sec})
	if err != nil {
		log.Warnw("lifetime watcher init", "err", err)
		return 30 * time.Second
	}
	go w.Start()
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0
		case err := <-w.DoneCh():
			if err != nil {
				log.Warnw("token renewal stopped", "err", err)
			}
			return 15 * time.Second
		case ev := <-w.RenewCh():
			if ev != nil && ev.Secret != nil && ev.Secret.Auth != nil {
				log.Debugw("token renewed", "ttl_s", ev.Secret.Auth.LeaseDuration)
			}
		}
	}
}

//
// SECTION 3.  Helpers
//

// parseRef splits "vault:kv/newsroom/provider#token" into
// ("kv/newsroom/provider", "token").
func parseRef(v string) (path, key string, err error) {
	path, key, ok := strings.Cut(strings.TrimPrefix(v, RefPrefix), "#")
	if !ok || key == "" || !strings.Contains(strings.Trim(path, "/"), "/") {
		return "", "", ErrBadRef
	}
	return strings.Trim(path, "/"), key, nil
}

func splitMount(p string) (mount, rel string) {
	mount, rel, _ = strings.Cut(p, "/")
	return
}

func backoff(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
