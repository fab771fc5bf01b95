// internal/provider/provider.go
//
// HTTP client for the remote tenant/settings provider.
//
// Context
// -------
// The provider is the source of truth for which tenant owns a domain and
// what that tenant's effective settings are.  This client speaks its two
// read endpoints:
//
//	GET {base}/public/settings?domain=<d>   (X-Tenant-Domain: <d>)
//	GET {base}/public/tenants/{slug}
//
// and turns every response into either raw JSON or a classified error.
// It never caches.  Transport retries are governed by Options.RetryMax
// (default 0); the settings cascade above never retries on its own.
//
// Notes
// -----
//   - Settings payloads may arrive inside a {"data": {...}} envelope, which is
//     unwrapped here so callers always see the settings document itself.
//   - Concurrent slug lookups for the same slug share one in-flight request.
//     Each caller still honours its own context.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrDomainNotLinked means the provider says no tenant owns the domain.
	ErrDomainNotLinked = errors.New("provider: domain not linked")
	// ErrTenantNotFound means no tenant has the requested slug.
	ErrTenantNotFound = errors.New("provider: tenant not found")
	// ErrUnexpectedStatus wraps any status the client does not classify.
	ErrUnexpectedStatus = errors.New("provider: unexpected status")
)

// maxBody caps how much of a response we read.
const maxBody = 1 << 20

const defaultTimeout = 5 * time.Second

// notLinkedCodes are the machine-readable codes the provider uses for an
// unclaimed domain.
var notLinkedCodes = map[string]struct{}{
	"DOMAIN_NOT_LINKED": {},
	"DOMAIN_NOT_FOUND":  {},
	"TENANT_NOT_FOUND":  {},
}

// Tenant is the identity document returned by the slug endpoint.
type Tenant struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	ThemeKey string `json:"themeKey"`
}

// Options configures a Client.
type Options struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	RetryMax int
}

// Client is safe for concurrent use.
type Client struct {
	base    *url.URL
	token   string
	timeout time.Duration
	http    *retryablehttp.Client
	sfg     singleflight.Group
}

// New validates o and builds a Client.
func New(o Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(o.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("provider: base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("provider: base url %q must be http or https", o.BaseURL)
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}

	hc := retryablehttp.NewClient()
	hc.RetryMax = o.RetryMax
	hc.RetryWaitMin = 100 * time.Millisecond
	hc.RetryWaitMax = time.Second
	hc.HTTPClient.Timeout = o.Timeout
	hc.Logger = leveled{zap.S().Named("provider")}
	// Hand the final response back so we can classify 4xx/5xx ourselves.
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{base: base, token: o.Token, timeout: o.Timeout, http: hc}, nil
}

/*──────────────────────────── settings ────────────────────────────────────*/

// Settings returns the raw settings document for domain.
func (c *Client) Settings(ctx context.Context, domain string) ([]byte, error) {
	u := c.endpoint("public", "settings")
	u.RawQuery = url.Values{"domain": {domain}}.Encode()

	status, body, err := c.get(ctx, u, domain)
	if err != nil {
		return nil, err
	}
	if notLinked(body) {
		return nil, ErrDomainNotLinked
	}
	switch {
	case status == http.StatusOK:
		return unwrap(body), nil
	case status == http.StatusNotFound:
		return nil, ErrDomainNotLinked
	default:
		return nil, fmt.Errorf("%w: %d from settings", ErrUnexpectedStatus, status)
	}
}

/*──────────────────────────── tenants ─────────────────────────────────────*/

// testHookJoined runs once a caller is attached to the shared slug fetch.
var testHookJoined = func(slug string) {}

// TenantBySlug fetches one tenant's identity.  Concurrent calls for the same
// slug share a single request; the shared request is bounded by the client
// timeout rather than by any one caller's context.
func (c *Client) TenantBySlug(ctx context.Context, slug string) (Tenant, error) {
	ch := c.sfg.DoChan(slug, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetchTenant(fctx, slug)
	})
	testHookJoined(slug)
	select {
	case <-ctx.Done():
		return Tenant{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Tenant{}, res.Err
		}
		return res.Val.(Tenant), nil
	}
}

func (c *Client) fetchTenant(ctx context.Context, slug string) (Tenant, error) {
	status, body, err := c.get(ctx, c.endpoint("public", "tenants", slug), "")
	if err != nil {
		return Tenant{}, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return Tenant{}, ErrTenantNotFound
	default:
		return Tenant{}, fmt.Errorf("%w: %d from tenants", ErrUnexpectedStatus, status)
	}

	doc := gjson.ParseBytes(unwrap(body))
	if !doc.IsObject() {
		return Tenant{}, fmt.Errorf("provider: tenant %q: payload is not an object", slug)
	}
	t := Tenant{
		ID:       doc.Get("id").String(),
		Slug:     doc.Get("slug").String(),
		Name:     doc.Get("name").String(),
		Domain:   doc.Get("domain").String(),
		ThemeKey: doc.Get("themeKey").String(),
	}
	if t.Slug == "" {
		t.Slug = slug
	}
	return t, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func (c *Client) endpoint(parts ...string) *url.URL {
	u := *c.base
	for _, p := range parts {
		u.Path += "/" + url.PathEscape(p)
	}
	return &u
}

// get performs one GET and returns status and (capped) body.
func (c *Client) get(ctx context.Context, u *url.URL, domain string) (int, []byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("provider: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if domain != "" {
		req.Header.Set("X-Tenant-Domain", domain)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("provider: GET %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, nil, fmt.Errorf("provider: read %s: %w", u.Path, err)
	}
	return resp.StatusCode, body, nil
}

// notLinked reports whether body carries a not-linked code, at the top
// level or inside an error object.
func notLinked(body []byte) bool {
	if !gjson.ValidBytes(body) {
		return false
	}
	for _, path := range []string{"code", "error.code", "errorCode"} {
		if _, ok := notLinkedCodes[strings.ToUpper(gjson.GetBytes(body, path).String())]; ok {
			return true
		}
	}
	return false
}

// unwrap strips a {"data": {...}} envelope unless the top level already
// looks like a settings document.
func unwrap(body []byte) []byte {
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return body
	}
	for _, k := range []string{"branding", "theme", "settings", "seo", "domain", "tenant"} {
		if doc.Get(k).Exists() {
			return body
		}
	}
	if data := doc.Get("data"); data.IsObject() {
		return []byte(data.Raw)
	}
	return body
}

// leveled adapts zap to retryablehttp.LeveledLogger.
type leveled struct{ s *zap.SugaredLogger }

func (l leveled) Error(msg string, kv ...any) { l.s.Errorw(msg, kv...) }
func (l leveled) Info(msg string, kv ...any)  { l.s.Debugw(msg, kv...) }
func (l leveled) Debug(msg string, kv ...any) { l.s.Debugw(msg, kv...) }
func (l leveled) Warn(msg string, kv ...any)  { l.s.Warnw(msg, kv...) }
