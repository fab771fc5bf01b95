// internal/settings/cascade.go
//
// Cascade turns one provider call into a Result.
//
// Classification
// --------------
//   - provider.ErrDomainNotLinked                       → NotLinked
//   - transport error, ctx cancel/deadline, panic       → Failed
//   - body that is not a JSON object                    → Failed
//   - object carrying a configured sentinel marker      → NotLinked
//   - anything else                                     → Healthy
//
// The sentinel check catches a provider that answers an unknown domain with
// a sample tenant's document.  It runs only after the provider's own error
// code has been honoured and never overrides an explicit signal.
//
// One call per invocation.  No retry, no cache.
package settings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/yanizio/newsroom/internal/metrics"
	"github.com/yanizio/newsroom/internal/provider"
	"github.com/yanizio/newsroom/internal/tenant"
)

var (
	// ErrNotObject means the provider answered with something other than
	// a JSON object.
	ErrNotObject = errors.New("settings: payload is not a JSON object")
	// ErrNoDomain means ForRequest ran outside the edge rewriter.
	ErrNoDomain = errors.New("settings: no propagated domain in context")
)

// Source is the slice of the provider the cascade needs.
type Source interface {
	Settings(ctx context.Context, domain string) ([]byte, error)
}

// Sentinel is a marker string that only legitimately appears in Owner's
// settings.
type Sentinel struct {
	Marker string
	Owner  string
}

// Cascade is safe for concurrent use; it holds no per-request state.
type Cascade struct {
	src       Source
	sentinels []Sentinel
}

// NewCascade returns a Cascade reading from src.  Sentinels with an empty
// marker are ignored.
func NewCascade(src Source, sentinels ...Sentinel) *Cascade {
	c := &Cascade{src: src}
	for _, s := range sentinels {
		if s.Marker == "" {
			continue
		}
		if s.Owner != "" {
			s.Owner = string(tenant.Normalize(s.Owner))
		}
		c.sentinels = append(c.sentinels, s)
	}
	return c
}

// ForRequest fetches settings for the domain the edge rewriter propagated.
func (c *Cascade) ForRequest(ctx context.Context) Result {
	d, ok := tenant.DomainFrom(ctx)
	if !ok {
		zap.L().Error("settings requested without edge domain")
		metrics.SettingsFetchTotal.WithLabelValues(StateAPIError.String()).Inc()
		return Failed(ErrNoDomain)
	}
	return c.GetEffectiveSettings(ctx, string(d))
}

// GetEffectiveSettings fetches and classifies settings for domain.  It never
// panics and never returns an error; failures are folded into the Result.
func (c *Cascade) GetEffectiveSettings(ctx context.Context, domain string) Result {
	d := tenant.Normalize(domain)
	res := c.fetch(ctx, d)

	metrics.SettingsFetchTotal.WithLabelValues(res.State().String()).Inc()
	if res.IsAPIError() {
		zap.L().Warn("settings fetch failed",
			zap.String("domain", d.String()), zap.Error(res.Err()))
	}
	return res
}

func (c *Cascade) fetch(ctx context.Context, d tenant.Domain) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Failed(fmt.Errorf("settings: provider panic: %v", p))
		}
	}()

	start := time.Now()
	raw, err := c.src.Settings(ctx, d.String())
	metrics.SettingsFetchDuration.Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, provider.ErrDomainNotLinked):
		return NotLinked()
	case err != nil:
		return Failed(err)
	case !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject():
		return Failed(ErrNotObject)
	}

	if s, hit := c.sentinelHit(d, raw); hit {
		metrics.SettingsSentinelHitsTotal.Inc()
		zap.L().Warn("settings payload carries another tenant's marker",
			zap.String("domain", d.String()),
			zap.String("marker", s.Marker),
			zap.String("owner", s.Owner))
		return NotLinked()
	}
	return Healthy(NewEffective(raw))
}

func (c *Cascade) sentinelHit(d tenant.Domain, raw []byte) (Sentinel, bool) {
	for _, s := range c.sentinels {
		if s.Owner != "" && s.Owner == d.String() {
			continue
		}
		if bytes.Contains(raw, []byte(s.Marker)) {
			return s, true
		}
	}
	return Sentinel{}, false
}
