package settings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/newsroom/internal/metrics"
	"github.com/yanizio/newsroom/internal/provider"
	"github.com/yanizio/newsroom/internal/tenant"
)

type stubSource struct {
	body   []byte
	err    error
	panics bool
	calls  int
	got    string
}

func (s *stubSource) Settings(ctx context.Context, domain string) ([]byte, error) {
	s.calls++
	s.got = domain
	if s.panics {
		panic("boom")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.body, s.err
}

func TestEffective_CurrentBeforeLegacy(t *testing.T) {
	e := NewEffective([]byte(`{"theme":{"key":"tv9"},"settings":{"theme":{"key":"style2"}}}`))
	assert.Equal(t, "tv9", e.ThemeKey())
}

func TestEffective_LegacyFallback(t *testing.T) {
	e := NewEffective([]byte(`{"settings":{
		"theme":{"key":"toi","colors":{"primary":"#c00","depth":3}},
		"branding":{"siteName":"Old Shape"},
		"content":{"defaultLanguage":"te"}}}`))
	assert.Equal(t, "toi", e.ThemeKey())
	assert.Equal(t, "Old Shape", e.SiteName())
	assert.Equal(t, "te", e.DefaultLanguage())
	assert.Equal(t, map[string]string{"primary": "#c00"}, e.ThemeColors())
}

func TestEffective_ThemeKeyOrder(t *testing.T) {
	cases := []struct {
		name, doc, want string
	}{
		{"key wins", `{"theme":{"key":"tv9","theme":"toi","layout":{"style":"style3"}}}`, "tv9"},
		{"current theme beats legacy key", `{"theme":{"theme":"tv9"},"settings":{"theme":{"key":"style2"}}}`, "tv9"},
		{"current layout beats legacy theme", `{"theme":{"layout":{"style":"toi"}},"settings":{"theme":{"theme":"style3"}}}`, "toi"},
		{"legacy key when current empty", `{"settings":{"theme":{"key":"style2","theme":"toi"}}}`, "style2"},
		{"theme field", `{"theme":{"theme":"toi"}}`, "toi"},
		{"layout style last", `{"theme":{"layout":{"style":"style3"}}}`, "style3"},
		{"blank skipped", `{"theme":{"key":"  "},"settings":{"theme":{"key":"tv9"}}}`, "tv9"},
		{"null skipped", `{"theme":{"key":null},"settings":{"theme":{"key":"toi"}}}`, "toi"},
		{"missing", `{}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewEffective([]byte(tc.doc)).ThemeKey())
		})
	}
}

func TestEffective_Defaults(t *testing.T) {
	e := NewEffective([]byte(`{}`))
	assert.Equal(t, DefaultLanguage, e.DefaultLanguage())
	assert.Equal(t, KindNews, e.DomainKind())
	assert.Empty(t, e.SiteName())
	assert.Nil(t, e.ThemeColors())
}

func TestEffective_Fields(t *testing.T) {
	e := NewEffective([]byte(`{
		"tenant":{"id":"t_9","slug":"kaburlu-today","name":"Kaburlu Today"},
		"branding":{"logoUrl":"/l.png","faviconUrl":"/f.ico"},
		"seo":{"canonicalBaseUrl":"https://kaburlutoday.com/"},
		"domain":{"kind":"epaper"}}`))
	assert.Equal(t, "t_9", e.TenantID())
	assert.Equal(t, "kaburlu-today", e.TenantSlug())
	assert.Equal(t, "Kaburlu Today", e.TenantName())
	assert.Equal(t, "/l.png", e.LogoURL())
	assert.Equal(t, "/f.ico", e.FaviconURL())
	assert.Equal(t, "https://kaburlutoday.com", e.CanonicalBaseURL())
	assert.Equal(t, KindEPaper, e.DomainKind())
}

func TestResult_Invariant(t *testing.T) {
	cases := []struct {
		r    Result
		want State
	}{
		{Healthy(NewEffective([]byte(`{}`))), StateHealthy},
		{Healthy(nil), StateAPIError},
		{NotLinked(), StateDomainNotLinked},
		{Failed(errors.New("x")), StateAPIError},
		{Result{}, StateAPIError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.r.State())
		assert.Equal(t, tc.want == StateHealthy, tc.r.Settings() != nil)
	}
}

func TestCascade_Classify(t *testing.T) {
	cases := []struct {
		name string
		src  *stubSource
		want State
	}{
		{"healthy", &stubSource{body: []byte(`{"theme":{"key":"style1"}}`)}, StateHealthy},
		{"not linked", &stubSource{err: fmt.Errorf("wrap: %w", provider.ErrDomainNotLinked)}, StateDomainNotLinked},
		{"transport", &stubSource{err: errors.New("dial tcp: refused")}, StateAPIError},
		{"deadline", &stubSource{err: context.DeadlineExceeded}, StateAPIError},
		{"array", &stubSource{body: []byte(`[1,2]`)}, StateAPIError},
		{"string", &stubSource{body: []byte(`"ok"`)}, StateAPIError},
		{"malformed", &stubSource{body: []byte(`{"theme":`)}, StateAPIError},
		{"empty", &stubSource{body: nil}, StateAPIError},
		{"panic", &stubSource{panics: true}, StateAPIError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := NewCascade(tc.src).GetEffectiveSettings(context.Background(), "WWW.Example.com:443")
			assert.Equal(t, tc.want, res.State())
			assert.Equal(t, 1, tc.src.calls)
			assert.Equal(t, "example.com", tc.src.got)
		})
	}
}

func TestCascade_Sentinel(t *testing.T) {
	doc := []byte(`{"branding":{"siteName":"Demo News Sample"}}`)
	c := NewCascade(&stubSource{body: doc}, Sentinel{Marker: "Demo News Sample", Owner: "www.demo-news.com"})

	before := testutil.ToFloat64(metrics.SettingsSentinelHitsTotal)
	res := c.GetEffectiveSettings(context.Background(), "stranger.com")
	assert.Equal(t, StateDomainNotLinked, res.State())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SettingsSentinelHitsTotal))

	res = c.GetEffectiveSettings(context.Background(), "demo-news.com")
	assert.Equal(t, StateHealthy, res.State())
}

func TestCascade_ProviderErrorWinsOverSentinel(t *testing.T) {
	c := NewCascade(&stubSource{err: errors.New("boom"), body: []byte(`{"x":"MARK"}`)}, Sentinel{Marker: "MARK"})
	assert.Equal(t, StateAPIError, c.GetEffectiveSettings(context.Background(), "a.com").State())
}

func TestCascade_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &stubSource{body: []byte(`{}`)}
	res := NewCascade(src).GetEffectiveSettings(ctx, "a.com")
	assert.True(t, res.IsAPIError())
	require.ErrorIs(t, res.Err(), context.Canceled)
}

func TestCascade_ForRequest(t *testing.T) {
	src := &stubSource{body: []byte(`{"theme":{"key":"toi"}}`)}
	c := NewCascade(src)

	assert.True(t, c.ForRequest(context.Background()).IsAPIError())
	assert.Zero(t, src.calls)

	ctx := tenant.WithEdge(context.Background(), &tenant.Edge{Domain: "kaburlutoday.com"})
	res := c.ForRequest(ctx)
	require.Equal(t, StateHealthy, res.State())
	assert.Equal(t, "toi", res.Settings().ThemeKey())
	assert.Equal(t, "kaburlutoday.com", src.got)
}

func TestCascade_NoCache(t *testing.T) {
	var theme atomic.Value
	theme.Store("tv9")
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"theme":{"key":%q}}`, theme.Load().(string))
	}))
	defer srv.Close()

	client, err := provider.New(provider.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	c := NewCascade(client)

	first := c.GetEffectiveSettings(context.Background(), "kaburlutoday.com")
	require.Equal(t, StateHealthy, first.State())
	assert.Equal(t, "tv9", first.Settings().ThemeKey())

	theme.Store("toi")
	second := c.GetEffectiveSettings(context.Background(), "kaburlutoday.com")
	require.Equal(t, StateHealthy, second.State())
	assert.Equal(t, "toi", second.Settings().ThemeKey())
	assert.Equal(t, int32(2), hits.Load())
}
