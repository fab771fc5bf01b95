package settings

import (
	"strings"

	"github.com/tidwall/gjson"
)

// legacyPrefix is where older provider builds nest the same document.
const legacyPrefix = "settings."

// Domain kinds.
const (
	KindNews   = "NEWS"
	KindEPaper = "EPAPER"
)

// DefaultLanguage is used when neither shape names one.
const DefaultLanguage = "en"

// Effective is one tenant's effective settings document.  It keeps the raw
// JSON and answers attribute reads through Lookup, which reads the current
// shape, then the legacy "settings." shape.  Accessors layer their own
// defaults on top; nothing else in the module walks the document.
type Effective struct {
	raw []byte
}

// NewEffective wraps a JSON object.  Callers are expected to have checked
// the shape (see Cascade).
func NewEffective(raw []byte) *Effective {
	return &Effective{raw: raw}
}

// Raw returns the underlying document.
func (e *Effective) Raw() []byte { return e.raw }

// shapes is the fixed read order: current shape, then legacy.
var shapes = [...]string{"", legacyPrefix}

// Lookup returns the first present, non-null value at path: current shape
// first, then legacy.
func (e *Effective) Lookup(path string) (gjson.Result, bool) {
	for _, pre := range shapes {
		r := gjson.GetBytes(e.raw, pre+path)
		if r.Exists() && r.Type != gjson.Null {
			return r, true
		}
	}
	return gjson.Result{}, false
}

// String returns the first non-blank string among paths.  Every path is
// read in the current shape before any path is read in the legacy
// shape, so a current value always beats a legacy one regardless of which
// alias carries it.
func (e *Effective) String(paths ...string) (string, bool) {
	for _, pre := range shapes {
		for _, p := range paths {
			r := gjson.GetBytes(e.raw, pre+p)
			if !r.Exists() || r.Type == gjson.Null {
				continue
			}
			if s := strings.TrimSpace(r.String()); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func (e *Effective) stringOr(def string, paths ...string) string {
	if s, ok := e.String(paths...); ok {
		return s
	}
	return def
}

/* ------------------------------------------------------------------ */
/* typed accessors                                                     */
/* ------------------------------------------------------------------ */

// SiteName is branding.siteName.
func (e *Effective) SiteName() string { return e.stringOr("", "branding.siteName") }

// LogoURL is branding.logoUrl.
func (e *Effective) LogoURL() string { return e.stringOr("", "branding.logoUrl") }

// FaviconURL is branding.faviconUrl.
func (e *Effective) FaviconURL() string { return e.stringOr("", "branding.faviconUrl") }

// ThemeKey is the raw, uncoerced theme key: theme.key, theme.theme, then
// theme.layout.style.
func (e *Effective) ThemeKey() string {
	return e.stringOr("", "theme.key", "theme.theme", "theme.layout.style")
}

// LayoutStyle is theme.layout.style.
func (e *Effective) LayoutStyle() string { return e.stringOr("", "theme.layout.style") }

// ThemeColors flattens theme.colors into name → value.  Non-string leaves
// are skipped.
func (e *Effective) ThemeColors() map[string]string {
	r, ok := e.Lookup("theme.colors")
	if !ok || !r.IsObject() {
		return nil
	}
	out := make(map[string]string)
	r.ForEach(func(k, v gjson.Result) bool {
		if v.Type == gjson.String {
			out[k.String()] = v.String()
		}
		return true
	})
	return out
}

// CanonicalBaseURL is seo.canonicalBaseUrl without a trailing slash.
func (e *Effective) CanonicalBaseURL() string {
	return strings.TrimRight(e.stringOr("", "seo.canonicalBaseUrl"), "/")
}

// DefaultLanguage is content.defaultLanguage, or DefaultLanguage.
func (e *Effective) DefaultLanguage() string {
	return e.stringOr(DefaultLanguage, "content.defaultLanguage")
}

// DomainKind is KindNews unless the document says EPAPER.
func (e *Effective) DomainKind() string {
	if strings.EqualFold(e.stringOr("", "domain.kind"), KindEPaper) {
		return KindEPaper
	}
	return KindNews
}

// TenantID is tenant.id.
func (e *Effective) TenantID() string { return e.stringOr("", "tenant.id") }

// TenantSlug is tenant.slug.
func (e *Effective) TenantSlug() string { return e.stringOr("", "tenant.slug") }

// TenantName is tenant.name.
func (e *Effective) TenantName() string { return e.stringOr("", "tenant.name") }
