// internal/tenant/record.go
//
// Record is the identity resolved for one request.  The resolver builds a
// fresh value per request; nothing persists or mutates it afterwards, so it
// is passed by value.
//
// At most one of the two degraded flags is set.  When either is set the
// settings-derived fields (ID, Slug, ThemeKey) are zero, except that a
// not-linked record carries the raw domain as Name so error pages can say
// which domain is unclaimed.

package tenant

import "github.com/yanizio/newsroom/internal/theme"

// Record mirrors what page handlers need to pick a branch.
type Record struct {
	ID       string    `json:"id,omitempty"`
	Slug     string    `json:"slug,omitempty"`
	Name     string    `json:"name,omitempty"`
	Domain   Domain    `json:"domain,omitempty"` // empty in slug mode
	ThemeKey theme.Key `json:"themeKey,omitempty"`

	IsDomainNotLinked bool `json:"isDomainNotLinked"`
	IsAPIError        bool `json:"isApiError"`
}

// Healthy reports whether neither degraded flag is set.
func (r Record) Healthy() bool { return !r.IsDomainNotLinked && !r.IsAPIError }
