// internal/tenant/directory.go
//
// Tenant Directory: domain → tenant slug.
//
// Context
// -------
// The directory is built once at boot from config (static list) or from the
// control-plane `tenant_domain` table, then handed to the edge rewriter.  It
// is never mutated afterwards, so concurrent requests read it without locks.
// Changing a mapping means redeploying, or at least rebuilding the
// directory, which is an out-of-band concern.
//
// Unknown domains do not fail closed.  Lookup reports Mapped == false and
// the configured default slug, and the caller decides what to do with it.

package tenant

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicateDomain = errors.New("tenant: duplicate domain in directory")
	ErrInvalidSlug     = errors.New("tenant: slug is not canonical")
)

// Mapping is one domain → slug row.
type Mapping struct {
	Domain string `db:"domain"`
	Slug   string `db:"tenant_slug"`
}

// Lookup is the directory's answer for one inbound host.
type Lookup struct {
	Domain Domain // after localhost substitution
	Slug   string // mapped slug, or the default slug when !Mapped
	Mapped bool
}

// Directory is a read-only domain table.  Zero value is unusable; build
// with NewDirectory.
type Directory struct {
	bySite      map[Domain]string
	defaultSlug string
	devDomain   Domain
}

// NewDirectory validates and indexes entries.  Domains are normalised, so
// "www.Example.com" and "example.com" collide.
func NewDirectory(entries []Mapping, defaultSlug, devDomain string) (*Directory, error) {
	if !IsCanonicalSlug(defaultSlug) {
		return nil, fmt.Errorf("%w: default %q", ErrInvalidSlug, defaultSlug)
	}
	d := &Directory{
		bySite:      make(map[Domain]string, len(entries)),
		defaultSlug: defaultSlug,
		devDomain:   resolveDevDomain(devDomain),
	}
	for _, e := range entries {
		if !IsCanonicalSlug(e.Slug) {
			return nil, fmt.Errorf("%w: %q for %s", ErrInvalidSlug, e.Slug, e.Domain)
		}
		key := Normalize(e.Domain)
		if _, dup := d.bySite[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDomain, key)
		}
		d.bySite[key] = e.Slug
	}
	return d, nil
}

// Lookup maps a normalised domain to its tenant.  "localhost" is swapped
// for the development domain first.
func (d *Directory) Lookup(dom Domain) Lookup {
	if dom.IsLocal() {
		dom = d.devDomain
	}
	if slug, ok := d.bySite[dom]; ok {
		return Lookup{Domain: dom, Slug: slug, Mapped: true}
	}
	return Lookup{Domain: dom, Slug: d.defaultSlug}
}

// Len reports the number of mapped domains.
func (d *Directory) Len() int { return len(d.bySite) }

// Entries returns a sorted copy of the table, for diagnostics.
func (d *Directory) Entries() []Mapping {
	out := make([]Mapping, 0, len(d.bySite))
	for dom, slug := range d.bySite {
		out = append(out, Mapping{Domain: string(dom), Slug: slug})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Domain < out[j].Domain })
	return out
}
