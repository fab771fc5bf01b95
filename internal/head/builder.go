// internal/head/builder.go
//
// The Builder collects everything that should appear inside a page's
// <head> element.  It is scoped to a single request.  Page handlers seed it
// from the tenant's effective settings (title, favicon, canonical URL), the
// selected theme variant adds its stylesheet, then the shared layout emits
// each slice.
//
// Features
// --------
//   - SetTitle           – single <title> tag (last call wins).
//   - Meta, Link, Script – arbitrary tags with deduplication.
//   - Canonical, Favicon – escaped convenience wrappers around Link.
//   - JSONLD             – stores raw JSON-LD strings and wraps them in
//     <script type="application/ld+json">…</script>.
//   - Clone              – independent copy, so a renderer can add its own
//     tags without touching the handler's builder.
//   - Render helpers     – concat methods that return template.HTML.
package head

import (
	"html/template"
	"strings"
	"sync"
)

// Builder is guarded by a mutex, although typical use is one goroutine per
// request.
type Builder struct {
	mu sync.Mutex

	// Single-value fields
	title string

	// Multi-value slices
	metas   []string
	links   []string
	scripts []string
	jsonLD  []string

	// seen tracks keys for deduplication.
	seen map[string]struct{}
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// ------------------------------------------------------------------
// Single-value helper
// ------------------------------------------------------------------

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) {
	b.mu.Lock()
	b.title = t
	b.mu.Unlock()
}

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	if b.title == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(b.title)
	return template.HTML("<title>" + escaped + "</title>")
}

// ------------------------------------------------------------------
// Slice helpers with deduplication
// ------------------------------------------------------------------

// Canonical adds <link rel="canonical">.  Empty href is ignored.
func (b *Builder) Canonical(href string) {
	if href == "" {
		return
	}
	b.Link(`<link rel="canonical" href="` + template.HTMLEscapeString(href) + `">`)
}

// Favicon adds <link rel="icon">.  Empty href is ignored.
func (b *Builder) Favicon(href string) {
	if href == "" {
		return
	}
	b.Link(`<link rel="icon" href="` + template.HTMLEscapeString(href) + `">`)
}

// Meta adds a pre-built <meta> tag.
func (b *Builder) Meta(tag string) { b.add("meta:"+tag, &b.metas, tag) }

// Link adds a pre-built <link> tag.
func (b *Builder) Link(tag string) { b.add("link:"+tag, &b.links, tag) }

// Script adds a pre-built <script> tag, emitted at the end of <body>.
func (b *Builder) Script(tag string) { b.add("script:"+tag, &b.scripts, tag) }

// JSONLD adds one JSON-LD document.  js must already be valid JSON.
func (b *Builder) JSONLD(js string) { b.add("jsonld:"+js, &b.jsonLD, js) }

func (b *Builder) add(key string, tgt *[]string, tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

// Clone returns a deep copy of b.
func (b *Builder) Clone() *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := &Builder{
		title:   b.title,
		metas:   append([]string(nil), b.metas...),
		links:   append([]string(nil), b.links...),
		scripts: append([]string(nil), b.scripts...),
		jsonLD:  append([]string(nil), b.jsonLD...),
		seen:    make(map[string]struct{}, len(b.seen)),
	}
	for k := range b.seen {
		c.seen[k] = struct{}{}
	}
	return c
}

// ------------------------------------------------------------------
// Rendering helpers called from theme templates
// ------------------------------------------------------------------

// Metas returns every <meta> tag in insertion order.
func (b *Builder) Metas() template.HTML { return concat(b.metas) }

// Links returns every <link> tag in insertion order.
func (b *Builder) Links() template.HTML { return concat(b.links) }

// Scripts returns every <script> tag in insertion order.
func (b *Builder) Scripts() template.HTML { return concat(b.scripts) }

// JSON returns all JSON-LD blocks wrapped in <script> tags.
func (b *Builder) JSON() template.HTML {
	if len(b.jsonLD) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, js := range b.jsonLD {
		sb.WriteString(`<script type="application/ld+json">`)
		sb.WriteString(js)
		sb.WriteString(`</script>`)
	}
	return template.HTML(sb.String())
}

// concat joins pre-escaped tags without a separator.
func concat(sl []string) template.HTML {
	return template.HTML(strings.Join(sl, ""))
}
