package theme

import (
	"io"

	"github.com/yanizio/newsroom/internal/head"
)

// PageKind names the page shape being rendered.
type PageKind string

const (
	KindHome     PageKind = "home"
	KindCategory PageKind = "category"
	KindArticle  PageKind = "article"
	KindLegal    PageKind = "legal"
)

// Page is everything a renderer may read.  It is assembled by the page
// handlers from the resolved tenant record and effective settings, so this
// package stays free of tenant and settings imports.
type Page struct {
	Kind        PageKind
	Slug        string // article, category, or legal-page slug
	TenantSlug  string
	SiteName    string
	LogoURL     string
	Lang        string
	LayoutStyle string
	Colors      map[string]string
	Head        *head.Builder
}

// Renderer is the minimum every variant provides.
type Renderer interface {
	Key() Key
	RenderHome(w io.Writer, p *Page) error
}

// CategoryRenderer is optional.
type CategoryRenderer interface {
	RenderCategory(w io.Writer, p *Page) error
}

// ArticleRenderer is optional.
type ArticleRenderer interface {
	RenderArticle(w io.Writer, p *Page) error
}

// Category returns r's category renderer, or the generic one.
func Category(r Renderer) CategoryRenderer {
	if c, ok := r.(CategoryRenderer); ok {
		return c
	}
	return Generic()
}

// Article returns r's article renderer, or the generic one.
func Article(r Renderer) ArticleRenderer {
	if a, ok := r.(ArticleRenderer); ok {
		return a
	}
	return Generic()
}

// AssetPath resolves an asset inside a variant's public folder, e.g.
// AssetPath(TV9, "css/main.css") → "/themes/tv9/assets/css/main.css".
func AssetPath(k Key, p string) string {
	return "/themes/" + string(k) + "/assets/" + p
}
