package theme

import (
	"io"
	"sync"
)

// style1: classic three-column broadsheet.  Full capability set.
type style1 struct{ tplRenderer }

func newStyle1() Renderer {
	return style1{newTplRenderer(Style1, `
{{define "home"}}{{template "open" .}}<section class="s1-front">Top stories</section>{{template "close" .}}{{end}}
{{define "category"}}{{template "open" .}}<section class="s1-category" data-slug="{{.Slug}}"><h1>{{.Slug}}</h1></section>{{template "close" .}}{{end}}
{{define "article"}}{{template "open" .}}<article class="s1-article" data-slug="{{.Slug}}"></article>{{template "close" .}}{{end}}`)}
}

func (s style1) RenderCategory(w io.Writer, p *Page) error { return s.exec(w, "category", p) }
func (s style1) RenderArticle(w io.Writer, p *Page) error  { return s.exec(w, "article", p) }

// style2: magazine grid.  No dedicated category page.
type style2 struct{ tplRenderer }

func newStyle2() Renderer {
	return style2{newTplRenderer(Style2, `
{{define "home"}}{{template "open" .}}<section class="s2-grid">Featured</section>{{template "close" .}}{{end}}
{{define "article"}}{{template "open" .}}<article class="s2-article" data-slug="{{.Slug}}"></article>{{template "close" .}}{{end}}`)}
}

func (s style2) RenderArticle(w io.Writer, p *Page) error { return s.exec(w, "article", p) }

// style3: single-column minimal.  Home page only.
type style3 struct{ tplRenderer }

func newStyle3() Renderer {
	return style3{newTplRenderer(Style3, `
{{define "home"}}{{template "open" .}}<section class="s3-stream">Latest</section>{{template "close" .}}{{end}}`)}
}

// tv9: broadcast layout with a live ticker.  No dedicated article page.
type tv9 struct{ tplRenderer }

func newTV9() Renderer {
	return tv9{newTplRenderer(TV9, `
{{define "home"}}{{template "open" .}}<div class="tv9-ticker"></div><section class="tv9-front">Breaking</section>{{template "close" .}}{{end}}
{{define "category"}}{{template "open" .}}<div class="tv9-ticker"></div><section class="tv9-category" data-slug="{{.Slug}}"><h1>{{.Slug}}</h1></section>{{template "close" .}}{{end}}`)}
}

func (s tv9) RenderCategory(w io.Writer, p *Page) error { return s.exec(w, "category", p) }

// toi: dense daily layout.  Full capability set.
type toi struct{ tplRenderer }

func newTOI() Renderer {
	return toi{newTplRenderer(TOI, `
{{define "home"}}{{template "open" .}}<section class="toi-front">Top news</section>{{template "close" .}}{{end}}
{{define "category"}}{{template "open" .}}<section class="toi-category" data-slug="{{.Slug}}"><h1>{{.Slug}}</h1></section>{{template "close" .}}{{end}}
{{define "article"}}{{template "open" .}}<article class="toi-article" data-slug="{{.Slug}}"></article>{{template "close" .}}{{end}}`)}
}

func (s toi) RenderCategory(w io.Writer, p *Page) error { return s.exec(w, "category", p) }
func (s toi) RenderArticle(w io.Writer, p *Page) error  { return s.exec(w, "article", p) }

// generic backs variants that lack an optional capability, and renders the
// legal pages.  Key reports Default because it is not a selectable variant.
type generic struct{ tplRenderer }

var (
	genericOnce sync.Once
	genericR    generic
)

// Generic returns the shared fallback renderer.
func Generic() interface {
	Renderer
	CategoryRenderer
	ArticleRenderer
	RenderLegal(w io.Writer, p *Page) error
} {
	genericOnce.Do(func() {
		genericR = generic{newTplRenderer("generic", `
{{define "home"}}{{template "open" .}}<section class="generic-home"></section>{{template "close" .}}{{end}}
{{define "category"}}{{template "open" .}}<section class="generic-category" data-slug="{{.Slug}}"><h1>{{.Slug}}</h1></section>{{template "close" .}}{{end}}
{{define "article"}}{{template "open" .}}<article class="generic-article" data-slug="{{.Slug}}"></article>{{template "close" .}}{{end}}
{{define "legal"}}{{template "open" .}}<article class="legal" data-slug="{{.Slug}}"></article>{{template "close" .}}{{end}}`)}
	})
	return genericR
}

func (g generic) Key() Key                                  { return Default }
func (g generic) RenderCategory(w io.Writer, p *Page) error { return g.exec(w, "category", p) }
func (g generic) RenderArticle(w io.Writer, p *Page) error  { return g.exec(w, "article", p) }
func (g generic) RenderLegal(w io.Writer, p *Page) error    { return g.exec(w, "legal", p) }
