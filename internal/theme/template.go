package theme

import (
	"html/template"
	"io"

	"github.com/yanizio/newsroom/internal/head"
)

// base is the shell every variant shares.  Variants define "home" and, when
// supported, "category" and "article"; each wraps its markup in
// {{template "open" .}} … {{template "close" .}}.
const base = `
{{define "open"}}<!doctype html>
<html lang="{{.Lang}}">
<head>{{.Head.Title}}{{.Head.Metas}}{{.Head.Links}}{{.Head.JSON}}</head>
<body data-tenant="{{.TenantSlug}}" data-layout="{{.LayoutStyle}}">
<header class="masthead">{{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.SiteName}}">{{end}}<a href="/">{{.SiteName}}</a></header>
<main>{{end}}
{{define "close"}}</main>
<footer><a href="/privacy-policy">Privacy</a> · <a href="/terms-and-conditions">Terms</a> · <a href="/about-us">About</a></footer>
{{.Head.Scripts}}</body>
</html>{{end}}`

// tplRenderer executes one variant's parsed template set.
type tplRenderer struct {
	key Key
	t   *template.Template
}

func newTplRenderer(k Key, pages string) tplRenderer {
	t := template.Must(template.New(string(k)).Parse(base))
	template.Must(t.Parse(pages))
	return tplRenderer{key: k, t: t}
}

func (r tplRenderer) Key() Key { return r.key }

func (r tplRenderer) RenderHome(w io.Writer, p *Page) error { return r.exec(w, "home", p) }

// exec renders a copy of p; the caller's Page and head.Builder are left
// as they were.
func (r tplRenderer) exec(w io.Writer, name string, p *Page) error {
	pc := *p
	if pc.Head == nil {
		pc.Head = head.New()
	} else {
		pc.Head = pc.Head.Clone()
	}
	if r.key.Valid() {
		pc.Head.Link(`<link rel="stylesheet" href="` + AssetPath(r.key, "css/main.css") + `">`)
		pc.Head.Script(`<script src="` + AssetPath(r.key, "js/main.js") + `" defer></script>`)
	}
	if pc.Lang == "" {
		pc.Lang = "en"
	}
	return r.t.ExecuteTemplate(w, name, &pc)
}
