package page

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

// retryAfter is sent with technical-issue pages, in seconds.
const retryAfter = "30"

var statusTpl = template.Must(template.New("status").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><meta name="robots" content="noindex"><title>{{.Title}}</title></head>
<body class="status status-{{.Class}}">
<main><h1>{{.Title}}</h1><p>{{.Message}}</p>{{if .Domain}}<p><code>{{.Domain}}</code></p>{{end}}</main>
</body>
</html>`))

type statusView struct {
	Class, Title, Message, Domain string
}

func writeStatus(w http.ResponseWriter, code int, v statusView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if err := statusTpl.Execute(w, v); err != nil {
		zap.L().Error("status page render", zap.String("class", v.Class), zap.Error(err))
	}
}

// notLinked is the 404 page for a domain the provider does not know.
func notLinked(w http.ResponseWriter, domain string) {
	writeStatus(w, http.StatusNotFound, statusView{
		Class:   "not-linked",
		Title:   "Domain not linked",
		Message: "This domain is not connected to any publication yet.",
		Domain:  domain,
	})
}

func technicalIssues(w http.ResponseWriter) {
	w.Header().Set("Retry-After", retryAfter)
	writeStatus(w, http.StatusServiceUnavailable, statusView{
		Class:   "technical-issues",
		Title:   "We are having technical issues",
		Message: "The site could not load its configuration. Please try again shortly.",
	})
}

// ePaper is the 200 page for a domain that serves the e-paper edition.
func ePaper(w http.ResponseWriter, domain string) {
	writeStatus(w, http.StatusOK, statusView{
		Class:   "epaper",
		Title:   "E-paper edition",
		Message: "This address serves the e-paper edition, which is not available in the web reader.",
		Domain:  domain,
	})
}
