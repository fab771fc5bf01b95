package page

import (
	"github.com/yanizio/newsroom/internal/settings"
	"github.com/yanizio/newsroom/internal/tenant"
)

// State is the terminal classification of one page request.
type State int

const (
	Render State = iota
	EPaperBlocked
	RenderNotLinked
	RenderTechnicalIssues
)

func (s State) String() string {
	switch s {
	case Render:
		return "render"
	case EPaperBlocked:
		return "epaper_blocked"
	case RenderNotLinked:
		return "not_linked"
	case RenderTechnicalIssues:
		return "technical_issues"
	}
	return "unknown"
}

// Classify picks the terminal state in one pass.  API errors take
// precedence over not-linked; EPAPER wins over any theme key.
func Classify(rec tenant.Record, res settings.Result) State {
	switch {
	case rec.IsAPIError || res.IsAPIError():
		return RenderTechnicalIssues
	case rec.IsDomainNotLinked || res.IsDomainNotLinked():
		return RenderNotLinked
	case res.Settings().DomainKind() == settings.KindEPaper:
		return EPaperBlocked
	}
	return Render
}
