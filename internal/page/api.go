package page

import (
	"encoding/json"
	"net/http"

	"github.com/yanizio/newsroom/internal/tenant"
)

// apiTenant reports what the engine resolved for this request.  ?slug=
// switches to slug mode.  The status is always 200; the state field
// carries the outcome.
func (h *Handler) apiTenant(w http.ResponseWriter, r *http.Request) {
	rec, res := h.resolver.ResolveWithSettings(r.Context(), r.URL.Query().Get("slug"))

	out := map[string]any{
		"tenant":        rec,
		"state":         Classify(rec, res).String(),
		"settingsState": res.State().String(),
		"edge":          tenant.EdgeFrom(r.Context()),
	}
	if e := res.Settings(); e != nil {
		out["settings"] = json.RawMessage(e.Raw())
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
