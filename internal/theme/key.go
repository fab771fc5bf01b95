// Package theme maps a tenant's theme key to one of a fixed set of
// rendering variants.
//
// The set of keys is closed.  Anything else, including an empty key, is
// coerced to Style1 by Coerce, which is the single normalisation step every
// caller goes through before dispatch.  Coercion is not an error, but it is
// counted and logged so unexpected upstream values are discoverable.
package theme

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/newsroom/internal/metrics"
)

// Key identifies a rendering variant.
type Key string

const (
	Style1 Key = "style1"
	Style2 Key = "style2"
	Style3 Key = "style3"
	TV9    Key = "tv9"
	TOI    Key = "toi"
)

// Default is the variant used for missing or unknown keys.
const Default = Style1

// Keys lists every valid key in dispatch-table order.
var Keys = []Key{Style1, Style2, Style3, TV9, TOI}

// Valid reports whether k is one of the five known keys.
func (k Key) Valid() bool {
	switch k {
	case Style1, Style2, Style3, TV9, TOI:
		return true
	}
	return false
}

// Coerce trims and lowercases raw and returns the matching Key, or Default.
func Coerce(raw string) Key {
	k := Key(strings.ToLower(strings.TrimSpace(raw)))
	if k.Valid() {
		return k
	}
	metrics.ThemeKeyCoercedTotal.Inc()
	zap.L().Info("theme key coerced to default",
		zap.String("raw", raw),
		zap.String("default", string(Default)))
	return Default
}
