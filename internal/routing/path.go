// internal/routing/path.go
//
// Path helpers shared by the rewriter and the page handlers.

package routing

import "strings"

// TenantPrefix is the internal path root every rewritten request lives under.
const TenantPrefix = "/t/"

// BuildPath joins parent + slug ensuring exactly one leading slash and no
// duplicate separators.
func BuildPath(parent, slug string) string {
	parent = strings.Trim(parent, "/")
	slug = strings.Trim(slug, "/")

	switch {
	case parent == "" && slug == "":
		return "/"
	case parent == "":
		return "/" + slug
	case slug == "":
		return "/" + parent
	default:
		return "/" + parent + "/" + slug
	}
}

// TenantPath maps a public path onto the internal /t/{slug} tree.
// "/" becomes exactly "/t/{slug}".
func TenantPath(slug, public string) string {
	return BuildPath(TenantPrefix+slug, public)
}
