// slug.go
//
// Tenant slugs appear verbatim in internal paths (`/t/{slug}/...`), so the
// directory only accepts slugs that are already in canonical form.
//
// Rules (MakeSlug)
// ----------------
// 1. Lower-case everything.
// 2. Convert any run of non-[a-z0-9] characters to one "-".
// 3. Trim leading / trailing "-".
// 4. If the result is empty, return "item".
// 5. Cap at 100 bytes, trimming a trailing "-" left by the cut.

package tenant

import "strings"

// MakeSlug converts text → lower-kebab ASCII.
func MakeSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastWasDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "item"
	}
	if len(slug) > 100 {
		slug = strings.TrimRight(slug[:100], "-")
	}
	return slug
}

// IsCanonicalSlug reports whether s survives MakeSlug unchanged.
func IsCanonicalSlug(s string) bool { return s != "" && MakeSlug(s) == s }
