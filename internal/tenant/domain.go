// domain.go holds the host normaliser.  Every host string that enters the
// engine passes through Normalize exactly once, at the edge, and travels
// downstream as a Domain.
package tenant

import "strings"

// LocalDomain is what Normalize returns for empty input.
const LocalDomain Domain = "localhost"

// Domain is a lowercase, port-free, www-stripped host name.  Never empty.
type Domain string

// String implements fmt.Stringer.
func (d Domain) String() string { return string(d) }

// IsLocal reports whether d is the development host.
func (d Domain) IsLocal() bool { return d == LocalDomain }

// Normalize trims, lowercases, drops any ":port" suffix, and strips leading
// "www." labels.  It is total and idempotent; input that reduces to nothing
// yields "localhost".
//
//	Normalize("WWW.Example.com:8080") == "example.com"
func Normalize(host string) Domain {
	h := strings.ToLower(strings.TrimSpace(host))
	if i := strings.IndexByte(h, ':'); i != -1 {
		h = h[:i]
	}
	// Repeat until stable so "www.www.x" and "x :80" normalise in one pass.
	for {
		h = strings.TrimSpace(h)
		if !strings.HasPrefix(h, "www.") {
			break
		}
		h = h[len("www."):]
	}
	if h == "" {
		return LocalDomain
	}
	return Domain(h)
}
