package sanitizer

import (
	"strings"
)

// NormalizeOrigin lowercases the scheme and host of a CORS origin and drops
// any trailing slash. "*" is kept as is.
func NormalizeOrigin(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" || origin == "*" {
		return origin
	}

	scheme, rest, found := strings.Cut(origin, "://")
	if !found {
		return strings.TrimSuffix(strings.ToLower(origin), "/")
	}
	host, _, _ := strings.Cut(rest, "/")
	return strings.ToLower(scheme) + "://" + strings.ToLower(host)
}
