package fetch

import "regexp"

// URLPattern matches http and https URLs.
var URLPattern = regexp.MustCompile(`^https?://[^\s)<>]+$`)

// IsURL reports whether s should be fetched rather than read from disk.
func IsURL(s string) bool {
	return URLPattern.MatchString(s)
}
