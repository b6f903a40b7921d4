package reels

import "strings"

const defaultScheme = "https://"

// Normalize trims url and prepends https:// unless it already starts with
// http:// or https:// (any case). Normalize(Normalize(x)) == Normalize(x).
func Normalize(url string) string {
	url = strings.TrimSpace(url)
	if hasHTTPScheme(url) {
		return url
	}
	return defaultScheme + url
}

func hasHTTPScheme(url string) bool {
	for _, prefix := range []string{"http://", "https://"} {
		if len(url) >= len(prefix) && strings.EqualFold(url[:len(prefix)], prefix) {
			return true
		}
	}
	return false
}
