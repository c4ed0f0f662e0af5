package common

import "strings"

// ShortName returns the text before the first comma of a city label,
// e.g. "London, GB" -> "London".
func ShortName(city string) string {
	if i := strings.Index(city, ","); i >= 0 {
		city = city[:i]
	}
	return strings.TrimSpace(city)
}

// HasAny returns true if s contains any of the substrings, ignoring case.
func HasAny(s string, subs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
