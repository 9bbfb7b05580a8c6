package menu

import "strings"

// NormalizeQuery trims and lower-cases raw search input.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Matches reports whether label contains query, ignoring case.
// Plain substring semantics, no tokenizing or fuzzy scoring.
func Matches(label, query string) bool {
	query = NormalizeQuery(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(label), query)
}
