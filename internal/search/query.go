package search

import "strings"

// NormalizeQuery lower-cases and trims free-text search input. Inner
// whitespace and punctuation are kept so that a query matches the same
// substrings it was typed as.
func NormalizeQuery(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func containsFolded(haystack, foldedNeedle string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), foldedNeedle)
}
